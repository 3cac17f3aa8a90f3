package ui

import (
	"sync"

	"github.com/zhubert/huddle/internal/logger"
)

// ViewContext is the one place the window is split into the header, the
// roster column, the chat column and the footer.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	mu sync.Mutex
}

var (
	viewCtx     *ViewContext
	viewCtxOnce sync.Once
)

// GetViewContext returns the process-wide layout.
func GetViewContext() *ViewContext {
	viewCtxOnce.Do(func() {
		viewCtx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return viewCtx
}

// Log writes a debug line tagged with the layout component.
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("layout").Debug(msg, args...)
}

// UpdateTerminalSize splits a width x height terminal. Sizes below the
// minimum are raised to it. The roster takes a third of the width, kept
// between SidebarMinWidth and SidebarMaxWidth.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth, v.TerminalHeight = width, height
	v.HeaderHeight, v.FooterHeight = HeaderHeight, FooterHeight
	v.ContentHeight = height - HeaderHeight - FooterHeight
	v.SidebarWidth = min(max(width/SidebarWidthRatio, SidebarMinWidth), SidebarMaxWidth)
	v.ChatWidth = width - v.SidebarWidth

	v.Log("layout",
		"width", width,
		"height", height,
		"roster", v.SidebarWidth,
		"chat", v.ChatWidth,
	)
}

// InnerWidth is panelWidth less the border.
func (v *ViewContext) InnerWidth(panelWidth int) int { return panelWidth - BorderSize }

// InnerHeight is panelHeight less the border.
func (v *ViewContext) InnerHeight(panelHeight int) int { return panelHeight - BorderSize }
