package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/ui"
)

// View renders the app full screen with mouse and focus reporting on.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString returns the frame View would draw. Demos capture it.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.modal.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.modal.View(m.width, m.height))
	}

	m.updateFooterContext()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.chatPanel()),
		m.footer.View(),
	)
}

// chatPanel is the front chat window, or a placeholder when none is open.
func (m *Model) chatPanel() string {
	if chat := m.ActiveChat(); chat != nil {
		return chat.View()
	}
	ctx := ui.GetViewContext()
	return ui.RenderNoChat(ctx.ChatWidth, ctx.ContentHeight)
}

// updateFooterContext picks the key hints for the current mode.
func (m *Model) updateFooterContext() {
	if m.sidebar.IsSearchMode() {
		m.footer.SetBindings([]ui.KeyBinding{
			{Key: "enter", Desc: "keep selection"},
			{Key: "esc", Desc: "cancel search"},
		})
		return
	}
	m.footer.SetBindings(m.getApplicableFooterBindings())
}

// updateSizes lays the panels out for the current terminal size.
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	if chat := m.ActiveChat(); chat != nil {
		chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
	}
}
