package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/domain"
)

const headerTitle = " huddle"

// Header represents the top header bar: the app title, the open chat and
// the user's own presence.
type Header struct {
	width    int
	account  string
	chat     string
	presence domain.Presence
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAccount sets the user's display name
func (h *Header) SetAccount(name string) {
	h.account = name
}

// SetChatTitle sets the title of the chat in front
func (h *Header) SetChatTitle(title string) {
	h.chat = title
}

// SetOwnPresence sets the presence shown next to the account name
func (h *Header) SetOwnPresence(p domain.Presence) {
	h.presence = p
}

// OwnPresence returns the presence on display
func (h *Header) OwnPresence() domain.Presence {
	return h.presence
}

// View renders the header
func (h *Header) View() string {
	left := headerTitle
	if h.chat != "" {
		left += " · " + h.chat
	}
	right := "● " + h.presence.String() + " "
	if h.account != "" {
		right = h.account + " " + right
	}

	paddingLen := h.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if paddingLen < 0 {
		left = ansi.Truncate(left, max(h.width-ansi.StringWidth(right), 0), "…")
		paddingLen = max(h.width-ansi.StringWidth(left)-ansi.StringWidth(right), 0)
	}

	return h.renderGradient(left+strings.Repeat(" ", paddingLen), right)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders main and status over a background fading from the
// primary color to the main background. The presence dot in status takes
// the presence color.
func (h *Header) renderGradient(main, status string) string {
	content := main + status
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	dotColor := PresenceColor(h.presence)

	runes := []rune(content)
	width := len(runes)
	statusStart := len([]rune(main))
	titleEnd := len([]rune(headerTitle))

	var result strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleEnd)

		switch {
		case r == '●' && i >= statusStart:
			style = style.Foreground(dotColor)
		case i >= statusStart:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
