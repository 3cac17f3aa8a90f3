package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette of the current theme. applyTheme sets it.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorOwn         color.Color
	ColorPeer        color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorHidden      color.Color
)

var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Roster rows
var (
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	SidebarSectionStyle  lipgloss.Style
	SidebarHiddenStyle   lipgloss.Style
	SidebarBadgeStyle    lipgloss.Style
	// SidebarDropStyle marks the group row a contact drag hovers over
	SidebarDropStyle lipgloss.Style
)

var (
	ChatOwnStyle          lipgloss.Style
	ChatPeerStyle         lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatTimeStyle         lipgloss.Style
	ChatEmptyStyle        lipgloss.Style
	ChatCodeBlockStyle    lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
)

var (
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

func init() {
	applyTheme(currentTheme)
}

// applyTheme rebuilds the palette and every style from t, then passes them
// on to the dialogs.
func applyTheme(t Theme) {
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorOwn = lipgloss.Color(t.Own)
	ColorPeer = lipgloss.Color(t.Peer)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorHidden = lipgloss.Color(t.Hidden)

	fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	boxed := func(border color.Color) lipgloss.Style {
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
	}
	pill := func(bg color.Color) lipgloss.Style {
		return fg(ColorTextInverse).Background(bg).Bold(true).Padding(0, 1)
	}

	FooterStyle = fg(ColorTextMuted).Padding(0, 1)
	FooterKeyStyle = fg(ColorSecondary).Bold(true)
	FooterDescStyle = fg(ColorTextMuted)

	PanelStyle = boxed(ColorBorder)
	PanelFocusedStyle = boxed(ColorBorderFocus)
	PanelTitleStyle = fg(ColorPrimary).Bold(true).Padding(0, 1)

	SidebarItemStyle = lipgloss.NewStyle().Padding(0, 1)
	SidebarSelectedStyle = fg(ColorText).
		Background(lipgloss.Color(t.GetBgSelected())).
		Bold(true).
		Padding(0, 1)
	SidebarSectionStyle = fg(ColorTextMuted).Bold(true)
	SidebarHiddenStyle = fg(ColorHidden).Italic(true).Strikethrough(true)
	SidebarBadgeStyle = pill(ColorSecondary)
	SidebarDropStyle = pill(ColorSuccess)

	ChatOwnStyle = fg(ColorOwn).Bold(true)
	ChatPeerStyle = fg(ColorPeer).Bold(true)
	ChatMessageStyle = fg(ColorText)
	ChatTimeStyle = fg(ColorTextMuted)
	ChatEmptyStyle = fg(ColorTextMuted).Italic(true)
	ChatCodeBlockStyle = lipgloss.NewStyle().Background(lipgloss.Color(t.CodeBg))
	ChatInputStyle = boxed(ColorBorder).Padding(0, 1)
	ChatInputFocusedStyle = boxed(ColorBorderFocus).Padding(0, 1)

	ModalStyle = boxed(ColorPrimary).Padding(1, 2).Width(ModalWidth)
	ModalTitleStyle = fg(ColorPrimary).Bold(true).MarginBottom(1)
	ModalHelpStyle = fg(ColorTextMuted).Italic(true).MarginTop(1)
	StatusErrorStyle = fg(ColorError).Bold(true)

	RefreshModalStyles()
}
