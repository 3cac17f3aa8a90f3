package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the slice of the ui theme the dialogs draw with.
type Palette struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style

	Primary   color.Color
	Secondary color.Color
	Text      color.Color
	Muted     color.Color
	Inverse   color.Color
	Warning   color.Color
	Error     color.Color

	InputWidth     int
	InputCharLimit int
	Width          int
}

// Current palette, unpacked. Zero until SetStyles runs.
var (
	ModalTitleStyle      lipgloss.Style
	ModalHelpStyle       lipgloss.Style
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorError       color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
)

var (
	// ModalWidthWide fits the settings form
	ModalWidthWide = 80

	HelpModalMaxVisible = 16

	// MenuMaxVisible caps the context menu before it scrolls
	MenuMaxVisible = 10
)

// SetStyles installs p. Dialogs built afterwards use it.
func SetStyles(p Palette) {
	ModalTitleStyle = p.Title
	ModalHelpStyle = p.Help
	SidebarItemStyle = p.Item
	SidebarSelectedStyle = p.Selected

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorText = p.Text
	ColorTextMuted = p.Muted
	ColorTextInverse = p.Inverse
	ColorWarning = p.Warning
	ColorError = p.Error

	ModalInputWidth = p.InputWidth
	ModalInputCharLimit = p.InputCharLimit
	ModalWidth = p.Width
}
