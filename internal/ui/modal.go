package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/ui/modals"
)

// Modal hosts the visible dialog. State is nil when no modal is shown.
type Modal struct {
	State modals.ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state modals.ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message shown under the modal content.
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on a screen of the given size.
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	width := ModalWidth
	if pw, ok := m.State.(modals.ModalWithPreferredWidth); ok {
		width = pw.PreferredWidth()
	}
	// Leave room for the border on narrow terminals
	if width > screenWidth-BorderSize {
		width = max(screenWidth-BorderSize, 1)
	}
	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(width, screenHeight-BorderSize)
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Width(width).Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// RefreshModalStyles hands the current styles to the modals package. It runs
// at startup and after every theme change.
func RefreshModalStyles() {
	modals.SetStyles(modals.Palette{
		Title:    ModalTitleStyle,
		Help:     ModalHelpStyle,
		Item:     SidebarItemStyle,
		Selected: SidebarSelectedStyle,

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Muted:     ColorTextMuted,
		Inverse:   ColorTextInverse,
		Warning:   ColorWarning,
		Error:     ColorError,

		InputWidth:     ModalInputWidth,
		InputCharLimit: ModalInputCharLimit,
		Width:          ModalWidth,
	})
}
