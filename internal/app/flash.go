package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

// ReportError shows a failed operation as an error modal. Errors arriving
// while another modal is up wait their turn.
func (m *Model) ReportError(title string, err error) {
	m.log.Warn("reporting error", "title", title, "error", err)
	m.present(modals.NewErrorState(title, err))
}

// ReportInfo shows a transient message in the footer. The timer starts when
// the current Update returns.
func (m *Model) ReportInfo(text string) {
	m.footer.SetFlash(text, ui.FlashInfo)
	m.flashPending = true
}

// saveConfigOrFlash saves the config and returns a flash command if it fails
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		m.log.Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save config: " + err.Error())
	}
	return nil
}
