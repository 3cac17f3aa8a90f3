package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// showPresenceModal opens the online status picker.
func (m *Model) showPresenceModal() {
	m.modal.Show(modals.NewPresenceState(m.network.OwnPresence()))
}

// showSettingsModal opens the settings dialog with the saved values.
func (m *Model) showSettingsModal() {
	var choices modals.SettingsChoices
	for _, name := range ui.ThemeNames() {
		choices.Themes = append(choices.Themes, modals.ThemeChoice{Key: string(name), Name: ui.GetTheme(name).Name})
	}
	devices := m.network.MediaDevices()
	choices.AudioInputs, choices.VideoInputs = devices.AudioInputs, devices.VideoInputs

	current := modals.Settings{
		Theme:         string(ui.CurrentThemeName()),
		Notifications: m.config.GetNotificationsEnabled(),
	}
	current.AudioInput, current.VideoInput = m.config.GetMediaInputs()
	m.modal.Show(modals.NewSettingsState(current, choices))
}

// handlePresenceModal handles key events for the online status modal.
func (m *Model) handlePresenceModal(key string, msg tea.KeyPressMsg, state *modals.PresenceState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, nil
	case keys.Enter:
		m.hideModal()
		if !state.Changed() {
			return m, nil
		}
		p := state.GetPresence()
		m.config.SetOwnPresence(p.String())
		return m, tea.Batch(m.registry.SetOwnPresence(p), m.saveConfigOrFlash())
	}
	return m.updateModal(msg)
}

// handleSettingsModal handles key events for the settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, nil
	case keys.Enter:
		var cmds []tea.Cmd
		v := state.Values()
		m.config.SetNotificationsEnabled(v.Notifications)
		if state.ThemeChanged() {
			ui.SetThemeByName(v.Theme)
			m.config.SetTheme(v.Theme)
			if chat := m.ActiveChat(); chat != nil {
				chat.RefreshStyles()
			}
		}
		if state.MediaChanged() {
			m.config.SetMediaInputs(v.AudioInput, v.VideoInput)
			cmds = append(cmds, m.registry.ApplySettings(v.AudioInput, v.VideoInput))
		}
		if err := m.config.Save(); err != nil {
			m.log.Error("failed to save settings", "error", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, nil
		}
		m.hideModal()
		return m, tea.Batch(cmds...)
	}
	// Forward other keys to modal for form navigation
	return m.updateModal(msg)
}
