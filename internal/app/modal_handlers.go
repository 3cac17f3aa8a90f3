package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
//
// Modal handlers are organized by domain:
//   - modal_handlers_roster.go: contact and chat actions (group name, topic, add contact, remove contact)
//   - modal_handlers_calls.go: incoming calls and contact requests
//   - modal_handlers_config.go: online status and settings
//   - modal_handlers_navigation.go: help, context menu, details, errors
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	// Roster modals (modal_handlers_roster.go)
	case *modals.GroupNameState:
		return m.handleGroupNameModal(key, msg, s)
	case *modals.TopicState:
		return m.handleTopicModal(key, msg, s)
	case *modals.AddContactState:
		return m.handleAddContactModal(key, msg, s)
	case *modals.ConfirmRemoveContactState:
		return m.handleConfirmRemoveContactModal(key, msg, s)

	// Call modals (modal_handlers_calls.go)
	case *modals.IncomingCallState:
		return m.handleIncomingCallModal(key, msg, s)
	case *modals.ContactRequestState:
		return m.handleContactRequestModal(key, msg, s)

	// Config modals (modal_handlers_config.go)
	case *modals.PresenceState:
		return m.handlePresenceModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)

	// Navigation modals (modal_handlers_navigation.go)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.ContextMenuState:
		return m.handleContextMenuModal(key, msg, s)
	case *modals.TooltipState:
		return m.handleTooltipModal(key, msg, s)
	case *modals.ErrorState:
		return m.handleErrorModal(key, msg, s)
	}

	// Unknown modal: Esc still closes it
	if key == keys.Escape {
		m.hideModal()
	}
	return m, nil
}

// present shows a modal, or queues it behind the one on display.
func (m *Model) present(state modals.ModalState) {
	if m.modal.IsVisible() {
		m.pending = append(m.pending, state)
		m.log.Debug("modal queued", "title", state.Title(), "queued", len(m.pending))
		return
	}
	m.modal.Show(state)
}

// hideModal closes the modal on display and brings up the next queued one.
func (m *Model) hideModal() {
	m.modal.Hide()
	if len(m.pending) == 0 {
		return
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	m.modal.Show(next)
}

// dismiss drops a modal whether it is on display or still queued.
func (m *Model) dismiss(match func(modals.ModalState) bool) {
	if m.modal.IsVisible() && match(m.modal.State) {
		m.hideModal()
		return
	}
	kept := m.pending[:0]
	for _, s := range m.pending {
		if !match(s) {
			kept = append(kept, s)
		}
	}
	m.pending = kept
}

// updateModal forwards a key to the modal on display.
func (m *Model) updateModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
