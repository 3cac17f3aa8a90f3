package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/ui/modals"
)

func (m *Model) handleGroupNameModal(key string, msg tea.KeyPressMsg, state *modals.GroupNameState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, nil
	case keys.Enter:
		name := state.GetName()
		m.hideModal()
		item, ok := m.registry.Contact(state.Contact.ID)
		if !ok {
			return m, m.ShowFlashWarning("Contact is no longer in the list")
		}
		m.log.Info("creating group chat", "contact", state.Contact.String(), "name", name)
		return m, item.CreateGroupChat(name)
	}
	return m.updateModal(msg)
}

func (m *Model) handleTopicModal(key string, msg tea.KeyPressMsg, state *modals.TopicState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		topic := state.GetTopic()
		m.hideModal()
		item, ok := m.registry.Group(state.Room.ID)
		if !ok {
			return m, m.ShowFlashWarning("Group chat is no longer in the list")
		}
		return m, item.SetTopic(topic)
	}
	return m.updateModal(msg)
}

func (m *Model) handleAddContactModal(key string, msg tea.KeyPressMsg, state *modals.AddContactState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		email := state.GetEmail()
		m.hideModal()
		return m, m.registry.RequestContact(email)
	}
	return m.updateModal(msg)
}

func (m *Model) handleConfirmRemoveContactModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmRemoveContactState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "n":
		m.hideModal()
		return m, nil
	case "y":
		state.SetConfirmed(true)
		fallthrough
	case keys.Enter:
		confirmed := state.Confirmed()
		m.hideModal()
		if !confirmed {
			return m, nil
		}
		item, ok := m.registry.Contact(state.Contact.ID)
		if !ok {
			return m, nil
		}
		m.log.Info("removing contact", "contact", state.Contact.String())
		return m, item.Remove()
	}
	return m.updateModal(msg)
}
