package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.Filtering() {
		return m.updateModal(msg)
	}

	switch key {
	case keys.Escape, "?", "q":
		m.hideModal()
		return m, nil
	case keys.Enter:
		// Trigger the selected shortcut
		shortcut := state.Selected()
		if shortcut != nil {
			m.hideModal()
			return m, func() tea.Msg {
				return modals.HelpShortcutTriggeredMsg{Key: shortcut.Key}
			}
		}
		return m, nil
	}
	// Forward navigation keys to the modal
	return m.updateModal(msg)
}

// handleHelpShortcutTrigger runs a shortcut picked in the help modal. Help
// lists display keys, so they are mapped back to key values first.
func (m *Model) handleHelpShortcutTrigger(displayKey string) (tea.Model, tea.Cmd) {
	key := shortcutKeyForDisplay(displayKey)
	if key == "" {
		return m, nil // Display-only shortcut, no action
	}
	result, cmd, _ := m.ExecuteShortcut(key)
	return result, cmd
}

// handleContextMenuModal handles key events for an item's context menu.
func (m *Model) handleContextMenuModal(key string, msg tea.KeyPressMsg, state *modals.ContextMenuState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, "m":
		m.hideModal()
		return m, nil
	case keys.Enter:
		entry, ok := state.Selected()
		m.hideModal()
		if !ok {
			return m, nil
		}
		return m, m.runAction(state.Target, roster.ActionID(entry.ID))
	}
	return m.updateModal(msg)
}

// handleTooltipModal handles key events for the details modal.
func (m *Model) handleTooltipModal(key string, _ tea.KeyPressMsg, state *modals.TooltipState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter, "i":
		m.hideModal()
		return m, nil
	case "y":
		if state.Target.Kind != domain.KindContact {
			return m, nil
		}
		m.hideModal()
		return m, m.yankHandle(state.Target)
	}
	return m, nil
}

// handleErrorModal handles key events for an error report.
func (m *Model) handleErrorModal(key string, _ tea.KeyPressMsg, _ *modals.ErrorState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.Enter:
		m.hideModal()
	}
	return m, nil
}

// showContextMenu opens the action menu of an item.
func (m *Model) showContextMenu(key domain.Key) {
	item, ok := m.registry.Item(key)
	if !ok {
		return
	}
	actions := item.Actions()
	entries := make([]modals.MenuEntry, len(actions))
	for i, a := range actions {
		entries[i] = modals.MenuEntry{ID: int(a.ID), Label: a.Label}
	}
	m.modal.Show(modals.NewContextMenuState(key, m.itemName(key), entries))
}

// showTooltip opens the details of an item.
func (m *Model) showTooltip(key domain.Key) {
	item, ok := m.registry.Item(key)
	if !ok {
		return
	}
	m.modal.Show(modals.NewTooltipState(key, m.itemName(key), item.ToolTip()))
}

// itemName returns the name a row shows for key.
func (m *Model) itemName(key domain.Key) string {
	if row, ok := m.sidebar.Row(key); ok && row.Name() != "" {
		return row.Name()
	}
	return key.String()
}

// runAction performs a context menu entry on the item under key.
func (m *Model) runAction(key domain.Key, action roster.ActionID) tea.Cmd {
	item, ok := m.registry.Item(key)
	if !ok {
		m.log.Warn("action for unknown item", "key", key.String(), "action", int(action))
		return nil
	}

	switch action {
	case roster.ActOpenChat:
		return m.openChat(item)
	case roster.ActShowInfo:
		m.showTooltip(key)
	case roster.ActCreateGroup:
		if c, ok := item.(*roster.ContactItem); ok {
			m.modal.Show(modals.NewGroupNameState(key, c.Contact().Email()))
		}
	case roster.ActRemoveContact:
		if c, ok := item.(*roster.ContactItem); ok {
			m.modal.Show(modals.NewConfirmRemoveContactState(key, c.RemovalQuestion()))
		}
	case roster.ActLeave:
		if g, ok := item.(*roster.GroupChatItem); ok {
			return g.Leave()
		}
	case roster.ActSetTopic:
		if g, ok := item.(*roster.GroupChatItem); ok {
			m.modal.Show(modals.NewTopicState(key, g.Room().Title()))
		}
	case roster.ActTruncate:
		switch it := item.(type) {
		case *roster.GroupChatItem:
			return it.Truncate()
		case *roster.PeerChatItem:
			return it.Truncate()
		}
	}
	return nil
}

// openChat brings up the chat window of an item and moves focus to it once
// it is in front.
func (m *Model) openChat(item roster.ListItem) tea.Cmd {
	cmd := item.ShowChatWindow()
	m.syncChat()
	if m.ActiveChat() != nil && cmd == nil {
		m.setFocus(FocusChat)
	}
	return cmd
}
