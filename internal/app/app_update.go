package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// Update routes msg, then brings the chat panel in line with the registry.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	result, cmd := m.update(msg)

	// The registry may have moved a window to the front
	m.syncChat()

	// Reports made during this update start their flash timer here
	if m.flashPending {
		m.flashPending = false
		cmd = tea.Batch(cmd, ui.FlashTick())
	}
	return result, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.terminalFocused = true
		return m, nil

	case tea.BlurMsg:
		m.terminalFocused = false
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if cmd, handled := m.handleMouse(msg); handled {
			return m, cmd
		}
		return m, nil

	case roster.EventMsg:
		return m.handleEventMsg(msg)

	case roster.ResultMsg:
		return m.handleResultMsg(msg)

	case NetworkStartedMsg:
		return m.handleNetworkStarted()

	case ConfigChangedMsg:
		return m.handleConfigChanged()

	case CallAnsweredMsg:
		return m.handleCallAnswered(msg)

	case ContactRequestRepliedMsg:
		return m.handleContactRequestReplied(msg)

	case ClipboardMsg:
		return m.handleClipboardMsg(msg)

	case ClipboardHandleMsg:
		return m.handleClipboardHandleMsg(msg)

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil
	}

	// An open dialog takes every remaining message
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Route scroll keys to the chat even when the sidebar is focused
	if cmd, handled := m.routeSidebarScrollKeys(msg); handled {
		return m, cmd
	}

	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else if chat := m.ActiveChat(); chat != nil {
		_, cmd := chat.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress runs global keys, dialogs and shortcuts. A nil model means
// the key belongs to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key press", "key", key, "focus", m.focus.String(), "modalVisible", m.modal.IsVisible())

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// ctrl+c quits from anywhere
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Search input gets every key; the sidebar handles Esc and Enter itself
	if m.sidebar.IsSearchMode() {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		return m, cmd
	}

	// Escape leaves the chat
	if key == keys.Escape && m.focus == FocusChat {
		m.setFocus(FocusSidebar)
		return m, nil
	}

	if m.focus == FocusChat {
		if result, cmd, handled := m.handleChatFocusedKeys(msg); handled {
			return result, cmd
		}
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	return nil, nil
}

// handleChatFocusedKeys sends on Enter and turns shift+enter into a newline.
func (m *Model) handleChatFocusedKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	chat := m.ActiveChat()
	if chat == nil {
		return m, nil, false
	}

	switch msg.String() {
	case keys.Enter:
		return m.sendMessage(chat)
	case keys.ShiftEnter:
		// The textarea inserts a newline on a plain Enter
		_, cmd := chat.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		return m, cmd, true
	}
	return m, nil, false
}

// sendMessage posts the chat input. The message shows up once the model
// echoes it back.
func (m *Model) sendMessage(chat *ui.ChatWindow) (tea.Model, tea.Cmd, bool) {
	text := chat.GetInput()
	if strings.TrimSpace(text) == "" {
		return m, nil, true
	}
	chat.ClearInput()
	m.log.Debug("sending message", "chat", chat.ChatID().String(), "len", len(text))
	return m, m.registry.SendMessage(chat.ChatID(), text), true
}

// routeSidebarScrollKeys sends history scrolling keys to the chat in front
// while the sidebar has focus.
func (m *Model) routeSidebarScrollKeys(msg tea.Msg) (tea.Cmd, bool) {
	if m.focus != FocusSidebar {
		return nil, false
	}
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil, false
	}
	chat := m.ActiveChat()
	if chat == nil {
		return nil, false
	}
	switch keyMsg.String() {
	case keys.PgUp, keys.PgDown, "ctrl+u", "ctrl+d":
		_, cmd := chat.Update(msg)
		return cmd, true
	}
	return nil, false
}
