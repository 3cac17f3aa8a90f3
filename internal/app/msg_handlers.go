package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui"
)

// handleResultMsg applies the completion of a model operation.
func (m *Model) handleResultMsg(msg roster.ResultMsg) (tea.Model, tea.Cmd) {
	m.registry.HandleResult(msg)

	// A truncated room starts over from the model's history
	if msg.Op == roster.OpTruncate && msg.Err == nil {
		if w, ok := m.windows.Get(msg.Target.ID); ok {
			if cw, ok := w.(*ui.ChatWindow); ok {
				cw.SetMessages(m.network.History(msg.Target.ID))
			}
		}
	}
	return m, nil
}

// handleNetworkStarted restores the saved online status once the network
// has announced itself.
func (m *Model) handleNetworkStarted() (tea.Model, tea.Cmd) {
	m.log.Info("network started", "items", m.registry.Len())
	saved, ok := domain.ParsePresence(m.config.GetOwnPresence())
	if !ok || saved == m.network.OwnPresence() {
		return m, nil
	}
	m.log.Info("restoring online status", "presence", saved.String())
	return m, m.registry.SetOwnPresence(saved)
}

// handleConfigChanged reloads the config after it was edited outside the app.
func (m *Model) handleConfigChanged() (tea.Model, tea.Cmd) {
	if err := m.config.Reload(); err != nil {
		m.log.Warn("config reload failed", "error", err)
		return m, m.ShowFlashError("Config not reloaded: " + err.Error())
	}
	if theme := m.config.GetTheme(); theme != "" && theme != string(ui.CurrentThemeName()) {
		ui.SetThemeByName(theme)
		if chat := m.ActiveChat(); chat != nil {
			chat.RefreshStyles()
		}
	}
	m.drag.SetThreshold(m.config.GetDragThreshold())
	m.log.Info("config reloaded", "path", m.config.FilePath())
	return m, m.ShowFlashInfo("Config reloaded")
}

// handleCallAnswered reports a failed answer. A successful one needs no
// message; the call's state events follow.
func (m *Model) handleCallAnswered(msg CallAnsweredMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.ReportError("Answer Call", errors.CallAnswerFailed(msg.Err))
		return m, nil
	}
	if msg.Accepted {
		return m, m.ShowFlashSuccess("In call with " + msg.Caller)
	}
	return m, m.ShowFlashInfo("Rejected call from " + msg.Caller)
}

// handleContactRequestReplied reports the outcome of a contact request reply.
func (m *Model) handleContactRequestReplied(msg ContactRequestRepliedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.ReportError("Contact Request", errors.ContactAddFailed(msg.Email, msg.Err))
		return m, nil
	}
	if msg.Accepted {
		return m, m.ShowFlashSuccess("Added " + msg.Email + " to contacts")
	}
	return m, m.ShowFlashInfo("Ignored request from " + msg.Email)
}

// handleClipboardMsg reports a clipboard write.
func (m *Model) handleClipboardMsg(msg ClipboardMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("clipboard write failed", "error", msg.Err)
		return m, m.ShowFlashError("Clipboard unavailable: " + msg.Err.Error())
	}
	return m, m.ShowFlashSuccess(fmt.Sprintf("Copied handle of %s", msg.What))
}

// handleClipboardHandleMsg invites the user whose handle was on the
// clipboard.
func (m *Model) handleClipboardHandleMsg(msg ClipboardHandleMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("clipboard read failed", "error", msg.Err)
		return m, m.ShowFlashError("Clipboard unavailable: " + msg.Err.Error())
	}
	handle, ok := clipboard.DecodeUserHandle(msg.Text)
	if !ok {
		return m, m.ShowFlashWarning("Clipboard holds no contact handle")
	}
	user, err := domain.ParseID(handle)
	if err != nil {
		return m, m.ShowFlashWarning("Clipboard holds no contact handle")
	}
	return m, m.registry.InviteToGroup(roster.DragPayload{UserID: user}, msg.Group)
}
