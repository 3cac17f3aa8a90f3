package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/notification"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// listenForEvents re-issues the bridge listener once Init has started it.
// Tests and demos pump the bridge themselves and never start it.
func (m *Model) listenForEvents() tea.Cmd {
	if !m.listening {
		return nil
	}
	return m.bridge.Listen()
}

// handleEventMsg applies a model callback. The registry takes list and chat
// events; account, call and request events are handled here.
func (m *Model) handleEventMsg(msg roster.EventMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.listenForEvents()}

	if m.registry.Apply(msg.Event) {
		m.afterRegistryEvent(msg.Event)
		return m, tea.Batch(cmds...)
	}

	switch ev := msg.Event.(type) {
	case roster.OwnPresenceChanged:
		m.header.SetOwnPresence(ev.Presence)

	case roster.ContactRequestReceived:
		m.log.Info("contact request received", "email", ev.Request.Email())
		m.present(modals.NewContactRequestState(ev.Request))
		cmds = append(cmds, m.notify(func() error {
			return notification.ContactRequest(ev.Request.Email())
		}))

	case roster.IncomingCall:
		m.log.Info("incoming call", "call", ev.Call.CallID(), "caller", ev.Call.CallerName())
		m.present(modals.NewIncomingCallState(ev.Call))
		cmds = append(cmds, m.notify(func() error {
			return notification.IncomingCall(ev.Call.CallerName(), ev.Call.Video())
		}))

	case roster.CallStateChanged:
		m.log.Debug("call state", "call", ev.CallID, "state", ev.State, "ended", ev.Ended)
		if ev.Ended {
			m.dismissCall(ev.CallID, ev.State)
		}

	default:
		m.log.Warn("unhandled model event", "event", ev)
	}
	return m, tea.Batch(cmds...)
}

// afterRegistryEvent keeps chat window titles in step with their rooms.
func (m *Model) afterRegistryEvent(ev roster.Event) {
	e, ok := ev.(roster.TitleChanged)
	if !ok || e.Key.Kind == domain.KindContact {
		return
	}
	if w, ok := m.windows.Get(e.Key.ID); ok {
		if cw, ok := w.(*ui.ChatWindow); ok {
			cw.SetTitle(e.Title)
		}
	}
}

// dismissCall takes down the ringing dialog of a call the caller ended.
func (m *Model) dismissCall(callID, reason string) {
	dismissed := false
	m.dismiss(func(s modals.ModalState) bool {
		call, ok := s.(*modals.IncomingCallState)
		if ok && call.Call.CallID() == callID {
			dismissed = true
			return true
		}
		return false
	})
	if !dismissed {
		return
	}
	text := "Missed call"
	if reason != "" {
		text += " (" + reason + ")"
	}
	m.ReportInfo(text)
}

// notify sends a desktop notification off the UI loop. Nothing is sent when
// notifications are off or the terminal has focus.
func (m *Model) notify(send func() error) tea.Cmd {
	if !m.config.GetNotificationsEnabled() || m.terminalFocused {
		return nil
	}
	log := m.log
	return func() tea.Msg {
		if err := send(); err != nil {
			log.Debug("desktop notification failed", "error", err)
		}
		return nil
	}
}
