package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/ui/modals"
)

func (m *Model) handleIncomingCallModal(key string, msg tea.KeyPressMsg, state *modals.IncomingCallState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, m.answerCall(state.Call, false)
	case keys.Enter:
		answer := state.Answered()
		m.hideModal()
		return m, m.answerCall(state.Call, answer)
	}
	return m.updateModal(msg)
}

func (m *Model) handleContactRequestModal(key string, msg tea.KeyPressMsg, state *modals.ContactRequestState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.hideModal()
		return m, m.replyContactRequest(state.Request, false)
	case keys.Enter:
		accept := state.Accepted()
		m.hideModal()
		return m, m.replyContactRequest(state.Request, accept)
	}
	return m.updateModal(msg)
}

// answerCall accepts or rejects a call off the UI loop.
func (m *Model) answerCall(call domain.CallAnswer, accept bool) tea.Cmd {
	timeout := m.config.GetActionTimeout()
	m.log.Info("answering call", "call", call.CallID(), "accept", accept)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := call.Answer(ctx, accept)
		return CallAnsweredMsg{CallID: call.CallID(), Caller: call.CallerName(), Accepted: accept, Err: err}
	}
}

// replyContactRequest accepts or ignores a contact request off the UI loop.
func (m *Model) replyContactRequest(req domain.ContactRequest, accept bool) tea.Cmd {
	timeout := m.config.GetActionTimeout()
	m.log.Info("replying to contact request", "email", req.Email(), "accept", accept)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := req.Reply(ctx, accept)
		return ContactRequestRepliedMsg{Email: req.Email(), Accepted: accept, Err: err}
	}
}
