package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// newConfirmForm builds a yes/no form bound to value.
func newConfirmForm(title, description, yes, no string, value *bool) *huh.Form {
	return newForm(ModalInputWidth, huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative(yes).
			Negative(no).
			Value(value),
	))
}

// =============================================================================
// ConfirmRemoveContactState - confirmation before removing a contact
// =============================================================================

// ConfirmRemoveContactState asks before a contact is removed from the
// server.
type ConfirmRemoveContactState struct {
	Contact  domain.Key
	Question string
	confirm  bool
	form     *huh.Form
}

func (*ConfirmRemoveContactState) modalState() {}

func (s *ConfirmRemoveContactState) Title() string { return "Remove Contact?" }

func (s *ConfirmRemoveContactState) Help() string {
	return "left/right: choose  Enter: confirm  Esc: cancel"
}

func (s *ConfirmRemoveContactState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *ConfirmRemoveContactState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether Remove is chosen
func (s *ConfirmRemoveContactState) Confirmed() bool { return s.confirm }

// SetConfirmed selects Remove or Cancel.
func (s *ConfirmRemoveContactState) SetConfirmed(v bool) { s.confirm = v }

// NewConfirmRemoveContactState creates the confirmation. Cancel is
// preselected.
func NewConfirmRemoveContactState(contact domain.Key, question string) *ConfirmRemoveContactState {
	s := &ConfirmRemoveContactState{Contact: contact, Question: question}
	s.form = newConfirmForm(question, "The contact is removed from the server.", "Remove", "Cancel", &s.confirm)
	return s
}

// =============================================================================
// ErrorState - modal error report
// =============================================================================

// ErrorState shows the failure of an operation until dismissed.
type ErrorState struct {
	Heading string
	Message string
}

func (*ErrorState) modalState() {}

func (s *ErrorState) Title() string { return s.Heading }

func (s *ErrorState) Help() string { return "Enter/Esc: dismiss" }

func (s *ErrorState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError).
		MarginBottom(1).
		Render("✕ " + s.Heading)
	body := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(ModalInputWidth).
		Render(s.Message)
	return lipgloss.JoinVertical(lipgloss.Left, title, body, ModalHelpStyle.Render(s.Help()))
}

func (s *ErrorState) Update(msg tea.Msg) (ModalState, tea.Cmd) { return s, nil }

// NewErrorState creates an error report.
func NewErrorState(heading string, err error) *ErrorState {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &ErrorState{Heading: heading, Message: msg}
}

// =============================================================================
// IncomingCallState - answer or reject a ringing call
// =============================================================================

// IncomingCallState rings until the user answers, rejects or the caller
// hangs up.
type IncomingCallState struct {
	Call   domain.CallAnswer
	answer bool
	form   *huh.Form
}

func (*IncomingCallState) modalState() {}

func (s *IncomingCallState) Title() string {
	if s.Call.Video() {
		return "Incoming Video Call"
	}
	return "Incoming Call"
}

func (s *IncomingCallState) Help() string {
	return "left/right: choose  Enter: confirm  Esc: reject"
}

func (s *IncomingCallState) Render() string { return renderForm("☎ "+s.Title(), s.form, s.Help()) }

func (s *IncomingCallState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// Answered reports whether Answer is chosen
func (s *IncomingCallState) Answered() bool { return s.answer }

// SetAnswered selects Answer or Reject.
func (s *IncomingCallState) SetAnswered(v bool) { s.answer = v }

// NewIncomingCallState creates the ringing dialog with Answer preselected.
func NewIncomingCallState(call domain.CallAnswer) *IncomingCallState {
	s := &IncomingCallState{Call: call, answer: true}
	s.form = newConfirmForm(fmt.Sprintf("%s is calling", call.CallerName()), "", "Answer", "Reject", &s.answer)
	return s
}

// =============================================================================
// ContactRequestState - accept or ignore a contact request
// =============================================================================

// ContactRequestState shows a request from another user to be added as a
// contact.
type ContactRequestState struct {
	Request domain.ContactRequest
	accept  bool
	form    *huh.Form
}

func (*ContactRequestState) modalState() {}

func (s *ContactRequestState) Title() string { return "Contact Request" }

func (s *ContactRequestState) Help() string {
	return "left/right: choose  Enter: confirm  Esc: decide later"
}

func (s *ContactRequestState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *ContactRequestState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// Accepted reports whether Accept is chosen
func (s *ContactRequestState) Accepted() bool { return s.accept }

// SetAccepted selects Accept or Ignore.
func (s *ContactRequestState) SetAccepted(v bool) { s.accept = v }

// NewContactRequestState creates the dialog with Accept preselected.
func NewContactRequestState(req domain.ContactRequest) *ContactRequestState {
	s := &ContactRequestState{Request: req, accept: true}
	desc := req.Text()
	if desc == "" {
		desc = "(no message)"
	}
	s.form = newConfirmForm(req.Email()+" wants to add you", desc, "Accept", "Ignore", &s.accept)
	return s
}
