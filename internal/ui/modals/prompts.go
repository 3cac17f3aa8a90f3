package modals

import (
	"fmt"
	"net/mail"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// newInputForm builds the one-field form shared by the text prompts.
func newInputForm(title, description, placeholder string, value *string, validate func(string) error) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(placeholder).
		CharLimit(ModalInputCharLimit).
		Value(value)
	if validate != nil {
		input = input.Validate(validate)
	}
	return newForm(ModalInputWidth, huh.NewGroup(input))
}

func renderForm(title string, form *huh.Form, help string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(title),
		form.View(),
		ModalHelpStyle.Render(help),
	)
}

// =============================================================================
// GroupNameState - name prompt for a new group chat
// =============================================================================

// GroupNameState asks for the name of a group chat created from a contact.
// An empty name is allowed; the network names the group after its members.
type GroupNameState struct {
	Contact domain.Key
	Email   string
	name    string
	form    *huh.Form
}

func (*GroupNameState) modalState() {}

func (s *GroupNameState) Title() string { return "New Group Chat" }

func (s *GroupNameState) Help() string { return "Enter: create  Esc: cancel" }

func (s *GroupNameState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *GroupNameState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// GetName returns the entered group name
func (s *GroupNameState) GetName() string { return strings.TrimSpace(s.name) }

// NewGroupNameState creates the prompt for a group with the given contact.
func NewGroupNameState(contact domain.Key, email string) *GroupNameState {
	s := &GroupNameState{Contact: contact, Email: email}
	s.form = newInputForm("Group name",
		fmt.Sprintf("%s joins with full privilege", email),
		"leave empty to name it after its members", &s.name, nil)
	return s
}

// =============================================================================
// TopicState - topic prompt for a group chat
// =============================================================================

// TopicState asks for a group chat's new topic.
type TopicState struct {
	Room  domain.Key
	topic string
	form  *huh.Form
}

func (*TopicState) modalState() {}

func (s *TopicState) Title() string { return "Set Chat Topic" }

func (s *TopicState) Help() string { return "Enter: set  Esc: cancel" }

func (s *TopicState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *TopicState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// GetTopic returns the entered topic
func (s *TopicState) GetTopic() string { return strings.TrimSpace(s.topic) }

// Validate checks the entered topic
func (s *TopicState) Validate() error { return validateTopic(s.topic) }

// NewTopicState creates the prompt prefilled with the current topic.
func NewTopicState(room domain.Key, current string) *TopicState {
	s := &TopicState{Room: room, topic: current}
	s.form = newInputForm("Topic", "", "topic", &s.topic, validateTopic)
	return s
}

func validateTopic(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	return nil
}

// =============================================================================
// AddContactState - email prompt for a contact request
// =============================================================================

// AddContactState asks for the email of a user to add as a contact.
type AddContactState struct {
	email string
	form  *huh.Form
}

func (*AddContactState) modalState() {}

func (s *AddContactState) Title() string { return "Add Contact" }

func (s *AddContactState) Help() string { return "Enter: send request  Esc: cancel" }

func (s *AddContactState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *AddContactState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// GetEmail returns the entered address
func (s *AddContactState) GetEmail() string { return strings.TrimSpace(s.email) }

// Validate reports whether the entered address can be sent.
func (s *AddContactState) Validate() error { return ValidateEmail(s.email) }

// NewAddContactState creates an empty add-contact prompt.
func NewAddContactState() *AddContactState {
	s := &AddContactState{}
	s.form = newInputForm("Email", "The user gets a contact request", "name@example.com", &s.email, ValidateEmail)
	return s
}

// ValidateEmail accepts a bare address such as name@example.com.
func ValidateEmail(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return fmt.Errorf("%q is not an email address", v)
	}
	return nil
}
