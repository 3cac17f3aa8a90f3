package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// TooltipState shows the details of a contact or room.
type TooltipState struct {
	Target  domain.Key
	Heading string
	Text    string
}

func (*TooltipState) modalState() {}

func (s *TooltipState) Title() string { return s.Heading }

func (s *TooltipState) Help() string { return "y: copy handle  Enter/Esc: close" }

func (s *TooltipState) Render() string {
	body := lipgloss.NewStyle().
		Foreground(ColorText).
		Render(AlignColumns(s.Text))
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(TruncateString(s.Heading, ModalInputWidth)),
		body,
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *TooltipState) Update(msg tea.Msg) (ModalState, tea.Cmd) { return s, nil }

// NewTooltipState creates the details view of an entity.
func NewTooltipState(target domain.Key, heading, text string) *TooltipState {
	if text == "" {
		text = "(no details yet)"
	}
	return &TooltipState{Target: target, Heading: heading, Text: text}
}
