package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// PresenceState lets the user pick their own online status.
type PresenceState struct {
	Original domain.Presence
	selected domain.Presence
	form     *huh.Form
}

func (*PresenceState) modalState() {}

func (s *PresenceState) Title() string { return "Online Status" }

func (s *PresenceState) Help() string { return "up/down: choose  Enter: set  Esc: cancel" }

func (s *PresenceState) Render() string { return renderForm(s.Title(), s.form, s.Help()) }

func (s *PresenceState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = formUpdate(s.form, msg)
	return s, cmd
}

// GetPresence returns the chosen status
func (s *PresenceState) GetPresence() domain.Presence { return s.selected }

// SetPresence changes the chosen status.
func (s *PresenceState) SetPresence(p domain.Presence) { s.selected = p }

// Changed reports whether the chosen status differs from the current one
func (s *PresenceState) Changed() bool { return s.selected != s.Original }

// NewPresenceState creates the picker with current preselected.
func NewPresenceState(current domain.Presence) *PresenceState {
	s := &PresenceState{Original: current, selected: current}
	options := []huh.Option[domain.Presence]{
		huh.NewOption("● Online", domain.PresenceOnline),
		huh.NewOption("◐ Away", domain.PresenceAway),
		huh.NewOption("⊘ Busy", domain.PresenceBusy),
		huh.NewOption("○ Offline", domain.PresenceOffline),
	}
	s.form = newForm(ModalInputWidth, huh.NewGroup(
		huh.NewSelect[domain.Presence]().
			Title("Show me as").
			Options(options...).
			Value(&s.selected),
	))
	return s
}
