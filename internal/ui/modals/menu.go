package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
)

// MenuEntry is one context menu row. ID is chosen by the caller.
type MenuEntry struct {
	ID    int
	Label string
}

// ContextMenuState lists the actions available on a contact or room.
type ContextMenuState struct {
	Target   domain.Key
	Heading  string
	Entries  []MenuEntry
	selected int
}

func (*ContextMenuState) modalState() {}

func (s *ContextMenuState) Title() string { return s.Heading }

func (s *ContextMenuState) Help() string { return "up/down: navigate  Enter: select  Esc: close" }

func (s *ContextMenuState) Render() string {
	start, end := s.visibleRange()
	labels := make([]string, 0, end-start)
	for _, e := range s.Entries[start:end] {
		labels = append(labels, e.Label)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(TruncateString(s.Heading, ModalInputWidth)),
		RenderSelectableList(labels, s.selected-start),
		ModalHelpStyle.Render(s.Help()),
	)
}

// visibleRange is the window of at most MenuMaxVisible entries that keeps
// the selection in view.
func (s *ContextMenuState) visibleRange() (int, int) {
	n := len(s.Entries)
	if MenuMaxVisible <= 0 || n <= MenuMaxVisible {
		return 0, n
	}
	start := max(s.selected-MenuMaxVisible+1, 0)
	return start, start + MenuMaxVisible
}

func (s *ContextMenuState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case keys.Up, "k":
		if s.selected > 0 {
			s.selected--
		}
	case keys.Down, "j":
		if s.selected < len(s.Entries)-1 {
			s.selected++
		}
	}
	return s, nil
}

// Selected returns the highlighted entry.
func (s *ContextMenuState) Selected() (MenuEntry, bool) {
	if s.selected < 0 || s.selected >= len(s.Entries) {
		return MenuEntry{}, false
	}
	return s.Entries[s.selected], true
}

// SelectedIndex returns the index of the highlighted entry
func (s *ContextMenuState) SelectedIndex() int { return s.selected }

// NewContextMenuState creates a menu with the first entry highlighted.
func NewContextMenuState(target domain.Key, heading string, entries []MenuEntry) *ContextMenuState {
	return &ContextMenuState{Target: target, Heading: heading, Entries: entries}
}
