package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// helpKeyWidth is the key column of the shortcut list.
const helpKeyWidth = 16

type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem is a section header. Filtering hides it and the selection
// never rests on it.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (helpDelegate) Height() int                         { return 1 }
func (helpDelegate) Spacing() int                        { return 0 }
func (helpDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(i.title))

	case helpShortcutItem:
		key := lipgloss.NewStyle().Bold(true).Width(helpKeyWidth).Foreground(ColorPrimary)
		desc := lipgloss.NewStyle().Foreground(ColorText)
		cursor := "  "
		if index == m.Index() {
			key = key.Foreground(ColorTextInverse).Background(ColorPrimary)
			desc = desc.Foreground(ColorTextInverse).Background(ColorPrimary)
			cursor = "> "
		}
		fmt.Fprint(w, cursor+key.Render(i.shortcut.Key)+desc.Render(i.shortcut.Desc))
	}
}

// HelpState lists every shortcut by section. Enter on a shortcut runs it.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: trigger  Esc: close"
}

func (s *HelpState) Render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.list.View(),
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	before := s.list.Index()
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	s.skipSectionHeader(before)
	return s, cmd
}

// skipSectionHeader moves the selection off a section header, continuing in
// the direction it moved from before. At either end it steps back.
func (s *HelpState) skipSectionHeader(before int) {
	if s.list.SettingFilter() {
		return
	}
	if _, ok := s.list.SelectedItem().(helpSectionItem); !ok {
		return
	}
	step := 1
	if s.list.Index() < before {
		step = -1
	}
	items := s.list.VisibleItems()
	for i := s.list.Index() + step; i >= 0 && i < len(items); i += step {
		if _, ok := items[i].(helpShortcutItem); ok {
			s.list.Select(i)
			return
		}
	}
	s.list.Select(before)
}

// SetSize fits the list between the title and the help line.
func (s *HelpState) SetSize(width, height int) {
	const chrome = 4
	s.list.SetSize(width, max(height-chrome, 1))
}

// Selected returns the shortcut under the cursor, or nil on a header or an
// empty list.
func (s *HelpState) Selected() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// Filtering reports whether the filter is being typed.
func (s *HelpState) Filtering() bool {
	return s.list.SettingFilter()
}

// NewHelpState lists sections in order, each header followed by its
// shortcuts, with the first shortcut selected.
func NewHelpState(sections []HelpSection) *HelpState {
	var items []list.Item
	first := -1
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			if first < 0 {
				first = len(items)
			}
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}
	return &HelpState{list: l}
}
