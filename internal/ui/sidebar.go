package ui

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/roster"
)

const (
	sectionContacts = "CONTACTS"
	sectionChats    = "CHATS"
)

// Sidebar is the left panel listing contacts and chats. It is the container
// list items add their rows to.
type Sidebar struct {
	rows         map[domain.Key]*Row
	selected     domain.Key
	drop         domain.Key
	width        int
	height       int
	focused      bool
	scrollOffset int

	// lineKeys maps each rendered list line to its row, zero for headers
	lineKeys []domain.Key

	// Search mode
	searchMode  bool
	searchInput textinput.Model
}

var _ roster.Container = (*Sidebar)(nil)

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		rows:        make(map[domain.Key]*Row),
		searchInput: ti,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// AddRow creates the row for key, replacing any row already in that slot.
func (s *Sidebar) AddRow(key domain.Key) roster.Surface {
	r := newRow(key)
	s.rows[key] = r
	if s.selected.IsZero() {
		s.selected = key
	}
	return r
}

// RemoveRow drops the row for key. The selection moves to a neighbour.
func (s *Sidebar) RemoveRow(key domain.Key) {
	if _, ok := s.rows[key]; !ok {
		return
	}
	if s.selected == key {
		s.selected = s.neighbour(key)
	}
	if s.drop == key {
		s.drop = domain.Key{}
	}
	delete(s.rows, key)
}

// neighbour returns the row after key in display order, or the one before
// when key is last.
func (s *Sidebar) neighbour(key domain.Key) domain.Key {
	visible := s.visibleRows()
	for i, r := range visible {
		if r.key != key {
			continue
		}
		if i+1 < len(visible) {
			return visible[i+1].key
		}
		if i > 0 {
			return visible[i-1].key
		}
	}
	return domain.Key{}
}

// Row returns the row for key.
func (s *Sidebar) Row(key domain.Key) (*Row, bool) {
	r, ok := s.rows[key]
	return r, ok
}

// Len returns the number of rows
func (s *Sidebar) Len() int { return len(s.rows) }

// Selected returns the key of the selected row.
func (s *Sidebar) Selected() (domain.Key, bool) {
	if _, ok := s.rows[s.selected]; !ok {
		return domain.Key{}, false
	}
	return s.selected, true
}

// Select moves the selection to key if it has a row.
func (s *Sidebar) Select(key domain.Key) {
	if _, ok := s.rows[key]; ok {
		s.selected = key
	}
}

// SetDropTarget highlights key as the row a drag would drop onto.
func (s *Sidebar) SetDropTarget(key domain.Key) {
	if _, ok := s.rows[key]; ok {
		s.drop = key
		return
	}
	s.drop = domain.Key{}
}

// ClearDropTarget removes the drop highlight
func (s *Sidebar) ClearDropTarget() { s.drop = domain.Key{} }

// DropTarget returns the highlighted drop row.
func (s *Sidebar) DropTarget() (domain.Key, bool) {
	return s.drop, !s.drop.IsZero()
}

// sortedRows returns the rows of one section ordered by name.
func (s *Sidebar) sortedRows(contacts bool) []*Row {
	var out []*Row
	for _, r := range s.rows {
		if (r.key.Kind == domain.KindContact) == contacts {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].name), strings.ToLower(out[j].name)
		if a != b {
			return a < b
		}
		return out[i].key.ID < out[j].key.ID
	})
	return out
}

// matches reports whether r passes the search filter.
func (s *Sidebar) matches(r *Row) bool {
	if !s.searchMode {
		return true
	}
	query := strings.ToLower(strings.TrimSpace(s.searchInput.Value()))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.name), query)
}

func (s *Sidebar) filter(rows []*Row) []*Row {
	out := rows[:0:0]
	for _, r := range rows {
		if s.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// visibleRows returns the navigable rows in display order.
func (s *Sidebar) visibleRows() []*Row {
	return append(s.filter(s.sortedRows(true)), s.filter(s.sortedRows(false))...)
}

// moveSelection steps the selection by delta within the visible rows.
func (s *Sidebar) moveSelection(delta int) {
	visible := s.visibleRows()
	if len(visible) == 0 {
		return
	}
	idx := -1
	for i, r := range visible {
		if r.key == s.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.selected = visible[0].key
		return
	}
	idx = max(0, min(len(visible)-1, idx+delta))
	s.selected = visible[idx].key
}

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.scrollOffset = 0
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// GetSearchQuery returns the current search query
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

// keepSelectionVisible moves the selection onto the filtered rows.
func (s *Sidebar) keepSelectionVisible() {
	for _, r := range s.visibleRows() {
		if r.key == s.selected {
			return
		}
	}
	s.moveSelection(0)
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	if s.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			s.ExitSearchMode()
			return s, nil
		case keys.Enter:
			// Stop typing; the selection stays on the match
			s.searchMode = false
			s.searchInput.Blur()
			s.searchInput.SetValue("")
			return s, nil
		case keys.Up, keys.CtrlP:
			s.moveSelection(-1)
			return s, nil
		case keys.Down, keys.CtrlN:
			s.moveSelection(1)
			return s, nil
		default:
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			s.keepSelectionVisible()
			s.scrollOffset = 0
			return s, cmd
		}
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		s.moveSelection(-1)
	case keys.Down, "j":
		s.moveSelection(1)
	case keys.Home, "g":
		s.moveSelection(-len(s.rows))
	case keys.End, "G":
		s.moveSelection(len(s.rows))
	}
	return s, nil
}

// RowAt returns the row drawn at line y of the sidebar, counting the top
// border as line 0.
func (s *Sidebar) RowAt(y int) (domain.Key, bool) {
	line := y - 1
	if s.searchMode {
		line--
	}
	if line < 0 || line >= len(s.lineKeys) {
		return domain.Key{}, false
	}
	key := s.lineKeys[line]
	return key, !key.IsZero()
}

// renderRow draws one row at the given inner width.
func (s *Sidebar) renderRow(r *Row, width int) string {
	isSelected := r.key == s.selected && s.focused
	isDrop := r.key == s.drop

	itemStyle := SidebarItemStyle
	prefix := "  "
	switch {
	case isDrop:
		itemStyle = SidebarDropStyle
		prefix = "+ "
	case isSelected:
		itemStyle = SidebarSelectedStyle
		prefix = "> "
	}
	// Padding is part of the width in lipgloss v2
	contentWidth := width - itemStyle.GetHorizontalPadding()

	glyph := r.avatar.Glyph
	if glyph == "" {
		glyph = "?"
	}
	avatar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(r.avatarColor()).
		Bold(true).
		Width(AvatarWidth).
		Align(lipgloss.Center).
		Render(ansi.Truncate(glyph, AvatarWidth-1, ""))

	indicator := ""
	if p, ok := r.Presence(); ok {
		indicator = lipgloss.NewStyle().Foreground(PresenceColor(p)).Render("●") + " "
	}

	badge := ""
	if text, ok := r.Badge(); ok && text != "" {
		badge = " " + SidebarBadgeStyle.Render(text)
	}

	used := ansi.StringWidth(prefix) + AvatarWidth + 1 + ansi.StringWidth(indicator) + ansi.StringWidth(badge)
	name := ansi.Truncate(r.name, max(contentWidth-used, 1), "…")
	if r.hidden {
		name = SidebarHiddenStyle.Render(name)
	}

	left := prefix + avatar + " " + indicator + name
	gap := max(contentWidth-ansi.StringWidth(left)-ansi.StringWidth(badge), 0)
	return itemStyle.Width(width).Render(left + strings.Repeat(" ", gap) + badge)
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	var searchLine string
	if s.searchMode {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(innerWidth - 3) // Leave room for "/ "
		searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		innerHeight-- // Reserve one line for search
	}

	var allLines []string
	var lineKeys []domain.Key
	selectedLine := 0

	emptyStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	sections := []struct {
		title string
		rows  []*Row
		empty string
	}{
		{sectionContacts, s.filter(s.sortedRows(true)), "No contacts."},
		{sectionChats, s.filter(s.sortedRows(false)), "No chats."},
	}
	for i, sec := range sections {
		if i > 0 {
			allLines = append(allLines, "")
			lineKeys = append(lineKeys, domain.Key{})
		}
		allLines = append(allLines, SidebarSectionStyle.Render(sec.title))
		lineKeys = append(lineKeys, domain.Key{})

		if len(sec.rows) == 0 {
			msg := sec.empty
			if s.searchMode && s.searchInput.Value() != "" {
				msg = "No matches."
			}
			allLines = append(allLines, emptyStyle.Render("  "+msg))
			lineKeys = append(lineKeys, domain.Key{})
			continue
		}
		for _, r := range sec.rows {
			if r.key == s.selected {
				selectedLine = len(allLines)
			}
			allLines = append(allLines, s.renderRow(r, innerWidth))
			lineKeys = append(lineKeys, r.key)
		}
	}

	// Adjust scroll to keep the selected row visible
	visibleHeight := max(innerHeight, 0)
	if selectedLine < s.scrollOffset {
		s.scrollOffset = selectedLine
	} else if selectedLine >= s.scrollOffset+visibleHeight {
		s.scrollOffset = selectedLine - visibleHeight + 1
	}
	maxScroll := max(len(allLines)-visibleHeight, 0)
	s.scrollOffset = max(0, min(s.scrollOffset, maxScroll))

	allLines = allLines[s.scrollOffset:]
	lineKeys = lineKeys[s.scrollOffset:]
	if len(allLines) > visibleHeight {
		allLines = allLines[:visibleHeight]
		lineKeys = lineKeys[:visibleHeight]
	}
	s.lineKeys = lineKeys

	content := strings.Join(allLines, "\n")
	if s.searchMode {
		content = searchLine + "\n" + content
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}
