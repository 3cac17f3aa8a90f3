package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "m", "tab")
	DisplayKey      string                              // Display name in help (e.g., "Tab"); defaults to Key
	Description     string                              // Human-readable description
	FooterDesc      string                              // Short description for the footer; empty keeps it out
	Category        string                              // Section for help modal grouping
	RequiresItem    bool                                // Must have a list item selected
	RequiresSidebar bool                                // Must not be in chat focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryItems      = "Contacts & Chats"
	CategoryAccount    = "Account"
	CategoryChat       = "Chat (when focused)"
	CategoryMouse      = "Mouse"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryItems,
	CategoryAccount,
	CategoryChat,
	CategoryMouse,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         "tab",
		DisplayKey:  "Tab",
		Description: "Switch between list and chat",
		FooterDesc:  "switch pane",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
		Condition:   func(m *Model) bool { return m.focus == FocusChat || m.ActiveChat() != nil },
	},
	{
		Key:             "/",
		Description:     "Search contacts and chats",
		FooterDesc:      "search",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},
	{
		Key:             "enter",
		DisplayKey:      "Enter",
		Description:     "Open chat with selected item",
		FooterDesc:      "open chat",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutOpenChat,
	},

	// Contacts & Chats
	{
		Key:             "m",
		Description:     "Actions for selected item",
		FooterDesc:      "actions",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutContextMenu,
	},
	{
		Key:             "i",
		Description:     "Show details of selected item",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutShowInfo,
	},
	{
		Key:             "a",
		Description:     "Add contact",
		Category:        CategoryItems,
		RequiresSidebar: true,
		Handler:         shortcutAddContact,
	},
	{
		Key:             "c",
		Description:     "New group chat with selected contact",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutCreateGroup,
		Condition:       selectedKind(domain.KindContact),
	},
	{
		Key:             "d",
		Description:     "Remove selected contact",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutRemoveContact,
		Condition:       selectedKind(domain.KindContact),
	},
	{
		Key:             "y",
		Description:     "Copy contact handle",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutYankHandle,
		Condition:       selectedKind(domain.KindContact),
	},
	{
		Key:             "v",
		Description:     "Invite contact from clipboard",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutInviteFromClipboard,
		Condition:       selectedKind(domain.KindGroupRoom),
	},
	{
		Key:             "t",
		Description:     "Set topic of selected group chat",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutSetTopic,
		Condition:       selectedKind(domain.KindGroupRoom),
	},
	{
		Key:             "l",
		Description:     "Leave selected group chat",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutLeave,
		Condition:       selectedKind(domain.KindGroupRoom),
	},
	{
		Key:             "x",
		Description:     "Truncate history of selected chat",
		Category:        CategoryItems,
		RequiresSidebar: true,
		RequiresItem:    true,
		Handler:         shortcutTruncate,
		Condition:       selectedKind(domain.KindGroupRoom, domain.KindPeerRoom),
	},

	// Account
	{
		Key:             "p",
		Description:     "Set online status",
		Category:        CategoryAccount,
		RequiresSidebar: true,
		Handler:         shortcutPresence,
	},
	{
		Key:             "s",
		Description:     "Settings",
		Category:        CategoryAccount,
		RequiresSidebar: true,
		Handler:         shortcutSettings,
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:             "q",
		Description:     "Quit application",
		FooterDesc:      "quit",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show this help",
	FooterDesc:      "help",
	Category:        CategoryGeneral,
	RequiresSidebar: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
// These are context-sensitive or informational entries.
var DisplayOnlyShortcuts = []Shortcut{
	// Navigation (display-only)
	{DisplayKey: "↑/↓ or j/k", Description: "Move through the list", Category: CategoryNavigation},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll chat history", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Cancel search / Back to list", Category: CategoryNavigation},

	// Chat (display-only, context-sensitive)
	{DisplayKey: "Enter", Description: "Send message", FooterDesc: "send", Category: CategoryChat},
	{DisplayKey: "shift+enter", Description: "New line", FooterDesc: "new line", Category: CategoryChat},
	{DisplayKey: "Esc", Description: "Back to list", FooterDesc: "back", Category: CategoryChat},

	// Mouse (display-only)
	{DisplayKey: "Double-click", Description: "Open chat", Category: CategoryMouse},
	{DisplayKey: "Drag contact", Description: "Drop on a group chat to invite, elsewhere to copy its handle", Category: CategoryMouse},
}

// selectedKind returns a condition matching a selection of one of kinds.
func selectedKind(kinds ...domain.Kind) func(m *Model) bool {
	return func(m *Model) bool {
		key, ok := m.sidebar.Selected()
		if !ok {
			return false
		}
		for _, k := range kinds {
			if key.Kind == k {
				return true
			}
		}
		return false
	}
}

// chatFocused reports whether keys go to the chat input.
func (m *Model) chatFocused() bool {
	return m.focus == FocusChat
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal and footer.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.chatFocused() {
		return false
	}
	if s.RequiresItem {
		if _, ok := m.selectedItem(); !ok {
			return false
		}
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// It checks all guards (RequiresSidebar, RequiresItem, Condition) before executing.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// If sidebar is in search mode, don't process shortcuts - let keys go to search input
	// Exception: "/" is handled by its own Condition guard to allow entering search mode
	if m.sidebar.IsSearchMode() && key != "/" {
		return m, nil, false
	}

	// Handle help shortcut specially (defined outside registry to avoid init cycle)
	if key == helpShortcut.Key {
		if m.chatFocused() {
			return m, nil, false // Guard failed, let key propagate to textarea
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key, "focus", m.focus.String())
			return m, nil, false // Guard failed, let key propagate to the focused panel
		}
		m.log.Debug("executing shortcut", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	for _, s := range registry {
		if !m.isShortcutApplicable(s) {
			continue
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey(s),
			Desc: s.Description,
		})
	}

	// Chat display-only shortcuts only show when chat is focused
	for _, s := range displayOnly {
		if s.Category == CategoryChat && !m.chatFocused() {
			continue
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey(s),
			Desc: s.Description,
		})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// getApplicableFooterBindings lists the key hints for the footer from the
// same registry as the help modal.
func (m *Model) getApplicableFooterBindings() []ui.KeyBinding {
	var bindings []ui.KeyBinding
	if m.chatFocused() {
		for _, s := range DisplayOnlyShortcuts {
			if s.Category == CategoryChat && s.FooterDesc != "" {
				bindings = append(bindings, ui.KeyBinding{Key: s.DisplayKey, Desc: s.FooterDesc})
			}
		}
	}
	for _, s := range append(ShortcutRegistry, helpShortcut) {
		if s.FooterDesc == "" || !m.isShortcutApplicable(s) {
			continue
		}
		bindings = append(bindings, ui.KeyBinding{Key: s.Key, Desc: s.FooterDesc})
	}
	return bindings
}

func displayKey(s Shortcut) string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

// shortcutKeyForDisplay maps a help display key back to its key value.
// Display-only entries map to "".
func shortcutKeyForDisplay(display string) string {
	if display == helpShortcut.Key {
		return helpShortcut.Key
	}
	for _, s := range ShortcutRegistry {
		if displayKey(s) == display {
			return s.Key
		}
	}
	return ""
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutOpenChat(m *Model) (tea.Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	return m, m.openChat(item)
}

func shortcutContextMenu(m *Model) (tea.Model, tea.Cmd) {
	if key, ok := m.sidebar.Selected(); ok {
		m.showContextMenu(key)
	}
	return m, nil
}

func shortcutShowInfo(m *Model) (tea.Model, tea.Cmd) {
	if key, ok := m.sidebar.Selected(); ok {
		m.showTooltip(key)
	}
	return m, nil
}

func shortcutAddContact(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewAddContactState())
	return m, nil
}

func shortcutCreateGroup(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.runAction(key, roster.ActCreateGroup)
}

func shortcutRemoveContact(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.runAction(key, roster.ActRemoveContact)
}

func shortcutYankHandle(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.yankHandle(key)
}

func shortcutInviteFromClipboard(m *Model) (tea.Model, tea.Cmd) {
	g, ok := m.selectedGroup()
	if !ok {
		return m, nil
	}
	read, group := m.readClipboard, g.Room().ChatID()
	return m, func() tea.Msg {
		text, err := read()
		return ClipboardHandleMsg{Group: group, Text: text, Err: err}
	}
}

func shortcutSetTopic(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.runAction(key, roster.ActSetTopic)
}

func shortcutLeave(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.runAction(key, roster.ActLeave)
}

func shortcutTruncate(m *Model) (tea.Model, tea.Cmd) {
	key, _ := m.sidebar.Selected()
	return m, m.runAction(key, roster.ActTruncate)
}

func shortcutPresence(m *Model) (tea.Model, tea.Cmd) {
	m.showPresenceModal()
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.showSettingsModal()
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	// Include help shortcut in the registry for display purposes
	allShortcuts := append(ShortcutRegistry, helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// yankHandle copies a contact's user handle to the clipboard.
func (m *Model) yankHandle(key domain.Key) tea.Cmd {
	c, ok := m.registry.Contact(key.ID)
	if !ok || key.Kind != domain.KindContact {
		return nil
	}
	return m.copyHandle(c.DragPayload(), c.Contact().Email())
}

// copyHandle writes a drag payload to the clipboard off the UI loop.
func (m *Model) copyHandle(p roster.DragPayload, what string) tea.Cmd {
	write, text := m.writeClipboard, clipboard.EncodeUserHandle(p.Handle())
	return func() tea.Msg {
		return ClipboardMsg{What: what, Err: write(text)}
	}
}
