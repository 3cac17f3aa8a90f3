package roster

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/logger"
)

// Presentable items re-derive their row from the latest domain event.
type Presentable interface {
	OnPresenceChanged(p domain.Presence)
	OnUnreadCountChanged(count int)
	OnTitleChanged(title string)
	OnVisibilityChanged(v domain.Visibility)
}

// Tooltippable items keep a multi-line description of their entity.
type Tooltippable interface {
	UpdateToolTip()
	ToolTip() string
}

// Hideable items can be styled as hidden.
type Hideable interface {
	ShowAsHidden()
	UnshowAsHidden()
	IsShownHidden() bool
}

// ChatWindowOwner items can bring up the chat window of their room. The
// returned command is non-nil when a room has to be created first.
type ChatWindowOwner interface {
	ShowChatWindow() tea.Cmd
}

// ListItem is the visual proxy of one contact or room.
type ListItem interface {
	Presentable
	Tooltippable
	Hideable
	ChatWindowOwner

	Key() domain.Key
	// Actions lists the context menu entries for the item.
	Actions() []Action

	destroy()
}

// baseItem holds what every list item shares: its key, its row and the
// unread badge state.
type baseItem struct {
	key     domain.Key
	reg     *Registry
	surface Surface
	log     *slog.Logger

	lastUnread int
	hidden     bool
	tooltip    string
	dead       bool
}

func newBaseItem(reg *Registry, key domain.Key, s Surface) baseItem {
	s.HideBadge()
	return baseItem{
		key:     key,
		reg:     reg,
		surface: s,
		log:     logger.WithEntity(key.String()),
	}
}

func (b *baseItem) Key() domain.Key { return b.key }

// gone reports, and logs, use of an item after its entity was removed.
func (b *baseItem) gone(op string) bool {
	if b.dead {
		b.log.Error("invariant violation: item used after destruction", "op", op)
	}
	return b.dead
}

func (b *baseItem) destroy() { b.dead = true }

func (b *baseItem) OnPresenceChanged(p domain.Presence) {
	if b.gone("presence") {
		return
	}
	b.surface.SetIndicator(p)
}

// OnUnreadCountChanged updates the badge text on every call and toggles the
// badge only when the count crosses zero.
func (b *baseItem) OnUnreadCountChanged(count int) {
	if b.gone("unread") {
		return
	}
	b.surface.SetBadgeText(UnreadText(count))
	if count != 0 {
		if b.lastUnread == 0 {
			b.surface.ShowBadge()
		}
	} else if b.lastUnread != 0 {
		b.surface.HideBadge()
	}
	b.lastUnread = count
}

func (b *baseItem) ShowAsHidden() {
	if b.gone("hide") {
		return
	}
	b.hidden = true
	b.surface.SetNameHidden(true)
}

func (b *baseItem) UnshowAsHidden() {
	if b.gone("unhide") {
		return
	}
	b.hidden = false
	b.surface.SetNameHidden(false)
}

func (b *baseItem) IsShownHidden() bool { return b.hidden }

func (b *baseItem) ToolTip() string { return b.tooltip }

func (b *baseItem) setToolTip(text string) {
	b.tooltip = text
	b.surface.SetToolTip(text)
}

// UnreadCount returns the last count the item was told about.
func (b *baseItem) UnreadCount() int { return b.lastUnread }

// ActionID names a context menu entry.
type ActionID int

const (
	ActOpenChat ActionID = iota
	ActShowInfo
	ActCreateGroup
	ActRemoveContact
	ActLeave
	ActSetTopic
	ActTruncate
)

// Action is one context menu entry.
type Action struct {
	ID    ActionID
	Label string
}
