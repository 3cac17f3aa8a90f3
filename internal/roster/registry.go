// Package roster keeps the contact and chat list consistent with the chat
// model.
//
// The Registry owns one ListItem per contact, group room and 1:1 room. It
// creates and destroys items when the model announces entities, routes the
// model's per-entity events to the right item, binds chat windows to rooms,
// and issues the model operations users trigger from the list. Everything in
// this package runs on the Bubble Tea loop; model callbacks reach it as
// Events through a Bridge.
package roster

import (
	"log/slog"
	"sort"
	"time"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/logger"
)

// Reporter shows the outcome of an operation to the user.
type Reporter interface {
	// ReportError shows a modal error. It is called exactly once per failed
	// operation.
	ReportError(title string, err error)
	// ReportInfo shows a transient message.
	ReportInfo(text string)
}

// Options configures a Registry.
type Options struct {
	// ActionTimeout bounds each model operation. Zero means no deadline.
	ActionTimeout time.Duration
}

// Registry maps entity keys to list items.
type Registry struct {
	client    domain.Client
	container Container
	windows   *Windows
	reporter  Reporter
	opts      Options
	log       *slog.Logger

	items    map[domain.Key]ListItem
	pending  map[domain.Key]*ContactItem
	inFlight map[flightKey]string
	// Rooms whose removal has been announced. A completion for one of
	// them must not bring its window back.
	removedRooms map[domain.ID]bool
	ready        bool
	closed       bool
}

// NewRegistry creates an empty registry.
func NewRegistry(client domain.Client, container Container, windows *Windows, reporter Reporter, opts Options) *Registry {
	return &Registry{
		client:       client,
		container:    container,
		windows:      windows,
		reporter:     reporter,
		opts:         opts,
		log:          logger.WithComponent("roster"),
		items:        make(map[domain.Key]ListItem),
		pending:      make(map[domain.Key]*ContactItem),
		inFlight:     make(map[flightKey]string),
		removedRooms: make(map[domain.ID]bool),
	}
}

// Windows returns the window registry.
func (r *Registry) Windows() *Windows { return r.windows }

// Client returns the model client.
func (r *Registry) Client() domain.Client { return r.client }

// claim refuses a second item for the same entity.
func (r *Registry) claim(key domain.Key) error {
	if _, ok := r.items[key]; ok {
		err := errors.DuplicateItem(key.String())
		r.log.Error("refusing duplicate list item", "key", key.String(), "error", err)
		return err
	}
	if key.Kind != domain.KindContact {
		delete(r.removedRooms, key.ID)
	}
	return nil
}

// roomLive reports whether chat can still get a window: its removal has
// not been announced, and it has a list item or the client still knows it.
func (r *Registry) roomLive(chat domain.ID) bool {
	if r.removedRooms[chat] {
		return false
	}
	if _, ok := r.items[domain.GroupKey(chat)]; ok {
		return true
	}
	if _, ok := r.items[domain.PeerKey(chat)]; ok {
		return true
	}
	_, ok := r.client.Room(chat)
	return ok
}

// AddContactItem creates the item of a contact. If the client is already
// ready the item is attached immediately.
func (r *Registry) AddContactItem(c domain.Contact) (*ContactItem, error) {
	key := domain.ContactKey(c.UserID())
	if err := r.claim(key); err != nil {
		return nil, err
	}
	it := newContactItem(r, c, r.container.AddRow(key))
	r.items[key] = it
	if r.ready {
		it.Attach()
	} else {
		r.pending[key] = it
	}
	r.log.Debug("contact item created", "key", key.String())
	return it, nil
}

// AddGroupItem creates the item of a group room.
func (r *Registry) AddGroupItem(room domain.GroupRoom) (*GroupChatItem, error) {
	key := domain.GroupKey(room.ChatID())
	if err := r.claim(key); err != nil {
		return nil, err
	}
	it := newGroupChatItem(r, room, r.container.AddRow(key))
	r.items[key] = it
	r.log.Debug("group chat item created", "key", key.String())
	return it, nil
}

// AddPeerItem creates the item of a 1:1 room.
func (r *Registry) AddPeerItem(room domain.PeerRoom) (*PeerChatItem, error) {
	key := domain.PeerKey(room.ChatID())
	if err := r.claim(key); err != nil {
		return nil, err
	}
	it := newPeerChatItem(r, room, r.container.AddRow(key))
	r.items[key] = it
	r.log.Debug("peer chat item created", "key", key.String())
	// The contact's tooltip now has a chat handle.
	if c := room.Contact(); c != nil {
		if ci, ok := r.Contact(c.UserID()); ok && ci.Attached() {
			ci.UpdateToolTip()
		}
	}
	return it, nil
}

// Remove destroys the item of an entity together with its chat window.
func (r *Registry) Remove(key domain.Key) error {
	if key.Kind != domain.KindContact {
		r.removedRooms[key.ID] = true
		// A window may be bound to a room that never had an item.
		r.windows.Close(key.ID)
	}
	it, ok := r.items[key]
	if !ok {
		err := errors.EntityGone(key.String())
		r.log.Warn("remove for unknown item", "key", key.String(), "error", err)
		return err
	}
	it.destroy()
	delete(r.items, key)
	delete(r.pending, key)
	r.container.RemoveRow(key)
	r.log.Debug("item removed", "key", key.String())
	return nil
}

// Item returns the item bound to key.
func (r *Registry) Item(key domain.Key) (ListItem, bool) {
	it, ok := r.items[key]
	return it, ok
}

// Contact returns the item of a contact.
func (r *Registry) Contact(id domain.ID) (*ContactItem, bool) {
	it, ok := r.items[domain.ContactKey(id)].(*ContactItem)
	return it, ok
}

// Group returns the item of a group room.
func (r *Registry) Group(id domain.ID) (*GroupChatItem, bool) {
	it, ok := r.items[domain.GroupKey(id)].(*GroupChatItem)
	return it, ok
}

// Peer returns the item of a 1:1 room.
func (r *Registry) Peer(id domain.ID) (*PeerChatItem, bool) {
	it, ok := r.items[domain.PeerKey(id)].(*PeerChatItem)
	return it, ok
}

// Len returns the number of items.
func (r *Registry) Len() int { return len(r.items) }

// Keys returns every item key, contacts first, then by id.
func (r *Registry) Keys() []domain.Key {
	keys := make([]domain.Key, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].ID < keys[j].ID
	})
	return keys
}

// MarkReady attaches every contact item created before the client was ready.
func (r *Registry) MarkReady() {
	if r.ready {
		return
	}
	r.ready = true
	for key, it := range r.pending {
		it.Attach()
		delete(r.pending, key)
	}
	r.log.Info("client ready", "items", len(r.items))
}

// Ready reports whether MarkReady has run.
func (r *Registry) Ready() bool { return r.ready }

// Close marks the UI as torn down. Completions arriving later are dropped.
func (r *Registry) Close() {
	r.closed = true
	r.windows.CloseAll()
}

// Apply routes an event to the registry or one of its items. It reports
// false for events the registry does not handle.
func (r *Registry) Apply(ev Event) bool {
	switch e := ev.(type) {
	case ContactAdded:
		_, _ = r.AddContactItem(e.Contact)
	case GroupRoomAdded:
		_, _ = r.AddGroupItem(e.Room)
	case PeerRoomAdded:
		_, _ = r.AddPeerItem(e.Room)
	case ItemRemoved:
		_ = r.Remove(e.Key)
	case PresenceChanged:
		r.route(e.Key, "presence", func(it ListItem) { it.OnPresenceChanged(e.Presence) })
	case TitleChanged:
		r.route(e.Key, "title", func(it ListItem) { it.OnTitleChanged(e.Title) })
	case UnreadCountChanged:
		r.route(e.Key, "unread", func(it ListItem) { it.OnUnreadCountChanged(e.Count) })
	case VisibilityChanged:
		r.route(e.Key, "visibility", func(it ListItem) { it.OnVisibilityChanged(e.Visibility) })
	case MembersUpdated:
		r.route(e.Key, "members", func(it ListItem) {
			if g, ok := it.(*GroupChatItem); ok {
				g.OnMembersUpdated()
			}
		})
	case MessageReceived:
		r.windows.Deliver(e.Message)
	case ClientReady:
		r.MarkReady()
	default:
		return false
	}
	return true
}

func (r *Registry) route(key domain.Key, op string, fn func(ListItem)) {
	it, ok := r.items[key]
	if !ok {
		r.log.Warn("event for unknown item", "key", key.String(), "op", op,
			"error", errors.EntityGone(key.String()))
		return
	}
	fn(it)
}
