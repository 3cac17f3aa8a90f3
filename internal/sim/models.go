package sim

import (
	"sort"

	"github.com/zhubert/huddle/internal/domain"
)

// user is anyone the network knows an email for.
type user struct {
	id    domain.ID
	name  string
	email string
}

type contactRec struct {
	user
	presence   domain.Presence
	visibility domain.Visibility
	room       domain.ID // 0 when there is no 1:1 room
	slot       domain.Key
}

type roomRec struct {
	id      domain.ID
	group   bool
	title   string
	peer    domain.ID // the contact of a 1:1 room
	ownPriv domain.Priv
	members []domain.Member
	unread  int
	history []domain.Message
	slot    domain.Key
}

// The views below are what the UI holds on to. They read through the
// network on every call so they always reflect the current state, and they
// keep working, with zero values, after their entity is gone.

type contactView struct {
	n  *Network
	id domain.ID
}

var _ domain.Contact = contactView{}

func (v contactView) rec() *contactRec { return v.n.contacts[v.id] }

func (v contactView) UserID() domain.ID { return v.id }

func (v contactView) Email() string {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if c := v.rec(); c != nil {
		return c.email
	}
	return v.n.emailLocked(v.id)
}

// JID is only known once the client is ready.
func (v contactView) JID() string {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if !v.n.ready {
		return ""
	}
	return jid(v.id)
}

func (v contactView) Title() string {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if c := v.rec(); c != nil {
		return c.name
	}
	return ""
}

func (v contactView) Presence() domain.Presence {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if c := v.rec(); c != nil {
		return c.presence
	}
	return domain.PresenceOffline
}

func (v contactView) Visibility() domain.Visibility {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if c := v.rec(); c != nil {
		return c.visibility
	}
	return domain.VisibilityUnknown
}

func (v contactView) ChatRoom() domain.PeerRoom {
	v.n.mu.Lock()
	c := v.rec()
	if c == nil || c.room == 0 {
		v.n.mu.Unlock()
		return nil
	}
	id := c.room
	v.n.mu.Unlock()
	return peerView{roomView{n: v.n, id: id}}
}

type roomView struct {
	n  *Network
	id domain.ID
}

func (v roomView) rec() *roomRec { return v.n.rooms[v.id] }

func (v roomView) ChatID() domain.ID { return v.id }

func (v roomView) Title() string {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	r := v.rec()
	if r == nil {
		return ""
	}
	if !r.group {
		if c := v.n.contacts[r.peer]; c != nil {
			return c.name
		}
	}
	return r.title
}

func (v roomView) OwnPriv() domain.Priv {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if r := v.rec(); r != nil {
		return r.ownPriv
	}
	return domain.PrivNotPresent
}

func (v roomView) IsGroup() bool {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	r := v.rec()
	return r != nil && r.group
}

func (v roomView) UnreadCount() int {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	if r := v.rec(); r != nil {
		return r.unread
	}
	return 0
}

// Presence of a 1:1 room is its contact's. A group is online when any
// member is.
func (v roomView) Presence() domain.Presence {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	r := v.rec()
	if r == nil {
		return domain.PresenceOffline
	}
	return v.n.roomPresenceLocked(r)
}

type groupView struct{ roomView }

var _ domain.GroupRoom = groupView{}

func (v groupView) Members() []domain.Member {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	r := v.rec()
	if r == nil {
		return nil
	}
	out := make([]domain.Member, len(r.members))
	copy(out, r.members)
	return out
}

type peerView struct{ roomView }

var _ domain.PeerRoom = peerView{}

func (v peerView) Contact() domain.Contact {
	v.n.mu.Lock()
	defer v.n.mu.Unlock()
	r := v.rec()
	if r == nil {
		return nil
	}
	if _, ok := v.n.contacts[r.peer]; !ok {
		return nil
	}
	return contactView{n: v.n, id: r.peer}
}

func (n *Network) roomPresenceLocked(r *roomRec) domain.Presence {
	if !r.group {
		if c := n.contacts[r.peer]; c != nil {
			return c.presence
		}
		return domain.PresenceOffline
	}
	for _, m := range r.members {
		if c := n.contacts[m.UserID]; c != nil && c.presence == domain.PresenceOnline {
			return domain.PresenceOnline
		}
	}
	return domain.PresenceOffline
}

func (n *Network) emailLocked(id domain.ID) string {
	if id == n.self.id {
		return n.self.email
	}
	if c := n.contacts[id]; c != nil {
		return c.email
	}
	if u, ok := n.users[id]; ok {
		return u.email
	}
	return ""
}

func (n *Network) nameLocked(id domain.ID) string {
	if id == n.self.id {
		return n.self.name
	}
	if c := n.contacts[id]; c != nil {
		return c.name
	}
	if u, ok := n.users[id]; ok {
		return u.name
	}
	return id.String()
}

func (n *Network) viewLocked(r *roomRec) domain.Room {
	if r.group {
		return groupView{roomView{n: n, id: r.id}}
	}
	return peerView{roomView{n: n, id: r.id}}
}

func sortedIDs[V any](m map[domain.ID]V) []domain.ID {
	ids := make([]domain.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func jid(id domain.ID) string {
	return id.String() + "@chat.huddle.local"
}
