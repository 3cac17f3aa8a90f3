package domain

import (
	"context"
	"fmt"
)

// Kind is the type of entity a list item stands for.
type Kind int

const (
	KindContact Kind = iota + 1
	KindGroupRoom
	KindPeerRoom
)

func (k Kind) String() string {
	switch k {
	case KindContact:
		return "contact"
	case KindGroupRoom:
		return "group"
	case KindPeerRoom:
		return "peer"
	default:
		return "unknown"
	}
}

// Key identifies one entity. It is the value the model stores in an entity's
// handler slot and hands back on every later callback for that entity.
type Key struct {
	Kind Kind
	ID   ID
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.ID)
}

// IsZero reports whether k is the empty handle.
func (k Key) IsZero() bool { return k.Kind == 0 }

// ContactKey returns the key of a contact.
func ContactKey(id ID) Key { return Key{Kind: KindContact, ID: id} }

// GroupKey returns the key of a group room.
func GroupKey(id ID) Key { return Key{Kind: KindGroupRoom, ID: id} }

// PeerKey returns the key of a 1:1 room.
func PeerKey(id ID) Key { return Key{Kind: KindPeerRoom, ID: id} }

// RoomKey returns the key of any room.
func RoomKey(r Room) Key {
	if r.IsGroup() {
		return GroupKey(r.ChatID())
	}
	return PeerKey(r.ChatID())
}

// CallAnswer is an incoming call waiting for the user's decision.
type CallAnswer interface {
	CallID() string
	Caller() ID
	CallerName() string
	Video() bool
	Answer(ctx context.Context, accept bool) error
}

// CallHandler receives events for a call after it has been offered.
type CallHandler interface {
	OnCallState(state string)
	OnCallEnded(reason string)
}

// ContactRequest is an incoming request to be added as a contact.
type ContactRequest interface {
	Email() string
	Text() string
	Reply(ctx context.Context, accept bool) error
}

// App is what the model calls into. Add methods return the handle stored in
// the entity's slot; the model passes it back on every later call for that
// entity and never dereferences it. All methods are called from model
// goroutines.
type App interface {
	AddContactItem(c Contact) Key
	RemoveContactItem(h Key)
	AddGroupChatItem(r GroupRoom) Key
	AddPeerChatItem(r PeerRoom) Key
	RemoveChatItem(h Key)

	OnPresenceChanged(h Key, p Presence)
	OnTitleChanged(h Key, title string)
	OnUnreadCountChanged(h Key, count int)
	OnVisibilityChanged(h Key, v Visibility)
	OnMembersUpdated(h Key)

	OnMessage(m Message)
	OnOwnPresence(p Presence)
	OnIncomingContactRequest(req ContactRequest)
	OnIncomingCall(ans CallAnswer) CallHandler
	// OnReady is called once identity data (emails, jids) can be queried.
	OnReady()
}
