// Package domain describes the chat client model that huddle presents.
//
// The model is owned by a client library running on its own goroutines. huddle
// reads it through the read-only views declared here, mutates it only through
// Client, and is told about changes through the App callbacks.
package domain

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

// ID is an opaque 64-bit handle for users and chat rooms.
type ID uint64

// String renders the id in the 11 character base64url form users see.
func (id ID) String() string {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(id))
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ParseID parses the form produced by ID.String.
func ParseID(s string) (ID, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if len(b) != 8 {
		return 0, fmt.Errorf("invalid id %q: want 8 bytes, got %d", s, len(b))
	}
	return ID(binary.LittleEndian.Uint64(b)), nil
}

// Presence is a user's online state.
type Presence int

const (
	PresenceOffline Presence = iota
	PresenceAway
	PresenceOnline
	PresenceBusy
)

func (p Presence) String() string {
	switch p {
	case PresenceAway:
		return "away"
	case PresenceOnline:
		return "online"
	case PresenceBusy:
		return "busy"
	default:
		return "offline"
	}
}

// ParsePresence accepts the names produced by Presence.String.
func ParsePresence(s string) (Presence, bool) {
	for p := PresenceOffline; p <= PresenceBusy; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return PresenceOffline, false
}

// Visibility is the contact's visibility in the user's contact list.
type Visibility int

const (
	VisibilityUnknown Visibility = -1
	VisibilityHidden  Visibility = 0
	VisibilityVisible Visibility = 1
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "hidden"
	case VisibilityVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// Priv is a member's privilege level in a room. The numeric values are shown
// to the user.
type Priv int

const (
	PrivNotPresent Priv = -1
	PrivReadOnly   Priv = 0
	PrivReadWrite  Priv = 2
	PrivFull       Priv = 3
)

// Contact is a read-only view of a user in the contact list.
type Contact interface {
	UserID() ID
	Email() string
	JID() string
	Title() string
	Presence() Presence
	Visibility() Visibility
	// ChatRoom returns the 1:1 room with this contact, or nil if none exists.
	ChatRoom() PeerRoom
}

// Room is a read-only view of a chat room.
type Room interface {
	ChatID() ID
	Title() string
	OwnPriv() Priv
	IsGroup() bool
	UnreadCount() int
	Presence() Presence
}

// Member is a participant of a group room other than the user.
type Member struct {
	UserID ID
	Name   string
	Priv   Priv
}

// GroupRoom is a room with any number of members.
type GroupRoom interface {
	Room
	Members() []Member
}

// PeerRoom is a 1:1 room.
type PeerRoom interface {
	Room
	Contact() Contact
}

// Invite names a user and the privilege they get in a new group.
type Invite struct {
	UserID ID
	Priv   Priv
}

// Message is a chat message.
type Message struct {
	ID       string
	ChatID   ID
	From     ID
	FromName string
	Text     string
	Sent     time.Time
	Own      bool
}

// MediaDevices lists the capture devices a call can use.
type MediaDevices struct {
	AudioInputs []string
	VideoInputs []string
}

// Client is the mutable side of the model. Every mutation may block on the
// network and fails with an error; none of them may be called twice for the
// same purpose while the first is still running.
type Client interface {
	Contact(id ID) (Contact, bool)
	Room(id ID) (Room, bool)
	// UserEmail returns a cached email for any user, contact or not.
	UserEmail(id ID) (string, bool)
	OwnPresence() Presence
	MediaDevices() MediaDevices
	History(chat ID) []Message

	CreatePeerRoom(ctx context.Context, contact ID) (ID, error)
	CreateGroupRoom(ctx context.Context, name string, members []Invite) (ID, error)
	RemoveContact(ctx context.Context, contact ID) error
	AddContact(ctx context.Context, email string) error
	LeaveRoom(ctx context.Context, chat ID) error
	SetRoomTopic(ctx context.Context, chat ID, topic string) error
	TruncateRoom(ctx context.Context, chat ID) error
	InviteToGroup(ctx context.Context, chat ID, user ID, priv Priv) error
	SetOwnPresence(ctx context.Context, p Presence) error
	SendMessage(ctx context.Context, chat ID, text string) error
	SelectMediaInputs(ctx context.Context, audio, video string) error
}
