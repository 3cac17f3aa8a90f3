package roster

import "github.com/zhubert/huddle/internal/domain"

// Event is a domain notification carried from the model's goroutines to the
// UI loop.
type Event interface {
	event()
}

type (
	ContactAdded    struct{ Contact domain.Contact }
	GroupRoomAdded  struct{ Room domain.GroupRoom }
	PeerRoomAdded   struct{ Room domain.PeerRoom }
	ItemRemoved     struct{ Key domain.Key }
	PresenceChanged struct {
		Key      domain.Key
		Presence domain.Presence
	}
	TitleChanged struct {
		Key   domain.Key
		Title string
	}
	UnreadCountChanged struct {
		Key   domain.Key
		Count int
	}
	VisibilityChanged struct {
		Key        domain.Key
		Visibility domain.Visibility
	}
	MembersUpdated  struct{ Key domain.Key }
	MessageReceived struct{ Message domain.Message }
	ClientReady     struct{}

	// Events the registry does not consume; the app handles them.

	OwnPresenceChanged     struct{ Presence domain.Presence }
	ContactRequestReceived struct{ Request domain.ContactRequest }
	IncomingCall           struct{ Call domain.CallAnswer }
	CallStateChanged       struct {
		CallID string
		State  string
		Ended  bool
	}
)

func (ContactAdded) event()           {}
func (GroupRoomAdded) event()         {}
func (PeerRoomAdded) event()          {}
func (ItemRemoved) event()            {}
func (PresenceChanged) event()        {}
func (TitleChanged) event()           {}
func (UnreadCountChanged) event()     {}
func (VisibilityChanged) event()      {}
func (MembersUpdated) event()         {}
func (MessageReceived) event()        {}
func (ClientReady) event()            {}
func (OwnPresenceChanged) event()     {}
func (ContactRequestReceived) event() {}
func (IncomingCall) event()           {}
func (CallStateChanged) event()       {}
