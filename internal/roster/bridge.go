package roster

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// eventBuffer is how many events the model may queue before it blocks.
const eventBuffer = 256

// EventMsg delivers one domain event to the UI loop.
type EventMsg struct {
	Event Event
}

// Bridge is the domain.App the model calls. It never touches UI state: each
// callback becomes an Event read by the UI loop through Listen.
type Bridge struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

var _ domain.App = (*Bridge)(nil)

// NewBridge creates a bridge.
func NewBridge() *Bridge {
	return &Bridge{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Listen returns a command that waits for the next event. Re-issue it after
// each EventMsg.
func (b *Bridge) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-b.events:
			return EventMsg{Event: ev}
		case <-b.done:
			return nil
		}
	}
}

// Poll returns the next queued event without waiting.
func (b *Bridge) Poll() (Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	default:
		return nil, false
	}
}

// Close releases any model goroutine blocked on a full queue. Later
// callbacks are dropped.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Bridge) post(ev Event) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

func (b *Bridge) AddContactItem(c domain.Contact) domain.Key {
	b.post(ContactAdded{Contact: c})
	return domain.ContactKey(c.UserID())
}

func (b *Bridge) RemoveContactItem(h domain.Key) { b.post(ItemRemoved{Key: h}) }

func (b *Bridge) AddGroupChatItem(r domain.GroupRoom) domain.Key {
	b.post(GroupRoomAdded{Room: r})
	return domain.GroupKey(r.ChatID())
}

func (b *Bridge) AddPeerChatItem(r domain.PeerRoom) domain.Key {
	b.post(PeerRoomAdded{Room: r})
	return domain.PeerKey(r.ChatID())
}

func (b *Bridge) RemoveChatItem(h domain.Key) { b.post(ItemRemoved{Key: h}) }

func (b *Bridge) OnPresenceChanged(h domain.Key, p domain.Presence) {
	b.post(PresenceChanged{Key: h, Presence: p})
}

func (b *Bridge) OnTitleChanged(h domain.Key, title string) {
	b.post(TitleChanged{Key: h, Title: title})
}

func (b *Bridge) OnUnreadCountChanged(h domain.Key, count int) {
	b.post(UnreadCountChanged{Key: h, Count: count})
}

func (b *Bridge) OnVisibilityChanged(h domain.Key, v domain.Visibility) {
	b.post(VisibilityChanged{Key: h, Visibility: v})
}

func (b *Bridge) OnMembersUpdated(h domain.Key) { b.post(MembersUpdated{Key: h}) }

func (b *Bridge) OnMessage(m domain.Message) { b.post(MessageReceived{Message: m}) }

func (b *Bridge) OnOwnPresence(p domain.Presence) { b.post(OwnPresenceChanged{Presence: p}) }

func (b *Bridge) OnIncomingContactRequest(req domain.ContactRequest) {
	b.post(ContactRequestReceived{Request: req})
}

// OnIncomingCall queues the offer and returns a handler that forwards the
// call's later events the same way.
func (b *Bridge) OnIncomingCall(ans domain.CallAnswer) domain.CallHandler {
	b.post(IncomingCall{Call: ans})
	return callRelay{b: b, id: ans.CallID()}
}

func (b *Bridge) OnReady() { b.post(ClientReady{}) }

type callRelay struct {
	b  *Bridge
	id string
}

func (c callRelay) OnCallState(state string) {
	c.b.post(CallStateChanged{CallID: c.id, State: state})
}

func (c callRelay) OnCallEnded(reason string) {
	c.b.post(CallStateChanged{CallID: c.id, State: reason, Ended: true})
}
