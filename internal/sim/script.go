package sim

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
)

// Scripted events stand in for what other users do. They return an error
// only when the script names something that does not exist.

// SetPresence changes a contact's online state. The contact's 1:1 room
// follows.
func (n *Network) SetPresence(contact domain.ID, p domain.Presence) error {
	n.mu.Lock()
	c, ok := n.contacts[contact]
	if !ok {
		n.mu.Unlock()
		return notFound("SetPresence", "contact", contact)
	}
	c.presence = p
	contactSlot := c.slot
	var roomSlot domain.Key
	if r := n.rooms[c.room]; r != nil {
		roomSlot = r.slot
	}
	n.mu.Unlock()

	n.notify(func(app domain.App) {
		app.OnPresenceChanged(contactSlot, p)
		if !roomSlot.IsZero() {
			app.OnPresenceChanged(roomSlot, p)
		}
	})
	return nil
}

// SetVisibility changes whether a contact is hidden.
func (n *Network) SetVisibility(contact domain.ID, v domain.Visibility) error {
	n.mu.Lock()
	c, ok := n.contacts[contact]
	if !ok {
		n.mu.Unlock()
		return notFound("SetVisibility", "contact", contact)
	}
	c.visibility = v
	slot := c.slot
	n.mu.Unlock()

	n.notify(func(app domain.App) { app.OnVisibilityChanged(slot, v) })
	return nil
}

// Rename changes a contact's display name, which is also the title of the
// 1:1 room.
func (n *Network) Rename(contact domain.ID, name string) error {
	n.mu.Lock()
	c, ok := n.contacts[contact]
	if !ok {
		n.mu.Unlock()
		return notFound("Rename", "contact", contact)
	}
	c.name = name
	contactSlot := c.slot
	var roomSlot domain.Key
	if r := n.rooms[c.room]; r != nil {
		roomSlot = r.slot
	}
	n.mu.Unlock()

	n.notify(func(app domain.App) {
		app.OnTitleChanged(contactSlot, name)
		if !roomSlot.IsZero() {
			app.OnTitleChanged(roomSlot, name)
		}
	})
	return nil
}

// Deliver posts a message from another user into a room and bumps the
// unread count. A negative count ("at least n") grows the same way.
func (n *Network) Deliver(chat, from domain.ID, text string) error {
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok {
		n.mu.Unlock()
		return notFound("Deliver", "room", chat)
	}
	m := domain.Message{
		ID:       uuid.NewString(),
		ChatID:   chat,
		From:     from,
		FromName: n.nameLocked(from),
		Text:     text,
		Sent:     time.Now(),
	}
	r.history = append(r.history, m)
	if r.unread < 0 {
		r.unread--
	} else {
		r.unread++
	}
	unread, slot := r.unread, r.slot
	n.mu.Unlock()

	n.notify(func(app domain.App) {
		app.OnMessage(m)
		app.OnUnreadCountChanged(slot, unread)
	})
	return nil
}

// Call is an incoming call offered to the app.
type Call struct {
	n      *Network
	id     string
	caller domain.ID
	name   string
	video  bool

	handler  domain.CallHandler
	answered bool
	accepted bool
	ended    bool
}

var _ domain.CallAnswer = (*Call)(nil)

func (c *Call) CallID() string     { return c.id }
func (c *Call) Caller() domain.ID  { return c.caller }
func (c *Call) CallerName() string { return c.name }
func (c *Call) Video() bool        { return c.video }

// Answer accepts or rejects the call. The decision is reported back through
// the handler the app returned when the call was offered.
func (c *Call) Answer(ctx context.Context, accept bool) error {
	if err := c.n.begin(ctx, MethodAnswerCall); err != nil {
		return err
	}
	c.n.mu.Lock()
	if c.answered || c.ended {
		c.n.mu.Unlock()
		return errors.E(errors.Op("sim.AnswerCall"), errors.KindInvalid, "call "+c.id+" is no longer ringing")
	}
	c.answered, c.accepted = true, accept
	if !accept {
		c.ended = true
	}
	h := c.handler
	c.n.mu.Unlock()

	if h == nil {
		return nil
	}
	if accept {
		h.OnCallState("in progress")
	} else {
		h.OnCallEnded("rejected")
	}
	return nil
}

// Hangup ends the call from the caller's side.
func (c *Call) Hangup() {
	c.n.mu.Lock()
	if c.ended {
		c.n.mu.Unlock()
		return
	}
	c.ended = true
	h := c.handler
	c.n.mu.Unlock()
	if h != nil {
		h.OnCallEnded("hung up")
	}
}

// Accepted reports whether the call was answered and accepted.
func (c *Call) Accepted() bool {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	return c.accepted
}

// Ended reports whether the call is over.
func (c *Call) Ended() bool {
	c.n.mu.Lock()
	defer c.n.mu.Unlock()
	return c.ended
}

// OfferCall rings the app with a call from a contact.
func (n *Network) OfferCall(from domain.ID, video bool) (*Call, error) {
	n.mu.Lock()
	if _, ok := n.contacts[from]; !ok {
		n.mu.Unlock()
		return nil, notFound("OfferCall", "contact", from)
	}
	call := &Call{n: n, id: uuid.NewString(), caller: from, name: n.nameLocked(from), video: video}
	n.calls[call.id] = call
	n.mu.Unlock()

	n.notify(func(app domain.App) {
		h := app.OnIncomingCall(call)
		n.mu.Lock()
		call.handler = h
		n.mu.Unlock()
	})
	return call, nil
}

// ContactRequest is a request from another user to become a contact.
type ContactRequest struct {
	n    *Network
	from user
	text string

	replied  bool
	accepted bool
}

var _ domain.ContactRequest = (*ContactRequest)(nil)

func (r *ContactRequest) Email() string { return r.from.email }
func (r *ContactRequest) Text() string  { return r.text }

// Reply accepts or ignores the request. Accepting adds the sender to the
// contact list.
func (r *ContactRequest) Reply(ctx context.Context, accept bool) error {
	if err := r.n.begin(ctx, MethodAddContact); err != nil {
		return err
	}
	r.n.mu.Lock()
	if r.replied {
		r.n.mu.Unlock()
		return errors.E(errors.Op("sim.ReplyContactRequest"), errors.KindInvalid, "request from "+r.from.email+" was already answered")
	}
	r.replied, r.accepted = true, accept
	_, isContact := r.n.contacts[r.from.id]
	r.n.mu.Unlock()

	if accept && !isContact {
		r.n.addContact(r.from)
	}
	return nil
}

// Accepted reports whether the request was accepted.
func (r *ContactRequest) Accepted() bool {
	r.n.mu.Lock()
	defer r.n.mu.Unlock()
	return r.accepted
}

// SendContactRequest delivers a contact request from a known user who is
// not yet a contact.
func (n *Network) SendContactRequest(from domain.ID, text string) (*ContactRequest, error) {
	n.mu.Lock()
	u, ok := n.users[from]
	if !ok {
		n.mu.Unlock()
		return nil, notFound("SendContactRequest", "user", from)
	}
	req := &ContactRequest{n: n, from: u, text: text}
	n.mu.Unlock()

	n.notify(func(app domain.App) { app.OnIncomingContactRequest(req) })
	return req, nil
}
