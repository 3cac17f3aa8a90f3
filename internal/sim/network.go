// Package sim is an in-process chat network.
//
// Network implements domain.Client against in-memory state loaded from a
// YAML fixture. It calls back into a domain.App from its own goroutines the
// way a real client library would, so the TUI can run, and be tested,
// without a server. Scripted hooks (SetPresence, Deliver, OfferCall, ...)
// stand in for other users.
package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/logger"
)

// Method names a Client operation for failure injection.
type Method string

const (
	MethodCreatePeerRoom    Method = "CreatePeerRoom"
	MethodCreateGroupRoom   Method = "CreateGroupRoom"
	MethodRemoveContact     Method = "RemoveContact"
	MethodAddContact        Method = "AddContact"
	MethodLeaveRoom         Method = "LeaveRoom"
	MethodSetRoomTopic      Method = "SetRoomTopic"
	MethodTruncateRoom      Method = "TruncateRoom"
	MethodInviteToGroup     Method = "InviteToGroup"
	MethodSetOwnPresence    Method = "SetOwnPresence"
	MethodSendMessage       Method = "SendMessage"
	MethodSelectMediaInputs Method = "SelectMediaInputs"
	MethodAnswerCall        Method = "AnswerCall"
)

// Network is the simulated chat network seen from one user's account.
type Network struct {
	mu sync.Mutex

	app      domain.App
	self     user
	users    map[domain.ID]user
	contacts map[domain.ID]*contactRec
	rooms    map[domain.ID]*roomRec
	devices  domain.MediaDevices
	audio    string
	video    string
	presence domain.Presence
	ready    bool
	nextID   domain.ID
	latency  time.Duration
	failures map[Method][]error
	calls    map[string]*Call
	timers   []*time.Timer
	stopped  bool

	log *slog.Logger
}

var _ domain.Client = (*Network)(nil)

// New creates an empty network for the account self.
func New(selfID domain.ID, name, email string) *Network {
	return &Network{
		self:     user{id: selfID, name: name, email: email},
		users:    make(map[domain.ID]user),
		contacts: make(map[domain.ID]*contactRec),
		rooms:    make(map[domain.ID]*roomRec),
		presence: domain.PresenceOnline,
		nextID:   1 << 20,
		failures: make(map[Method][]error),
		calls:    make(map[string]*Call),
		log:      logger.WithComponent("sim"),
	}
}

// SetLatency sets how long every operation takes.
func (n *Network) SetLatency(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.latency = d
}

// FailNext makes the next call of m fail with err. Calls queue up.
func (n *Network) FailNext(m Method, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures[m] = append(n.failures[m], err)
}

// Start announces every contact and room to app, then reports the client
// ready. With no latency it returns after OnReady; otherwise OnReady follows
// one latency later. Start may block on app, so do not call it from the UI
// loop.
func (n *Network) Start(app domain.App) {
	n.mu.Lock()
	n.app = app
	contacts := sortedIDs(n.contacts)
	rooms := sortedIDs(n.rooms)
	presence := n.presence
	latency := n.latency
	n.mu.Unlock()

	for _, id := range contacts {
		slot := app.AddContactItem(contactView{n: n, id: id})
		n.mu.Lock()
		if c := n.contacts[id]; c != nil {
			c.slot = slot
		}
		n.mu.Unlock()
	}
	for _, id := range rooms {
		n.announceRoom(app, id)
	}
	app.OnOwnPresence(presence)
	n.log.Info("network started", "contacts", len(contacts), "rooms", len(rooms))

	if latency == 0 {
		n.markReady()
		return
	}
	n.mu.Lock()
	n.timers = append(n.timers, time.AfterFunc(latency, n.markReady))
	n.mu.Unlock()
}

func (n *Network) announceRoom(app domain.App, id domain.ID) {
	n.mu.Lock()
	r := n.rooms[id]
	if r == nil {
		n.mu.Unlock()
		return
	}
	group := r.group
	n.mu.Unlock()

	var slot domain.Key
	if group {
		slot = app.AddGroupChatItem(groupView{roomView{n: n, id: id}})
	} else {
		slot = app.AddPeerChatItem(peerView{roomView{n: n, id: id}})
	}
	n.mu.Lock()
	if r := n.rooms[id]; r != nil {
		r.slot = slot
	}
	n.mu.Unlock()
}

func (n *Network) markReady() {
	n.mu.Lock()
	if n.ready || n.stopped {
		n.mu.Unlock()
		return
	}
	n.ready = true
	app := n.app
	n.mu.Unlock()
	n.log.Debug("identity data ready")
	if app != nil {
		app.OnReady()
	}
}

// Ready reports whether OnReady has been sent.
func (n *Network) Ready() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ready
}

// Stop cancels pending timers. Later scripted events are dropped.
func (n *Network) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
}

// notify runs fns against the app outside the lock. The network must never
// hold mu while calling the app: the app reads the views, which lock.
func (n *Network) notify(fns ...func(domain.App)) {
	n.mu.Lock()
	app, stopped := n.app, n.stopped
	n.mu.Unlock()
	if app == nil || stopped {
		return
	}
	for _, fn := range fns {
		fn(app)
	}
}

// begin waits out the latency and pops an injected failure for m.
func (n *Network) begin(ctx context.Context, m Method) error {
	n.mu.Lock()
	latency := n.latency
	n.mu.Unlock()

	if latency > 0 {
		t := time.NewTimer(latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if q := n.failures[m]; len(q) > 0 {
		n.failures[m] = q[1:]
		n.log.Debug("injected failure", "method", string(m), "error", q[0])
		return q[0]
	}
	return nil
}

func (n *Network) allocIDLocked() domain.ID {
	n.nextID++
	return n.nextID
}

// Lookups

func (n *Network) Contact(id domain.ID) (domain.Contact, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.contacts[id]; !ok {
		return nil, false
	}
	return contactView{n: n, id: id}, true
}

func (n *Network) Room(id domain.ID) (domain.Room, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	r, ok := n.rooms[id]
	if !ok {
		return nil, false
	}
	return n.viewLocked(r), true
}

func (n *Network) UserEmail(id domain.ID) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	e := n.emailLocked(id)
	return e, e != ""
}

func (n *Network) OwnPresence() domain.Presence {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.presence
}

func (n *Network) MediaDevices() domain.MediaDevices {
	n.mu.Lock()
	defer n.mu.Unlock()
	return domain.MediaDevices{
		AudioInputs: append([]string(nil), n.devices.AudioInputs...),
		VideoInputs: append([]string(nil), n.devices.VideoInputs...),
	}
}

// MediaInputs returns the selected audio and video inputs.
func (n *Network) MediaInputs() (audio, video string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.audio, n.video
}

func (n *Network) History(chat domain.ID) []domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	r, ok := n.rooms[chat]
	if !ok {
		return nil
	}
	return append([]domain.Message(nil), r.history...)
}

// Self returns the account's own user id.
func (n *Network) Self() domain.ID { return n.self.id }

// ContactIDs returns every contact id in ascending order.
func (n *Network) ContactIDs() []domain.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return sortedIDs(n.contacts)
}

// RoomIDs returns every room id in ascending order.
func (n *Network) RoomIDs() []domain.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return sortedIDs(n.rooms)
}

// FindContact returns the id of the contact with the given email.
func (n *Network) FindContact(email string) (domain.ID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, c := range n.contacts {
		if c.email == email {
			return id, true
		}
	}
	return 0, false
}

// FindUser returns the id of any known user, contact or not, with the given
// email.
func (n *Network) FindUser(email string) (domain.ID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, u := range n.users {
		if u.email == email {
			return id, true
		}
	}
	for id, c := range n.contacts {
		if c.email == email {
			return id, true
		}
	}
	return 0, false
}

// FindRoom returns the id of the room with the given title.
func (n *Network) FindRoom(title string) (domain.ID, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, id := range sortedIDs(n.rooms) {
		r := n.rooms[id]
		name := r.title
		if !r.group {
			if c := n.contacts[r.peer]; c != nil {
				name = c.name
			}
		}
		if name == title {
			return id, true
		}
	}
	return 0, false
}

func notFound(op, what string, id domain.ID) error {
	return errors.E(errors.Op("sim."+op), errors.KindNotFound, what+" "+id.String()+" does not exist")
}
