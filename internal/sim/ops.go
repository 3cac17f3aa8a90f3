package sim

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
)

func (n *Network) CreatePeerRoom(ctx context.Context, contact domain.ID) (domain.ID, error) {
	if err := n.begin(ctx, MethodCreatePeerRoom); err != nil {
		return 0, err
	}
	n.mu.Lock()
	c, ok := n.contacts[contact]
	if !ok {
		n.mu.Unlock()
		return 0, notFound("CreatePeerRoom", "contact", contact)
	}
	if c.room != 0 {
		id := c.room
		n.mu.Unlock()
		return id, nil
	}
	id := n.allocIDLocked()
	n.rooms[id] = &roomRec{id: id, peer: contact, ownPriv: domain.PrivFull}
	c.room = id
	n.mu.Unlock()

	n.log.Info("1:1 room created", "chat", id.String(), "contact", contact.String())
	n.notify(func(app domain.App) { n.announceRoom(app, id) })
	return id, nil
}

func (n *Network) CreateGroupRoom(ctx context.Context, name string, members []domain.Invite) (domain.ID, error) {
	if err := n.begin(ctx, MethodCreateGroupRoom); err != nil {
		return 0, err
	}
	n.mu.Lock()
	r := &roomRec{group: true, title: name, ownPriv: domain.PrivFull}
	var names []string
	for _, inv := range members {
		if n.emailLocked(inv.UserID) == "" {
			n.mu.Unlock()
			return 0, notFound("CreateGroupRoom", "user", inv.UserID)
		}
		name := n.nameLocked(inv.UserID)
		r.members = append(r.members, domain.Member{UserID: inv.UserID, Name: name, Priv: inv.Priv})
		names = append(names, name)
	}
	if r.title == "" {
		r.title = strings.Join(names, ", ")
	}
	r.id = n.allocIDLocked()
	n.rooms[r.id] = r
	id := r.id
	n.mu.Unlock()

	n.log.Info("group room created", "chat", id.String(), "members", len(members))
	n.notify(func(app domain.App) { n.announceRoom(app, id) })
	return id, nil
}

// RemoveContact removes the contact together with its 1:1 room.
func (n *Network) RemoveContact(ctx context.Context, contact domain.ID) error {
	if err := n.begin(ctx, MethodRemoveContact); err != nil {
		return err
	}
	n.mu.Lock()
	c, ok := n.contacts[contact]
	if !ok {
		n.mu.Unlock()
		return notFound("RemoveContact", "contact", contact)
	}
	var roomSlot domain.Key
	if r := n.rooms[c.room]; r != nil {
		roomSlot = r.slot
		delete(n.rooms, c.room)
	}
	delete(n.contacts, contact)
	n.users[contact] = c.user
	contactSlot := c.slot
	n.mu.Unlock()

	n.log.Info("contact removed", "contact", contact.String())
	n.notify(func(app domain.App) {
		if !roomSlot.IsZero() {
			app.RemoveChatItem(roomSlot)
		}
		app.RemoveContactItem(contactSlot)
	})
	return nil
}

// AddContact adds a known user by email. The simulated user accepts at once.
func (n *Network) AddContact(ctx context.Context, email string) error {
	if err := n.begin(ctx, MethodAddContact); err != nil {
		return err
	}
	n.mu.Lock()
	for _, c := range n.contacts {
		if strings.EqualFold(c.email, email) {
			n.mu.Unlock()
			return errors.E(errors.Op("sim.AddContact"), errors.KindInvalid, email+" is already a contact")
		}
	}
	var found *user
	for _, id := range sortedIDs(n.users) {
		if u := n.users[id]; strings.EqualFold(u.email, email) {
			found = &u
			break
		}
	}
	if found == nil {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.AddContact"), errors.KindNotFound, "no user with email "+email)
	}
	n.mu.Unlock()

	n.addContact(*found)
	return nil
}

// addContact turns a known user into a contact and announces it.
func (n *Network) addContact(u user) {
	n.mu.Lock()
	delete(n.users, u.id)
	n.contacts[u.id] = &contactRec{user: u, presence: domain.PresenceOnline, visibility: domain.VisibilityVisible}
	n.mu.Unlock()

	n.log.Info("contact added", "contact", u.id.String())
	n.notify(func(app domain.App) {
		slot := app.AddContactItem(contactView{n: n, id: u.id})
		n.mu.Lock()
		if c := n.contacts[u.id]; c != nil {
			c.slot = slot
		}
		n.mu.Unlock()
	})
}

func (n *Network) LeaveRoom(ctx context.Context, chat domain.ID) error {
	if err := n.begin(ctx, MethodLeaveRoom); err != nil {
		return err
	}
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok {
		n.mu.Unlock()
		return notFound("LeaveRoom", "room", chat)
	}
	if !r.group {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.LeaveRoom"), errors.KindInvalid, "cannot leave a 1:1 room")
	}
	delete(n.rooms, chat)
	slot := r.slot
	n.mu.Unlock()

	n.log.Info("left room", "chat", chat.String())
	n.notify(func(app domain.App) { app.RemoveChatItem(slot) })
	return nil
}

func (n *Network) SetRoomTopic(ctx context.Context, chat domain.ID, topic string) error {
	if err := n.begin(ctx, MethodSetRoomTopic); err != nil {
		return err
	}
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok {
		n.mu.Unlock()
		return notFound("SetRoomTopic", "room", chat)
	}
	if !r.group {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.SetRoomTopic"), errors.KindInvalid, "1:1 rooms have no topic")
	}
	if r.ownPriv < domain.PrivFull {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.SetRoomTopic"), errors.KindPermission, "changing the topic needs full privilege")
	}
	r.title = topic
	slot := r.slot
	n.mu.Unlock()

	n.notify(func(app domain.App) { app.OnTitleChanged(slot, topic) })
	return nil
}

func (n *Network) TruncateRoom(ctx context.Context, chat domain.ID) error {
	if err := n.begin(ctx, MethodTruncateRoom); err != nil {
		return err
	}
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok {
		n.mu.Unlock()
		return notFound("TruncateRoom", "room", chat)
	}
	r.history = nil
	hadUnread := r.unread != 0
	r.unread = 0
	slot := r.slot
	n.mu.Unlock()

	if hadUnread {
		n.notify(func(app domain.App) { app.OnUnreadCountChanged(slot, 0) })
	}
	return nil
}

func (n *Network) InviteToGroup(ctx context.Context, chat, userID domain.ID, priv domain.Priv) error {
	if err := n.begin(ctx, MethodInviteToGroup); err != nil {
		return err
	}
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok || !r.group {
		n.mu.Unlock()
		return notFound("InviteToGroup", "group room", chat)
	}
	if n.emailLocked(userID) == "" {
		n.mu.Unlock()
		return notFound("InviteToGroup", "user", userID)
	}
	if slices.ContainsFunc(r.members, func(m domain.Member) bool { return m.UserID == userID }) {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.InviteToGroup"), errors.KindInvalid,
			fmt.Sprintf("%s is already a member", n.emailLocked(userID)))
	}
	r.members = append(r.members, domain.Member{UserID: userID, Name: n.nameLocked(userID), Priv: priv})
	slot := r.slot
	n.mu.Unlock()

	n.notify(func(app domain.App) { app.OnMembersUpdated(slot) })
	return nil
}

func (n *Network) SetOwnPresence(ctx context.Context, p domain.Presence) error {
	if err := n.begin(ctx, MethodSetOwnPresence); err != nil {
		return err
	}
	n.mu.Lock()
	n.presence = p
	n.mu.Unlock()
	n.notify(func(app domain.App) { app.OnOwnPresence(p) })
	return nil
}

// SendMessage appends an own message and marks the room read.
func (n *Network) SendMessage(ctx context.Context, chat domain.ID, text string) error {
	if err := n.begin(ctx, MethodSendMessage); err != nil {
		return err
	}
	n.mu.Lock()
	r, ok := n.rooms[chat]
	if !ok {
		n.mu.Unlock()
		return notFound("SendMessage", "room", chat)
	}
	if r.ownPriv < domain.PrivReadWrite {
		n.mu.Unlock()
		return errors.E(errors.Op("sim.SendMessage"), errors.KindPermission, "read-only participants cannot send messages")
	}
	m := domain.Message{
		ID:       uuid.NewString(),
		ChatID:   chat,
		From:     n.self.id,
		FromName: n.self.name,
		Text:     text,
		Sent:     time.Now(),
		Own:      true,
	}
	r.history = append(r.history, m)
	hadUnread := r.unread != 0
	r.unread = 0
	slot := r.slot
	n.mu.Unlock()

	n.notify(func(app domain.App) {
		app.OnMessage(m)
		if hadUnread {
			app.OnUnreadCountChanged(slot, 0)
		}
	})
	return nil
}

func (n *Network) SelectMediaInputs(ctx context.Context, audio, video string) error {
	if err := n.begin(ctx, MethodSelectMediaInputs); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if audio != "" && !slices.Contains(n.devices.AudioInputs, audio) {
		return errors.E(errors.Op("sim.SelectMediaInputs"), errors.KindNotFound, "no audio input named "+audio)
	}
	if video != "" && !slices.Contains(n.devices.VideoInputs, video) {
		return errors.E(errors.Op("sim.SelectMediaInputs"), errors.KindNotFound, "no video input named "+video)
	}
	n.audio, n.video = audio, video
	return nil
}
