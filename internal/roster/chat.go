package roster

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// chatItem is shared by group and 1:1 room items.
type chatItem struct {
	baseItem
	room domain.Room
}

func newChatItem(reg *Registry, key domain.Key, room domain.Room, glyph string, s Surface) chatItem {
	c := chatItem{baseItem: newBaseItem(reg, key, s), room: room}
	s.SetAvatar(Avatar{Glyph: glyph})
	return c
}

// sync renders the room's current title, unread count and presence.
func (c *chatItem) sync() {
	c.OnTitleChanged(c.room.Title())
	c.OnUnreadCountChanged(c.room.UnreadCount())
	c.OnPresenceChanged(c.room.Presence())
}

// ChatID returns the bound room id.
func (c *chatItem) ChatID() domain.ID { return c.room.ChatID() }

// ShowChatWindow shows the room's window, creating and binding it on first
// use.
func (c *chatItem) ShowChatWindow() tea.Cmd {
	if c.gone("show chat") {
		return nil
	}
	c.reg.windows.Show(c.room.ChatID())
	return nil
}

func (c *chatItem) OnTitleChanged(title string) {
	if c.gone("title") {
		return
	}
	c.surface.SetName(title)
}

// Rooms follow their contact's visibility through the contact item.
func (c *chatItem) OnVisibilityChanged(domain.Visibility) {}

// Truncate clears the room's history.
func (c *chatItem) Truncate() tea.Cmd {
	if c.gone("truncate") {
		return nil
	}
	return c.reg.truncateRoom(c.key, c.room)
}

// GroupChatItem is the list item of a group room.
type GroupChatItem struct {
	chatItem
	group domain.GroupRoom
}

var _ ListItem = (*GroupChatItem)(nil)

func newGroupChatItem(reg *Registry, room domain.GroupRoom, s Surface) *GroupChatItem {
	it := &GroupChatItem{
		chatItem: newChatItem(reg, domain.GroupKey(room.ChatID()), room, "G", s),
		group:    room,
	}
	it.sync()
	it.UpdateToolTip()
	return it
}

// Room returns the bound group room.
func (g *GroupChatItem) Room() domain.GroupRoom { return g.group }

func (g *GroupChatItem) UpdateToolTip() {
	if g.gone("tooltip") {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Group chat room: %s\n", g.group.ChatID())
	fmt.Fprintf(&b, "Own privilege: %d\n", g.group.OwnPriv())
	b.WriteString("Other participants:\n")
	for _, m := range g.group.Members() {
		email, ok := g.reg.client.UserEmail(m.UserID)
		if !ok {
			email = "(email unknown)"
		}
		fmt.Fprintf(&b, " %s (%s, %s): priv %d\n", m.Name, email, m.UserID, m.Priv)
	}
	g.setToolTip(strings.TrimSuffix(b.String(), "\n"))
}

// OnMembersUpdated rebuilds the tooltip from the current member list.
func (g *GroupChatItem) OnMembersUpdated() { g.UpdateToolTip() }

// Leave asks the model to leave the room. The model removes the item when
// the room goes away; nothing touches the item after the request is issued.
func (g *GroupChatItem) Leave() tea.Cmd {
	if g.gone("leave") {
		return nil
	}
	return g.reg.leaveRoom(g.key, g.group)
}

// SetTopic asks the model to rename the room.
func (g *GroupChatItem) SetTopic(topic string) tea.Cmd {
	if g.gone("set topic") {
		return nil
	}
	return g.reg.setRoomTopic(g.key, g.group, topic)
}

func (g *GroupChatItem) Actions() []Action {
	return []Action{
		{ID: ActOpenChat, Label: "Open chat"},
		{ID: ActLeave, Label: "Leave group chat"},
		{ID: ActSetTopic, Label: "Set chat topic"},
		{ID: ActTruncate, Label: "Truncate chat"},
		{ID: ActShowInfo, Label: "Show details"},
	}
}

// PeerChatItem is the list item of a 1:1 room. Its hidden styling follows
// the contact's visibility.
type PeerChatItem struct {
	chatItem
	peer domain.PeerRoom
}

var _ ListItem = (*PeerChatItem)(nil)

func newPeerChatItem(reg *Registry, room domain.PeerRoom, s Surface) *PeerChatItem {
	it := &PeerChatItem{
		chatItem: newChatItem(reg, domain.PeerKey(room.ChatID()), room, "1", s),
		peer:     room,
	}
	if c := room.Contact(); c != nil && c.Visibility() == domain.VisibilityHidden {
		it.ShowAsHidden()
	}
	it.sync()
	it.UpdateToolTip()
	return it
}

// Room returns the bound 1:1 room.
func (p *PeerChatItem) Room() domain.PeerRoom { return p.peer }

// ContactItem returns the item of the room's contact, if it exists.
func (p *PeerChatItem) ContactItem() (*ContactItem, bool) {
	c := p.peer.Contact()
	if c == nil {
		return nil, false
	}
	return p.reg.Contact(c.UserID())
}

func (p *PeerChatItem) UpdateToolTip() {
	if p.gone("tooltip") {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "1on1 Chat room: %s\n", p.peer.ChatID())
	if c := p.peer.Contact(); c != nil {
		fmt.Fprintf(&b, "Email: %s\n", c.Email())
		fmt.Fprintf(&b, "User handle: %s", c.UserID())
	}
	p.setToolTip(strings.TrimSuffix(b.String(), "\n"))
}

func (p *PeerChatItem) Actions() []Action {
	return []Action{
		{ID: ActOpenChat, Label: "Open chat"},
		{ID: ActTruncate, Label: "Truncate chat"},
		{ID: ActShowInfo, Label: "Show details"},
	}
}
