package roster

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
)

// ContactItem is the list item of a contact.
//
// Identity fields such as the jid are only known once the client is ready,
// so the item is built in two steps: construction renders what is known and
// Attach completes the tooltip when the registry sees ClientReady.
type ContactItem struct {
	baseItem
	contact  domain.Contact
	attached bool
}

var _ ListItem = (*ContactItem)(nil)

func newContactItem(reg *Registry, c domain.Contact, s Surface) *ContactItem {
	it := &ContactItem{
		baseItem: newBaseItem(reg, domain.ContactKey(c.UserID()), s),
		contact:  c,
	}
	if c.Visibility() == domain.VisibilityHidden {
		it.ShowAsHidden()
	}
	it.OnTitleChanged(c.Title())
	it.OnPresenceChanged(c.Presence())
	return it
}

// Contact returns the bound contact.
func (c *ContactItem) Contact() domain.Contact { return c.contact }

// Attach finishes initialization. Calling it again is a no-op.
func (c *ContactItem) Attach() {
	if c.gone("attach") || c.attached {
		return
	}
	c.attached = true
	c.UpdateToolTip()
}

// Attached reports whether Attach has run.
func (c *ContactItem) Attached() bool { return c.attached }

func (c *ContactItem) UpdateToolTip() {
	if c.gone("tooltip") {
		return
	}
	var b strings.Builder
	if c.contact.Visibility() == domain.VisibilityHidden {
		b.WriteString("INVISIBLE\n")
	}
	fmt.Fprintf(&b, "Email: %s\n", c.contact.Email())
	fmt.Fprintf(&b, "User handle: %s\n", c.contact.UserID())
	fmt.Fprintf(&b, "XMPP jid: %s\n", c.contact.JID())
	if room := c.contact.ChatRoom(); room != nil {
		fmt.Fprintf(&b, "Chat handle: %s", room.ChatID())
	} else {
		b.WriteString("You have never chatted with this person")
	}
	c.setToolTip(b.String())
}

func (c *ContactItem) OnTitleChanged(title string) {
	if c.gone("title") {
		return
	}
	c.surface.SetName(title)
	c.surface.SetAvatar(Avatar{
		Glyph: AvatarGlyph(title),
		Color: AvatarColor(c.contact.UserID()),
	})
}

// OnVisibilityChanged restyles the contact and its 1:1 chat item together so
// the two never disagree.
func (c *ContactItem) OnVisibilityChanged(v domain.Visibility) {
	if c.gone("visibility") {
		return
	}
	c.log.Debug("visibility changed", "visibility", v.String())
	chat := c.linkedChat()
	if v == domain.VisibilityHidden {
		c.ShowAsHidden()
		if chat != nil {
			chat.ShowAsHidden()
		}
	} else {
		c.UnshowAsHidden()
		if chat != nil {
			chat.UnshowAsHidden()
		}
	}
	c.UpdateToolTip()
}

// linkedChat returns the item of the 1:1 room with this contact, if both the
// room and its item exist.
func (c *ContactItem) linkedChat() *PeerChatItem {
	room := c.contact.ChatRoom()
	if room == nil {
		return nil
	}
	chat, ok := c.reg.Peer(room.ChatID())
	if !ok {
		return nil
	}
	return chat
}

// ShowChatWindow opens the 1:1 chat with this contact, creating the room
// first if there has never been one.
func (c *ContactItem) ShowChatWindow() tea.Cmd {
	if c.gone("show chat") {
		return nil
	}
	room := c.contact.ChatRoom()
	if room == nil {
		return c.reg.createPeerRoom(c)
	}
	if chat, ok := c.reg.Peer(room.ChatID()); ok {
		return chat.ShowChatWindow()
	}
	// The model has a room but no list item for it.
	if !c.reg.roomLive(room.ChatID()) {
		c.log.Info("1:1 room is gone, not opening its window", "chat", room.ChatID().String())
		return nil
	}
	c.log.Warn("1:1 room has no list item, opening its window directly", "chat", room.ChatID().String())
	c.reg.windows.Show(room.ChatID())
	return nil
}

// CreateGroupChat creates a group named name with this contact as its only
// member at full privilege.
func (c *ContactItem) CreateGroupChat(name string) tea.Cmd {
	if c.gone("create group") {
		return nil
	}
	invites := []domain.Invite{{UserID: c.contact.UserID(), Priv: domain.PrivFull}}
	return c.reg.createGroupRoom(c.key, name, invites)
}

// RemovalQuestion is the confirmation shown before Remove.
func (c *ContactItem) RemovalQuestion() string {
	title, email := c.contact.Title(), c.contact.Email()
	if title == email || title == "" {
		return fmt.Sprintf("Are you sure you want to remove %s from your contacts?", email)
	}
	return fmt.Sprintf("Are you sure you want to remove %s (%s) from your contacts?", title, email)
}

// Remove asks the model to remove the contact. The item stays until the
// model reports the removal.
func (c *ContactItem) Remove() tea.Cmd {
	if c.gone("remove") {
		return nil
	}
	return c.reg.removeContact(c)
}

// DragPayload is what a drag started on this item carries.
func (c *ContactItem) DragPayload() DragPayload {
	return DragPayload{UserID: c.contact.UserID()}
}

func (c *ContactItem) Actions() []Action {
	return []Action{
		{ID: ActOpenChat, Label: "Open chat"},
		{ID: ActCreateGroup, Label: "Invite to group chat"},
		{ID: ActRemoveContact, Label: "Remove contact"},
		{ID: ActShowInfo, Label: "Show details"},
	}
}

// DragPayloadMIME names the payload of a contact drag.
const DragPayloadMIME = "application/x-huddle-user-handle"

// DragPayload carries a contact's user handle from a drag source to a drop
// target.
type DragPayload struct {
	UserID domain.ID
}

// Handle returns the user handle in its printable form.
func (p DragPayload) Handle() string { return p.UserID.String() }
