package roster

import (
	"strings"
	"testing"

	"github.com/zhubert/huddle/internal/domain"
)

func TestUnreadText(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0"},
		{3, "3"},
		{-7, "7+"},
		{-1, "1+"},
	}
	for _, tt := range tests {
		if got := UnreadText(tt.count); got != tt.want {
			t.Errorf("UnreadText(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestUnreadBadge_TogglesOnlyOnZeroCrossing(t *testing.T) {
	e := newEnv(t)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	row := e.row(t, g.Key())
	shows, hides := row.shows, row.hides

	for _, n := range []int{0, 3, 5, 0} {
		g.OnUnreadCountChanged(n)
	}

	if got := row.shows - shows; got != 1 {
		t.Errorf("badge shown %d times, want 1", got)
	}
	if got := row.hides - hides; got != 1 {
		t.Errorf("badge hidden %d times, want 1", got)
	}
	if row.badge != "0" || row.badgeShown {
		t.Errorf("badge = %q shown=%v, want \"0\" hidden", row.badge, row.badgeShown)
	}
}

func TestUnreadBadge_Negative(t *testing.T) {
	e := newEnv(t)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	row := e.row(t, g.Key())

	g.OnUnreadCountChanged(-7)
	if row.badge != "7+" || !row.badgeShown {
		t.Errorf("badge = %q shown=%v, want \"7+\" shown", row.badge, row.badgeShown)
	}
	// Negative to positive does not cross zero.
	g.OnUnreadCountChanged(2)
	if row.shows != 1 {
		t.Errorf("shows = %d, want 1", row.shows)
	}
}

func TestBadgeHiddenAtConstruction(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	if e.row(t, c.Key()).badgeShown {
		t.Error("badge visible on a fresh item")
	}
}

func TestPresenceIsIdempotent(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	row := e.row(t, c.Key())

	c.OnPresenceChanged(domain.PresenceBusy)
	c.OnPresenceChanged(domain.PresenceBusy)
	if row.presence != domain.PresenceBusy {
		t.Errorf("indicator = %v, want busy", row.presence)
	}
}

func TestContactTitle_SetsNameAndAvatar(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, &fakeContact{id: 0x13, email: "e@x", title: "élan", vis: domain.VisibilityVisible})
	row := e.row(t, c.Key())

	if row.name != "élan" {
		t.Errorf("name = %q", row.name)
	}
	if row.avatar.Glyph != "É" {
		t.Errorf("glyph = %q, want É", row.avatar.Glyph)
	}
	if row.avatar.Color != AvatarColor(3) {
		t.Errorf("avatar color = %v, want palette[3]", row.avatar.Color)
	}

	c.OnTitleChanged("Zed")
	if row.name != "Zed" || row.avatar.Glyph != "Z" {
		t.Errorf("after rename: name=%q glyph=%q", row.name, row.avatar.Glyph)
	}
}

func TestAvatarGlyph(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"alice", "A"},
		{"", "?"},
		{"👍🏽 thumbs", "👍🏽"},
		{"ñandu", "Ñ"},
	}
	for _, tt := range tests {
		if got := AvatarGlyph(tt.title); got != tt.want {
			t.Errorf("AvatarGlyph(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestAvatarColor_UsesLowBits(t *testing.T) {
	if AvatarColor(0x01) != AvatarColor(0xF1) {
		t.Error("ids with the same low nibble should share a color")
	}
	if AvatarColor(0x01) == AvatarColor(0x02) {
		t.Error("adjacent ids should differ")
	}
	if !(Avatar{Color: AvatarColor(5)}).HasColor() {
		t.Error("palette colors must be opaque")
	}
}

func TestChatItemAvatars(t *testing.T) {
	e := newEnv(t)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	a := alice()
	e.addContact(t, a)
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	if got := e.row(t, g.Key()).avatar.Glyph; got != "G" {
		t.Errorf("group glyph = %q", got)
	}
	if got := e.row(t, p.Key()).avatar.Glyph; got != "1" {
		t.Errorf("peer glyph = %q", got)
	}
	if e.row(t, g.Key()).avatar.HasColor() {
		t.Error("room avatars use the default color")
	}
}

func TestContactToolTip(t *testing.T) {
	e := newEnv(t)
	e.reg.MarkReady()
	c := e.addContact(t, alice())

	want := "Email: alice@example.com\n" +
		"User handle: " + domain.ID(1).String() + "\n" +
		"XMPP jid: alice@chat.example.com\n" +
		"You have never chatted with this person"
	if c.ToolTip() != want {
		t.Errorf("tooltip =\n%s\nwant\n%s", c.ToolTip(), want)
	}
	if e.row(t, c.Key()).tooltip != want {
		t.Error("tooltip not pushed to the row")
	}
}

func TestContactToolTip_HiddenWithRoom(t *testing.T) {
	e := newEnv(t)
	e.reg.MarkReady()
	a := alice()
	a.vis = domain.VisibilityHidden
	a.room = &fakePeer{id: 20, contact: a}
	c := e.addContact(t, a)

	tip := c.ToolTip()
	if !strings.HasPrefix(tip, "INVISIBLE\n") {
		t.Errorf("tooltip should start with INVISIBLE marker:\n%s", tip)
	}
	if !strings.HasSuffix(tip, "Chat handle: "+domain.ID(20).String()) {
		t.Errorf("tooltip should end with chat handle:\n%s", tip)
	}
}

func TestGroupToolTip(t *testing.T) {
	e := newEnv(t)
	e.client.emails[7] = "carol@example.com"
	g := e.addGroup(t, &fakeGroup{
		id:    10,
		title: "team",
		priv:  domain.PrivFull,
		members: []domain.Member{
			{UserID: 7, Name: "Carol", Priv: domain.PrivReadWrite},
			{UserID: 8, Name: "Dave", Priv: domain.PrivReadOnly},
		},
	})

	want := "Group chat room: " + domain.ID(10).String() + "\n" +
		"Own privilege: 3\n" +
		"Other participants:\n" +
		" Carol (carol@example.com, " + domain.ID(7).String() + "): priv 2\n" +
		" Dave ((email unknown), " + domain.ID(8).String() + "): priv 0"
	if g.ToolTip() != want {
		t.Errorf("tooltip =\n%s\nwant\n%s", g.ToolTip(), want)
	}
}

func TestGroupToolTip_RebuiltOnMembersUpdated(t *testing.T) {
	e := newEnv(t)
	room := &fakeGroup{id: 10, title: "team", priv: domain.PrivFull}
	g := e.addGroup(t, room)
	if !strings.HasSuffix(g.ToolTip(), "Other participants:") {
		t.Errorf("empty group tooltip:\n%s", g.ToolTip())
	}

	room.members = []domain.Member{{UserID: 9, Name: "Erin", Priv: domain.PrivReadWrite}}
	e.reg.Apply(MembersUpdated{Key: g.Key()})
	if !strings.Contains(g.ToolTip(), " Erin ((email unknown), ") {
		t.Errorf("tooltip not rebuilt:\n%s", g.ToolTip())
	}
	if strings.Count(g.ToolTip(), "Erin") != 1 {
		t.Error("rebuild must replace, not append")
	}
}

func TestPeerToolTip(t *testing.T) {
	e := newEnv(t)
	a := alice()
	e.addContact(t, a)
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	want := "1on1 Chat room: " + domain.ID(20).String() + "\n" +
		"Email: alice@example.com\n" +
		"User handle: " + domain.ID(1).String()
	if p.ToolTip() != want {
		t.Errorf("tooltip =\n%s\nwant\n%s", p.ToolTip(), want)
	}
}

func TestVisibility_PropagatesToPeerItem(t *testing.T) {
	e := newEnv(t)
	e.reg.MarkReady()
	a := alice()
	c := e.addContact(t, a)
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	a.vis = domain.VisibilityHidden
	e.reg.Apply(VisibilityChanged{Key: c.Key(), Visibility: domain.VisibilityHidden})
	if !e.row(t, c.Key()).hidden || !e.row(t, p.Key()).hidden {
		t.Error("contact and peer rows should both be hidden")
	}
	if !strings.HasPrefix(c.ToolTip(), "INVISIBLE\n") {
		t.Error("tooltip not refreshed after visibility change")
	}

	a.vis = domain.VisibilityVisible
	e.reg.Apply(VisibilityChanged{Key: c.Key(), Visibility: domain.VisibilityVisible})
	if e.row(t, c.Key()).hidden || e.row(t, p.Key()).hidden {
		t.Error("contact and peer rows should both be visible")
	}
	if c.IsShownHidden() != p.IsShownHidden() {
		t.Error("contact and peer disagree on hidden state")
	}
}

func TestPeerItem_HiddenContactAtConstruction(t *testing.T) {
	e := newEnv(t)
	a := alice()
	a.vis = domain.VisibilityHidden
	c := e.addContact(t, a)
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	if !c.IsShownHidden() || !p.IsShownHidden() {
		t.Error("both items should start hidden")
	}
	if got, ok := p.ContactItem(); !ok || got != c {
		t.Error("peer item should resolve its contact item through the registry")
	}
}

func TestRemovalQuestion(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	if got := c.RemovalQuestion(); got != "Are you sure you want to remove Alice (alice@example.com) from your contacts?" {
		t.Errorf("question = %q", got)
	}
	noName := &fakeContact{id: 5, email: "x@y", title: "x@y"}
	c2 := e.addContact(t, noName)
	if got := c2.RemovalQuestion(); got != "Are you sure you want to remove x@y from your contacts?" {
		t.Errorf("question = %q", got)
	}
}

func TestDragPayload(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	p := c.DragPayload()
	if p.UserID != 1 || p.Handle() != domain.ID(1).String() {
		t.Errorf("payload = %+v", p)
	}
}

func TestActions(t *testing.T) {
	e := newEnv(t)
	a := alice()
	c := e.addContact(t, a)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	has := func(items []Action, id ActionID) bool {
		for _, a := range items {
			if a.ID == id {
				return true
			}
		}
		return false
	}
	if !has(c.Actions(), ActRemoveContact) || !has(c.Actions(), ActCreateGroup) {
		t.Error("contact menu incomplete")
	}
	if !has(g.Actions(), ActLeave) || !has(g.Actions(), ActSetTopic) || !has(g.Actions(), ActTruncate) {
		t.Error("group menu incomplete")
	}
	if !has(p.Actions(), ActTruncate) || has(p.Actions(), ActLeave) {
		t.Error("peer menu should offer truncate only")
	}
}

func TestDestroyedItemIgnoresEvents(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	row := e.row(t, c.Key())
	if err := e.reg.Remove(c.Key()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	before := row.writes

	c.OnPresenceChanged(domain.PresenceBusy)
	c.OnUnreadCountChanged(4)
	c.UpdateToolTip()
	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Error("destroyed item issued a request")
	}
	if row.writes != before {
		t.Errorf("destroyed item wrote to its row %d times", row.writes-before)
	}
}
