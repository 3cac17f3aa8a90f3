package roster

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
)

func TestShowChatWindow_CreatesRoomWhenNone(t *testing.T) {
	e := newEnv(t)
	e.reg.MarkReady()
	c := e.addContact(t, alice())

	res := e.complete(t, c.ShowChatWindow())

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(e.factory.created) != 1 || e.factory.created[0] != res.ChatID {
		t.Fatalf("windows created = %v, want [%v]", e.factory.created, res.ChatID)
	}
	if e.factory.windows[res.ChatID].shown != 1 {
		t.Error("new window not shown")
	}
	want := "Chat handle: " + res.ChatID.String()
	if tip := c.ToolTip(); tip[len(tip)-len(want):] != want {
		t.Errorf("tooltip not refreshed:\n%s", tip)
	}
	if len(e.rep.errs) != 0 {
		t.Errorf("errors reported: %v", e.rep.errs)
	}
}

func TestShowChatWindow_CreateFailure(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	e.client.fail["CreatePeerRoom"] = stderrors.New("server unreachable")
	items := e.reg.Len()

	res := e.complete(t, c.ShowChatWindow())

	if res.Err == nil {
		t.Fatal("expected failure")
	}
	if len(e.rep.errs) != 1 {
		t.Fatalf("reported %d errors, want exactly 1", len(e.rep.errs))
	}
	if e.rep.errs[0].title != "Create chat room" {
		t.Errorf("title = %q", e.rep.errs[0].title)
	}
	if !errors.Is(e.rep.errs[0].err, errors.KindNetwork) {
		t.Errorf("err kind = %v", errors.GetKind(e.rep.errs[0].err))
	}
	if len(e.factory.created) != 0 {
		t.Error("window created on failure")
	}
	if e.reg.Len() != items {
		t.Error("items changed on failure")
	}
	if len(e.client.calls) != 1 {
		t.Errorf("calls = %v, want a single attempt", e.client.calls)
	}
}

func TestShowChatWindow_DelegatesToPeerItem(t *testing.T) {
	e := newEnv(t)
	a := alice()
	c := e.addContact(t, a)
	e.addPeer(t, &fakePeer{id: 20, contact: a})

	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Error("existing room should not issue a request")
	}
	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Error("existing room should not issue a request")
	}
	if len(e.factory.created) != 1 {
		t.Errorf("created %d windows, want 1", len(e.factory.created))
	}
	if e.factory.windows[20].shown != 2 {
		t.Errorf("shown %d times, want 2", e.factory.windows[20].shown)
	}
	if len(e.client.calls) != 0 {
		t.Errorf("client calls = %v", e.client.calls)
	}
}

func TestShowChatWindow_RoomWithoutItemOpensDirectly(t *testing.T) {
	e := newEnv(t)
	a := alice()
	a.room = &fakePeer{id: 20, contact: a}
	c := e.addContact(t, a)

	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Error("fallback should not issue a request")
	}
	if w, ok := e.factory.windows[20]; !ok || w.shown != 1 {
		t.Error("window not opened directly")
	}
}

func TestConcurrentRequestRefused(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	first := c.ShowChatWindow()
	if first == nil {
		t.Fatal("first request refused")
	}
	if !e.reg.InFlight(OpCreatePeerRoom, c.Key()) {
		t.Error("request not marked in flight")
	}
	if second := c.ShowChatWindow(); second != nil {
		t.Fatal("second concurrent request issued")
	}
	if len(e.rep.infos) != 1 {
		t.Errorf("infos = %v, want one refusal notice", e.rep.infos)
	}

	e.complete(t, first)
	if e.reg.InFlight(OpCreatePeerRoom, c.Key()) {
		t.Error("request still in flight after completion")
	}
	if len(e.client.calls) != 1 {
		t.Errorf("calls = %v", e.client.calls)
	}
}

func TestCompletionForRemovedContactIsNoop(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	cmd := c.ShowChatWindow()

	e.reg.Apply(ItemRemoved{Key: c.Key()})
	res := e.complete(t, cmd)

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(e.factory.created) != 0 {
		t.Error("window created for a removed contact")
	}
	if len(e.rep.errs) != 0 {
		t.Error("error reported for a removed contact")
	}
}

func TestCompletionAfterCloseIsDropped(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	e.client.fail["CreatePeerRoom"] = stderrors.New("boom")
	cmd := c.ShowChatWindow()

	e.reg.Close()
	e.complete(t, cmd)

	if len(e.rep.errs) != 0 {
		t.Error("error reported after UI teardown")
	}
}

func TestCreateGroupChat(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	res := e.complete(t, c.CreateGroupChat("project"))

	if len(e.client.invites) != 1 || e.client.invites[0] != (domain.Invite{UserID: 1, Priv: domain.PrivFull}) {
		t.Errorf("invites = %+v, want alice at full privilege", e.client.invites)
	}
	if _, ok := e.factory.windows[res.ChatID]; !ok {
		t.Error("new group window not shown")
	}
	if len(e.rep.infos) != 1 || e.rep.infos[0] != `Created group chat "project"` {
		t.Errorf("infos = %v", e.rep.infos)
	}
}

func TestCreateGroupChat_Failure(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	e.client.fail["CreateGroupRoom"] = stderrors.New("quota")

	e.complete(t, c.CreateGroupChat("project"))

	if len(e.rep.errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(e.rep.errs))
	}
	if e.reg.Len() != 1 || len(e.factory.created) != 0 {
		t.Error("failure created items or windows")
	}
}

func TestCreateGroupChat_RoomRemovedBeforeCompletion(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	res, ok := c.CreateGroupChat("project")().(ResultMsg)
	if !ok {
		t.Fatal("command did not return a ResultMsg")
	}
	room := e.client.rooms[res.ChatID].(*fakeGroup)
	e.addGroup(t, room)
	e.reg.Apply(ItemRemoved{Key: domain.GroupKey(room.id)})
	e.reg.HandleResult(res)

	if e.reg.Windows().Len() != 0 {
		t.Errorf("windows bound = %d, want none for a removed room", e.reg.Windows().Len())
	}
	if _, ok := e.reg.Windows().Active(); ok {
		t.Error("a removed room's window is in front")
	}
	if len(e.rep.infos) != 0 || len(e.rep.errs) != 0 {
		t.Errorf("reports for a removed room: infos %v, errs %v", e.rep.infos, e.rep.errs)
	}
}

func TestShowChatWindow_PeerRoomRemovedBeforeCompletion(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	res, ok := c.ShowChatWindow()().(ResultMsg)
	if !ok {
		t.Fatal("command did not return a ResultMsg")
	}
	e.reg.Apply(ItemRemoved{Key: domain.PeerKey(res.ChatID)})
	e.reg.HandleResult(res)

	if len(e.factory.created) != 0 {
		t.Errorf("windows created = %v, want none", e.factory.created)
	}
}

func TestCreateGroupChat_ReannouncedRoomOpens(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	res, _ := c.CreateGroupChat("project")().(ResultMsg)
	room := e.client.rooms[res.ChatID].(*fakeGroup)
	e.reg.Apply(ItemRemoved{Key: domain.GroupKey(room.id)})
	e.addGroup(t, room)
	e.reg.HandleResult(res)

	if _, ok := e.factory.windows[room.id]; !ok {
		t.Error("window not shown for a room announced again")
	}
}

func TestRemove_ClosesWindowOfRoomWithoutItem(t *testing.T) {
	e := newEnv(t)
	a := alice()
	a.room = &fakePeer{id: 20, contact: a}
	e.client.rooms[20] = a.room
	c := e.addContact(t, a)

	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Fatal("fallback should not issue a request")
	}
	if e.reg.Windows().Len() != 1 {
		t.Fatalf("windows bound = %d, want 1", e.reg.Windows().Len())
	}

	if err := e.reg.Remove(domain.PeerKey(20)); !errors.Is(err, errors.KindInvariant) {
		t.Errorf("Remove() error = %v, want an invariant error for a room without an item", err)
	}
	if e.reg.Windows().Len() != 0 {
		t.Error("window of the removed room still bound")
	}
	if !e.factory.windows[20].closed {
		t.Error("window not closed")
	}

	if cmd := c.ShowChatWindow(); cmd != nil {
		t.Error("removed room should not issue a request")
	}
	if e.reg.Windows().Len() != 0 {
		t.Error("window reopened for a removed room")
	}
}

func TestRemoveContact_NotOptimistic(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())

	e.complete(t, c.Remove())

	if _, ok := e.reg.Contact(1); !ok {
		t.Fatal("item removed before the model reported it")
	}
	e.reg.Apply(ItemRemoved{Key: c.Key()})
	if _, ok := e.reg.Contact(1); ok {
		t.Error("item survived model removal")
	}
}

func TestRemoveContact_Failure(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	e.client.fail["RemoveContact"] = stderrors.New("denied")

	e.complete(t, c.Remove())

	if len(e.rep.errs) != 1 || e.rep.errs[0].title != "Remove contact" {
		t.Fatalf("errs = %+v", e.rep.errs)
	}
	if _, ok := e.reg.Contact(1); !ok {
		t.Error("item removed after a failed removal")
	}
}

func TestLeave_DoesNotTouchItem(t *testing.T) {
	e := newEnv(t)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	g.ShowChatWindow()
	row := e.row(t, g.Key())

	cmd := g.Leave()
	before := row.writes

	// The model removes the room before the completion arrives.
	e.reg.Apply(ItemRemoved{Key: g.Key()})
	e.complete(t, cmd)

	if row.writes != before {
		t.Error("item touched after leave was issued")
	}
	if !e.factory.windows[10].closed {
		t.Error("window not closed with the room")
	}
	if len(e.rep.errs) != 0 {
		t.Errorf("errs = %+v", e.rep.errs)
	}
}

func TestSetTopicAndTruncate(t *testing.T) {
	e := newEnv(t)
	a := alice()
	e.addContact(t, a)
	g := e.addGroup(t, &fakeGroup{id: 10, title: "team"})
	p := e.addPeer(t, &fakePeer{id: 20, contact: a})

	e.complete(t, g.SetTopic("roadmap"))
	e.complete(t, g.Truncate())
	e.complete(t, p.Truncate())

	want := []string{"SetRoomTopic", "TruncateRoom", "TruncateRoom"}
	if len(e.client.calls) != len(want) {
		t.Fatalf("calls = %v", e.client.calls)
	}
	for i := range want {
		if e.client.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, e.client.calls[i], want[i])
		}
	}
}

func TestTruncate_TwoRoomsRunConcurrently(t *testing.T) {
	e := newEnv(t)
	g1 := e.addGroup(t, &fakeGroup{id: 10, title: "a"})
	g2 := e.addGroup(t, &fakeGroup{id: 11, title: "b"})

	if g1.Truncate() == nil || g2.Truncate() == nil {
		t.Error("different rooms must not block each other")
	}
}

func TestInviteToGroup(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	e.addGroup(t, &fakeGroup{id: 10, title: "team"})

	e.complete(t, e.reg.InviteToGroup(c.DragPayload(), 10))

	if len(e.client.inviteArgs) != 2 || e.client.inviteArgs[0] != 10 || e.client.inviteArgs[1] != 1 {
		t.Errorf("invite args = %v", e.client.inviteArgs)
	}
	if len(e.rep.infos) != 1 || e.rep.infos[0] != "Invited alice@example.com" {
		t.Errorf("infos = %v", e.rep.infos)
	}
}

func TestInviteToUnknownGroup(t *testing.T) {
	e := newEnv(t)
	c := e.addContact(t, alice())
	if cmd := e.reg.InviteToGroup(c.DragPayload(), 99); cmd != nil {
		t.Error("invite to unknown group issued")
	}
}

func TestAccountRequests(t *testing.T) {
	e := newEnv(t)

	e.complete(t, e.reg.RequestContact("new@example.com"))
	e.complete(t, e.reg.SetOwnPresence(domain.PresenceAway))
	e.complete(t, e.reg.ApplySettings("mic", "cam"))

	want := []string{"AddContact", "SetOwnPresence", "SelectMediaInputs"}
	for i := range want {
		if e.client.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, e.client.calls[i], want[i])
		}
	}
}

func TestSendMessage_NotDeduplicated(t *testing.T) {
	e := newEnv(t)
	e.addGroup(t, &fakeGroup{id: 10, title: "team"})

	a := e.reg.SendMessage(10, "one")
	b := e.reg.SendMessage(10, "two")
	if a == nil || b == nil {
		t.Fatal("sends must not be refused")
	}

	e.client.fail["SendMessage"] = stderrors.New("offline")
	e.complete(t, a)
	if len(e.rep.errs) != 1 || e.rep.errs[0].title != "Send message" {
		t.Errorf("errs = %+v", e.rep.errs)
	}
}

func TestRequestTimeout(t *testing.T) {
	e := newEnv(t)
	e.reg.opts.ActionTimeout = 10 * time.Millisecond
	e.client.block = true
	c := e.addContact(t, alice())

	e.complete(t, c.Remove())

	if len(e.rep.errs) != 1 {
		t.Fatalf("errs = %d, want 1", len(e.rep.errs))
	}
	if !errors.Is(e.rep.errs[0].err, errors.KindTimeout) {
		t.Errorf("kind = %v, want timeout", errors.GetKind(e.rep.errs[0].err))
	}
}

func TestOpTitle(t *testing.T) {
	if OpLeave.Title() != "Leave group chat" {
		t.Errorf("Title = %q", OpLeave.Title())
	}
	if Op("").Title() != "" {
		t.Error("empty op title")
	}
}
