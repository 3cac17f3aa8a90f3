package app

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/notification"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// =============================================================================
// Incoming calls
// =============================================================================

func TestIncomingCall_Answer(t *testing.T) {
	h := newHarness(t)

	call, err := h.net.OfferCall(aliceID, false)
	if err != nil {
		t.Fatalf("OfferCall: %v", err)
	}
	h.pump()

	state := modalAs[*modals.IncomingCallState](t, h.m)
	if state.Call.CallID() != call.CallID() {
		t.Errorf("modal rings for %q, want %q", state.Call.CallID(), call.CallID())
	}
	if state.Title() != "Incoming Call" {
		t.Errorf("unexpected title %q", state.Title())
	}

	h.key("enter")

	if h.m.modal.IsVisible() {
		t.Error("answering should close the dialog")
	}
	if !call.Accepted() {
		t.Error("call should have been accepted")
	}
	if got := h.m.footer.FlashText(); got != "In call with Alice Liddell" {
		t.Errorf("flash = %q", got)
	}
}

func TestIncomingCall_RejectWithEscape(t *testing.T) {
	h := newHarness(t)

	call, err := h.net.OfferCall(bobID, true)
	if err != nil {
		t.Fatalf("OfferCall: %v", err)
	}
	h.pump()
	if s := modalAs[*modals.IncomingCallState](t, h.m); s.Title() != "Incoming Video Call" {
		t.Errorf("unexpected title %q", s.Title())
	}

	h.key("esc")

	if !call.Ended() || call.Accepted() {
		t.Error("esc should reject the call")
	}
	if got := h.m.footer.FlashText(); got != "Rejected call from Bob Marley" {
		t.Errorf("flash = %q", got)
	}
}

func TestIncomingCall_ChooseReject(t *testing.T) {
	h := newHarness(t)

	call, _ := h.net.OfferCall(aliceID, false)
	h.pump()
	modalAs[*modals.IncomingCallState](t, h.m).SetAnswered(false)
	h.key("enter")

	if call.Accepted() {
		t.Error("choosing Reject should not accept the call")
	}
	if !call.Ended() {
		t.Error("rejected call should be over")
	}
}

func TestIncomingCall_HangupDismissesDialog(t *testing.T) {
	h := newHarness(t)

	call, _ := h.net.OfferCall(chidiID, false)
	h.pump()
	modalAs[*modals.IncomingCallState](t, h.m)

	call.Hangup()
	h.pump()

	if h.m.modal.IsVisible() {
		t.Error("the dialog of a call that ended should go away")
	}
	if got := h.m.footer.FlashText(); got != "Missed call (hung up)" {
		t.Errorf("flash = %q", got)
	}
}

func TestIncomingCall_HangupOfQueuedCall(t *testing.T) {
	h := newHarness(t)

	first, _ := h.net.OfferCall(aliceID, false)
	h.pump()
	second, _ := h.net.OfferCall(bobID, false)
	h.pump()

	if s := modalAs[*modals.IncomingCallState](t, h.m); s.Call.CallID() != first.CallID() {
		t.Fatal("the first call should ring first")
	}
	if len(h.m.pending) != 1 {
		t.Fatalf("expected the second call to queue, got %d pending", len(h.m.pending))
	}

	second.Hangup()
	h.pump()

	if len(h.m.pending) != 0 {
		t.Error("a queued call that ended should leave the queue")
	}
	if s := modalAs[*modals.IncomingCallState](t, h.m); s.Call.CallID() != first.CallID() {
		t.Error("the ringing dialog should be left alone")
	}
}

func TestIncomingCall_AnswerFailure(t *testing.T) {
	h := newHarness(t)

	call, _ := h.net.OfferCall(aliceID, false)
	h.pump()
	// The caller gives up while the answer is on its way
	call.Hangup()
	h.key("enter")

	state := modalAs[*modals.ErrorState](t, h.m)
	if state.Title() != "Answer Call" {
		t.Errorf("unexpected error title %q", state.Title())
	}
	if !strings.Contains(state.Message, "no longer ringing") {
		t.Errorf("error should explain the failure, got %q", state.Message)
	}
}

// =============================================================================
// Contact requests
// =============================================================================

func TestContactRequest_Accept(t *testing.T) {
	h := newHarness(t)

	if _, err := h.net.SendContactRequest(danaID, "Met at the conference"); err != nil {
		t.Fatalf("SendContactRequest: %v", err)
	}
	h.pump()

	state := modalAs[*modals.ContactRequestState](t, h.m)
	if state.Request.Email() != "dana@huddle.example" {
		t.Errorf("request from %q", state.Request.Email())
	}

	h.key("enter")

	if _, ok := h.m.registry.Contact(danaID); !ok {
		t.Fatal("accepting should add Dana to the contact list")
	}
	if _, ok := h.m.sidebar.Row(domain.ContactKey(danaID)); !ok {
		t.Error("Dana should get a row")
	}
	if got := h.m.footer.FlashText(); got != "Added dana@huddle.example to contacts" {
		t.Errorf("flash = %q", got)
	}
}

func TestContactRequest_Ignore(t *testing.T) {
	h := newHarness(t)

	req, _ := h.net.SendContactRequest(danaID, "")
	h.pump()
	modalAs[*modals.ContactRequestState](t, h.m).SetAccepted(false)
	h.key("enter")

	if req.Accepted() {
		t.Error("request should not be accepted")
	}
	if _, ok := h.m.registry.Contact(danaID); ok {
		t.Error("ignored sender should not become a contact")
	}
	if got := h.m.footer.FlashText(); got != "Ignored request from dana@huddle.example" {
		t.Errorf("flash = %q", got)
	}
}

func TestContactRequest_Notifies(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	notification.SetNotifier(func(_, message string, _ any) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, message)
		return nil
	})
	t.Cleanup(func() {
		notification.SetNotifier(func(string, string, any) error { return nil })
	})

	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	h := newHarnessWithConfig(t, cfg)

	h.net.SendContactRequest(danaID, "")
	h.net.OfferCall(aliceID, true)
	h.pump()

	mu.Lock()
	defer mu.Unlock()
	want := []string{
		"dana@huddle.example wants to add you as a contact",
		"Video call from Alice Liddell",
	}
	if len(sent) != len(want) {
		t.Fatalf("notifications = %v, want %v", sent, want)
	}
	for _, w := range want {
		found := false
		for _, s := range sent {
			found = found || s == w
		}
		if !found {
			t.Errorf("missing notification %q in %v", w, sent)
		}
	}
}

func TestNotify_DisabledByDefault(t *testing.T) {
	h := newHarness(t)
	if cmd := h.m.notify(func() error { return nil }); cmd != nil {
		t.Error("notifications are off unless enabled in the config")
	}
}

// =============================================================================
// Model callbacks
// =============================================================================

func TestEvent_PresenceChangeUpdatesRow(t *testing.T) {
	h := newHarness(t)

	if err := h.net.SetPresence(bobID, domain.PresenceBusy); err != nil {
		t.Fatalf("SetPresence: %v", err)
	}
	h.pump()

	row, _ := h.m.sidebar.Row(domain.ContactKey(bobID))
	if p, ok := row.Presence(); !ok || p != domain.PresenceBusy {
		t.Errorf("Bob's row shows %v (%v), want busy", p, ok)
	}
}

func TestEvent_VisibilityChangeUpdatesRow(t *testing.T) {
	h := newHarness(t)

	if err := h.net.SetVisibility(eleanorID, domain.VisibilityVisible); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	h.pump()

	row, _ := h.m.sidebar.Row(domain.ContactKey(eleanorID))
	if row.Hidden() {
		t.Error("Eleanor's row should no longer be hidden")
	}
}

func TestEvent_MessageIntoClosedRoomShowsBadge(t *testing.T) {
	h := newHarness(t)

	if err := h.net.Deliver(chidiPeer, chidiID, "lunch?"); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	h.pump()

	row, _ := h.m.sidebar.Row(domain.PeerKey(chidiPeer))
	if text, shown := row.Badge(); !shown || text == "" {
		t.Errorf("unread badge = %q (%v), want it shown", text, shown)
	}
}

func TestEvent_MessageIntoOpenWindow(t *testing.T) {
	h := newHarness(t)
	h.selectRow(domain.PeerKey(alicePeer))
	h.key("enter")

	chat := h.m.ActiveChat()
	if chat == nil {
		t.Fatal("expected Alice's chat to be open")
	}
	before := len(chat.Messages())

	h.net.Deliver(alicePeer, aliceID, "are you there?")
	h.pump()

	msgs := chat.Messages()
	if len(msgs) != before+1 {
		t.Fatalf("expected %d messages, got %d", before+1, len(msgs))
	}
	if msgs[len(msgs)-1].Text != "are you there?" {
		t.Errorf("last message = %q", msgs[len(msgs)-1].Text)
	}
}

func TestEvent_TitleChangeRenamesWindow(t *testing.T) {
	h := newHarness(t)
	h.selectRow(domain.PeerKey(alicePeer))
	h.key("enter")
	chat := h.m.ActiveChat()

	if err := h.net.Rename(aliceID, "Alice Cooper"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	h.pump()

	if chat.Title() != "Alice Cooper" {
		t.Errorf("window title = %q", chat.Title())
	}
	row, _ := h.m.sidebar.Row(domain.ContactKey(aliceID))
	if row.Name() != "Alice Cooper" {
		t.Errorf("contact row = %q", row.Name())
	}
}

func TestEvent_OwnPresenceUpdatesHeader(t *testing.T) {
	h := newHarness(t)

	h.send(roster.EventMsg{Event: roster.OwnPresenceChanged{Presence: domain.PresenceAway}})

	if h.m.header.OwnPresence() != domain.PresenceAway {
		t.Errorf("header presence = %v", h.m.header.OwnPresence())
	}
}

func TestListenForEvents_OnlyAfterInit(t *testing.T) {
	h := newHarness(t)
	if cmd := h.m.listenForEvents(); cmd != nil {
		t.Error("listener should not run before Init")
	}
}

func TestNotify_HeldWhileTerminalFocused(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	h := newHarnessWithConfig(t, cfg)
	send := func() error { return nil }

	if h.m.notify(send) == nil {
		t.Fatal("notifications should go out before the terminal reports focus")
	}
	h.send(tea.FocusMsg{})
	if h.m.notify(send) != nil {
		t.Error("no notification while the terminal has focus")
	}
	h.send(tea.BlurMsg{})
	if h.m.notify(send) == nil {
		t.Error("notifications resume after a blur")
	}
}

func TestNotify_LogsFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.SetNotificationsEnabled(true)
	h := newHarnessWithConfig(t, cfg)

	var buf bytes.Buffer
	h.m.log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cmd := h.m.notify(func() error { return stderrors.New("no notification daemon") })
	if cmd == nil {
		t.Fatal("notifications are enabled")
	}
	if msg := cmd(); msg != nil {
		t.Errorf("notify cmd returned %T, want nil", msg)
	}
	out := buf.String()
	if !strings.Contains(out, "desktop notification failed") || !strings.Contains(out, "no notification daemon") {
		t.Errorf("failure not logged:\n%s", out)
	}
}
