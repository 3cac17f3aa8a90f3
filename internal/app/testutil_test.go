package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/notification"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/sim"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	notification.SetNotifier(func(string, string, any) error { return nil })
	os.Exit(m.Run())
}

// Entities of the default fixture.
const (
	aliceID    domain.ID = 10
	bobID      domain.ID = 11
	chidiID    domain.ID = 12
	eleanorID  domain.ID = 13
	danaID     domain.ID = 20
	alicePeer  domain.ID = 100
	chidiPeer  domain.ID = 101
	releaseID  domain.ID = 200
	announceID domain.ID = 201
)

// cmdTimeout bounds a single command while settling. Commands still running
// after it (flash timers) are abandoned.
const cmdTimeout = 200 * time.Millisecond

// testConfig creates a config backed by a file in a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

// fakeClipboard stands in for the system clipboard.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *fakeClipboard) write(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.err
}

func (c *fakeClipboard) contents() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// harness bundles a model with the simulated network behind it.
type harness struct {
	t         *testing.T
	m         *Model
	net       *sim.Network
	cfg       *config.Config
	clipboard *fakeClipboard
	quit      bool
}

// newHarness creates a sized model against the default fixture and lets it
// take in the network's entities.
func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithConfig(t, testConfig(t))
}

func newHarnessWithConfig(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	net := sim.DefaultFixture().Build()
	net.SetLatency(0)

	clip := &fakeClipboard{}
	m := New(cfg, net, "0.0.0-test")
	m.writeClipboard = clip.write
	m.readClipboard = clip.read
	t.Cleanup(m.Shutdown)

	h := &harness{t: t, m: m, net: net, cfg: cfg, clipboard: clip}
	setSize(m, 120, 40)
	net.Start(m.Bridge())
	h.send(NetworkStartedMsg{})
	return h
}

// send delivers msg and settles everything it leads to.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.m.Update(msg)
	h.settle(cmd)
}

// key presses a key and settles.
func (h *harness) key(key string) {
	h.t.Helper()
	h.send(keyPress(key))
}

// typeText types text one key at a time.
func (h *harness) typeText(text string) {
	h.t.Helper()
	for _, ch := range text {
		h.key(string(ch))
	}
}

// pump applies the callbacks the network posted since the last settle.
func (h *harness) pump() {
	h.t.Helper()
	h.settle(nil)
}

// settle runs cmd and whatever follows from it until the model is idle.
// Queued bridge events are applied before the command results of the same
// round, the order in which the model produced them.
func (h *harness) settle(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for round := 0; round < 200; round++ {
		msgs := runCmds(queue)
		queue = nil

		progressed := false
		for ev, ok := h.m.Bridge().Poll(); ok; ev, ok = h.m.Bridge().Poll() {
			_, next := h.m.Update(roster.EventMsg{Event: ev})
			queue = append(queue, next)
			progressed = true
		}
		for _, msg := range msgs {
			if _, ok := msg.(tea.QuitMsg); ok {
				h.quit = true
				continue
			}
			_, next := h.m.Update(msg)
			queue = append(queue, next)
			progressed = true
		}
		if !progressed {
			return
		}
	}
	h.t.Fatal("model did not settle")
}

// runCmds runs cmds concurrently and returns their messages in order,
// flattening batches. Commands that outlive cmdTimeout are dropped.
func runCmds(cmds []tea.Cmd) []tea.Msg {
	type result struct {
		msgs []tea.Msg
	}
	var live []chan result
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		ch := make(chan result, 1)
		live = append(live, ch)
		go func(cmd tea.Cmd) {
			msg := cmd()
			if batch, ok := msg.(tea.BatchMsg); ok {
				ch <- result{msgs: runCmds(batch)}
				return
			}
			ch <- result{msgs: []tea.Msg{msg}}
		}(cmd)
	}

	deadline := time.After(2 * cmdTimeout)
	var out []tea.Msg
	for _, ch := range live {
		select {
		case r := <-ch:
			for _, msg := range r.msgs {
				if msg != nil {
					out = append(out, msg)
				}
			}
		case <-time.After(cmdTimeout):
		case <-deadline:
		}
	}
	return out
}

// selectRow moves the sidebar selection to key.
func (h *harness) selectRow(key domain.Key) {
	h.t.Helper()
	if _, ok := h.m.sidebar.Row(key); !ok {
		h.t.Fatalf("no row for %s", key)
	}
	h.m.sidebar.Select(key)
}

// rowY returns the screen line a row is drawn on.
func (h *harness) rowY(key domain.Key) int {
	h.t.Helper()
	h.m.RenderToString()
	for y := 0; y < h.m.height; y++ {
		if k, ok := h.m.rowAt(1, y); ok && k == key {
			return y
		}
	}
	h.t.Fatalf("row %s is not on screen", key)
	return 0
}

// modalAs returns the modal on display as a T or fails.
func modalAs[T any](t *testing.T, m *Model) T {
	t.Helper()
	var zero T
	if !m.modal.IsVisible() {
		t.Fatalf("expected a %T modal, none visible", zero)
	}
	s, ok := m.modal.State.(T)
	if !ok {
		t.Fatalf("expected a %T modal, got %T", zero, m.modal.State)
	}
	return s
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// mouseClick creates a tea.MouseClickMsg at the given coordinates.
func mouseClick(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseMotion creates a tea.MouseMotionMsg at the given coordinates.
func mouseMotion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseRelease creates a tea.MouseReleaseMsg at the given coordinates.
func mouseRelease(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}
