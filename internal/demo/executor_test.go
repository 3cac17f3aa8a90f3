package demo

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/sim"
	"github.com/zhubert/huddle/internal/ui"
)

func TestExecutorDefaultConfig(t *testing.T) {
	cfg := DefaultExecutorConfig()

	if cfg.CaptureEveryStep {
		t.Error("CaptureEveryStep should be false by default")
	}

	if cfg.TypeDelay != 50*time.Millisecond {
		t.Errorf("TypeDelay = %v, want 50ms", cfg.TypeDelay)
	}

	if cfg.KeyDelay != 100*time.Millisecond {
		t.Errorf("KeyDelay = %v, want 100ms", cfg.KeyDelay)
	}

	if cfg.CommandTimeout != 100*time.Millisecond {
		t.Errorf("CommandTimeout = %v, want 100ms", cfg.CommandTimeout)
	}
}

func TestNewExecutor_FillsCommandTimeout(t *testing.T) {
	e := NewExecutor(ExecutorConfig{})
	if e.config.CommandTimeout != 100*time.Millisecond {
		t.Errorf("CommandTimeout = %v, want 100ms", e.config.CommandTimeout)
	}
}

func TestExecutorRun(t *testing.T) {
	scenario := &Scenario{
		Name:        "test",
		Description: "Test scenario",
		Width:       80,
		Height:      24,
		Setup:       DefaultSetup(),
		Steps: []Step{
			Wait(100 * time.Millisecond),
			Key("down"),
			Wait(100 * time.Millisecond),
		},
	}

	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true

	executor := NewExecutor(cfg)
	frames, err := executor.Run(scenario)

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Initial frame plus one per step
	if len(frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(frames))
	}

	// First frame should have initial delay
	if frames[0].Delay != 500*time.Millisecond {
		t.Errorf("First frame delay = %v, want 500ms", frames[0].Delay)
	}

	if !strings.Contains(frames[0].Content, "Alice Liddell") {
		t.Error("initial frame should list the contacts of the fixture")
	}
}

func TestExecutorRunInvalidScenario(t *testing.T) {
	scenario := &Scenario{
		// Missing Name - should fail validation
		Description: "Invalid",
	}

	executor := NewExecutor(DefaultExecutorConfig())
	_, err := executor.Run(scenario)

	if err == nil {
		t.Error("Run() should return error for invalid scenario")
	}
}

func TestExecutorNoCaptureEveryStep(t *testing.T) {
	scenario := &Scenario{
		Name:   "minimal",
		Width:  80,
		Height: 24,
		Steps: []Step{
			Key("down"),
			Key("down"),
			Key("up"),
			Wait(100 * time.Millisecond),
		},
	}

	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true
	framesWithCapture, err := NewExecutor(cfg).Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	cfg.CaptureEveryStep = false
	framesWithoutCapture, err := NewExecutor(cfg).Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(framesWithCapture)-len(framesWithoutCapture) != 3 {
		t.Errorf("Expected 3 fewer frames without capture every step: with=%d, without=%d",
			len(framesWithCapture), len(framesWithoutCapture))
	}
}

func TestExecutorAnnotationAppliesToNextFrame(t *testing.T) {
	scenario := &Scenario{
		Name: "annotated",
		Steps: []Step{
			Annotate("the list"),
			Capture(),
			Capture(),
		},
	}

	frames, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if frames[1].Annotation != "the list" {
		t.Errorf("frame 1 annotation = %q, want 'the list'", frames[1].Annotation)
	}
	if frames[2].Annotation != "" {
		t.Errorf("annotation should be cleared after use, got %q", frames[2].Annotation)
	}
	if frames[1].StepIndex != 1 {
		t.Errorf("StepIndex = %d, want 1", frames[1].StepIndex)
	}
}

func TestExecutorFlashStep(t *testing.T) {
	scenario := &Scenario{
		Name:  "flash",
		Steps: []Step{Flash("hello", ui.FlashSuccess)},
	}

	frames, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	last := frames[len(frames)-1]
	if !strings.Contains(last.Content, "hello") {
		t.Error("flash text should be rendered")
	}
	if last.Delay != 100*time.Millisecond {
		t.Errorf("Delay = %v, want 100ms", last.Delay)
	}
}

func TestExecutorNetworkSteps(t *testing.T) {
	scenario := &Scenario{
		Name: "network",
		Steps: []Step{
			Deliver("Release crew", "alice@huddle.example", "ship it"),
			PresenceChange("bob@huddle.example", domain.PresenceBusy),
			ContactRequest("dana@huddle.example", "hi"),
			Key("enter"),
		},
	}

	e := NewExecutor(DefaultExecutorConfig())
	frames, err := e.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Network steps always capture
	if len(frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(frames))
	}

	net := e.Network()
	release, ok := net.FindRoom("Release crew")
	if !ok {
		t.Fatal("Release crew should exist")
	}
	history := net.History(release)
	if got := history[len(history)-1].Text; got != "ship it" {
		t.Errorf("last message = %q, want 'ship it'", got)
	}

	bob, _ := net.FindContact("bob@huddle.example")
	c, _ := net.Contact(bob)
	if c.Presence() != domain.PresenceBusy {
		t.Errorf("bob presence = %v, want busy", c.Presence())
	}

	// Accepting the request puts Dana in the list
	dana, ok := net.FindContact("dana@huddle.example")
	if !ok {
		t.Fatal("dana should be a contact after accepting")
	}
	if _, ok := e.Model().Registry().Contact(dana); !ok {
		t.Error("dana should have a contact row")
	}
}

func TestExecutorNetworkStepError(t *testing.T) {
	scenario := &Scenario{
		Name:  "bad-network",
		Steps: []Step{Deliver("No such chat", "alice@huddle.example", "hi")},
	}

	_, err := NewExecutor(DefaultExecutorConfig()).Run(scenario)
	if err == nil {
		t.Fatal("Run() should fail when a network step fails")
	}
	if !strings.Contains(err.Error(), "no chat titled") {
		t.Errorf("error = %v, want mention of the missing chat", err)
	}
}

func TestExecutorCallSteps(t *testing.T) {
	ring, hangup := Call("chidi@huddle.example", true)
	scenario := &Scenario{
		Name:  "call",
		Steps: []Step{ring, hangup},
	}

	e := NewExecutor(DefaultExecutorConfig())
	frames, err := e.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(frames[1].Content, "Incoming Video Call") {
		t.Error("ringing should show the call dialog")
	}
	if e.Model().ModalState() != nil {
		t.Errorf("hang up should dismiss the dialog, got %T", e.Model().ModalState())
	}
}

func TestExecutorSelect(t *testing.T) {
	tests := []struct {
		row  string
		want domain.Key
	}{
		{"alice@huddle.example", domain.ContactKey(10)},
		{"Alice Liddell", domain.PeerKey(100)},
		{"Release crew", domain.GroupKey(200)},
	}

	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			e := NewExecutor(DefaultExecutorConfig())
			_, err := e.Run(&Scenario{Name: "select", Steps: []Step{Select(tt.row)}})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			got, ok := e.Model().Sidebar().Selected()
			if !ok || got != tt.want {
				t.Errorf("selected = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecutorSelectUnknownRow(t *testing.T) {
	_, err := NewExecutor(DefaultExecutorConfig()).Run(&Scenario{
		Name:  "select",
		Steps: []Step{Select("nobody@huddle.example")},
	})
	if err == nil {
		t.Error("Run() should fail for a row that does not exist")
	}
}

func TestExecutorCustomFixture(t *testing.T) {
	fixture, err := sim.ParseFixture("tiny.yaml", []byte(`
self: {id: 1, name: Me, email: me@example.com}
contacts:
  - {id: 2, name: Only Friend, email: friend@example.com, presence: online}
`))
	if err != nil {
		t.Fatalf("ParseFixture() error = %v", err)
	}

	e := NewExecutor(DefaultExecutorConfig())
	frames, err := e.Run(&Scenario{
		Name:  "custom",
		Setup: &ScenarioSetup{Fixture: fixture, Theme: "nord"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(frames[0].Content, "Only Friend") {
		t.Error("frame should show the fixture's contact")
	}
	if e.Model().Registry().Len() != 1 {
		t.Errorf("Registry().Len() = %d, want 1", e.Model().Registry().Len())
	}
	ui.SetTheme(ui.DefaultTheme)
}

func TestExecutorClipboardInMemory(t *testing.T) {
	e := NewExecutor(DefaultExecutorConfig())
	if err := e.writeClipboard("huddle:user:10"); err != nil {
		t.Fatalf("writeClipboard() error = %v", err)
	}
	got, err := e.readClipboard()
	if err != nil || got != "huddle:user:10" {
		t.Errorf("readClipboard() = %q, %v", got, err)
	}
}

func TestKeyPress(t *testing.T) {
	tests := []struct {
		key      string
		wantCode rune
		wantMod  tea.KeyMod
		wantText string
	}{
		{"enter", tea.KeyEnter, 0, ""},
		{"shift+enter", tea.KeyEnter, tea.ModShift, ""},
		{"tab", tea.KeyTab, 0, ""},
		{"esc", tea.KeyEscape, 0, ""},
		{"escape", tea.KeyEscape, 0, ""},
		{"up", tea.KeyUp, 0, ""},
		{"down", tea.KeyDown, 0, ""},
		{"space", tea.KeySpace, 0, " "},
		{"ctrl+c", 'c', tea.ModCtrl, ""},
		{"m", 'm', 0, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			msg := keyPress(tt.key)
			if msg.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", msg.Code, tt.wantCode)
			}
			if msg.Mod != tt.wantMod {
				t.Errorf("Mod = %v, want %v", msg.Mod, tt.wantMod)
			}
			if msg.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", msg.Text, tt.wantText)
			}
		})
	}
}

func TestGenerateASCIICast(t *testing.T) {
	frames := []Frame{
		{Content: "first\nline", Delay: 500 * time.Millisecond},
		{Content: "second", Delay: time.Second, Annotation: "note"},
	}

	var buf bytes.Buffer
	if err := GenerateASCIICast(&buf, frames, 100, 30); err != nil {
		t.Fatalf("GenerateASCIICast() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 events, got %d lines", len(lines))
	}

	var header castHeader
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		t.Fatalf("header is not JSON: %v", err)
	}
	if header.Version != 2 || header.Width != 100 || header.Height != 30 {
		t.Errorf("header = %+v", header)
	}

	events := make([][]any, 0, 3)
	for _, line := range lines[1:] {
		var ev []any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("event %q is not JSON: %v", line, err)
		}
		events = append(events, ev)
	}

	if events[0][0].(float64) != 0.5 || events[0][1] != "o" {
		t.Errorf("first event = %v", events[0])
	}
	if events[0][2] != clearScreen+"first\r\nline" {
		t.Errorf("first frame should use CRLF, got %q", events[0][2])
	}
	if events[1][1] != "m" || events[1][2] != "note" {
		t.Errorf("annotation should become a marker, got %v", events[1])
	}
	if events[2][0].(float64) != 1.5 {
		t.Errorf("delays should accumulate, got %v", events[2][0])
	}
}
