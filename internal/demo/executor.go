package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/app"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/sim"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// CommandTimeout bounds a single command while the model settles.
	// Commands still running after it (flash timers) are abandoned.
	CommandTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		CommandTimeout:   100 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config  ExecutorConfig
	model   *app.Model
	network *sim.Network
	frames  []Frame

	currentAnnotation string

	// configDir holds the throwaway config of the run
	configDir string

	clipMu    sync.Mutex
	clipboard string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultExecutorConfig().CommandTimeout
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Cleanup stops the model and removes the run's config.
func (e *Executor) Cleanup() {
	if e.model != nil {
		e.model.Shutdown()
	}
	if e.configDir != "" {
		os.RemoveAll(e.configDir)
		e.configDir = ""
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Ensure cleanup is called when we're done
	defer e.Cleanup()

	// Initialize the model
	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	// Execute each step
	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// Model returns the model of the last run.
func (e *Executor) Model() *app.Model { return e.model }

// Network returns the network of the last run.
func (e *Executor) Network() *sim.Network { return e.network }

// setup initializes the model for the scenario.
func (e *Executor) setup(scenario *Scenario) error {
	dir, err := os.MkdirTemp("", "huddle-demo-")
	if err != nil {
		return err
	}
	e.configDir = dir

	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		return err
	}
	if scenario.Setup.Theme != "" {
		cfg.SetTheme(scenario.Setup.Theme)
	}

	// Demos run at full speed whatever the fixture says
	e.network = scenario.Setup.Fixture.Build()
	e.network.SetLatency(0)

	e.model = app.New(cfg, e.network, "demo")
	e.model.SetClipboard(e.writeClipboard, e.readClipboard)
	e.model.Update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})

	e.network.Start(e.model.Bridge())
	e.send(app.NetworkStartedMsg{})
	logger.WithComponent("demo").Info("scenario ready", "scenario", scenario.Name, "items", e.model.Registry().Len())
	return nil
}

func (e *Executor) writeClipboard(text string) error {
	e.clipMu.Lock()
	defer e.clipMu.Unlock()
	e.clipboard = text
	return nil
}

func (e *Executor) readClipboard() (string, error) {
	e.clipMu.Lock()
	defer e.clipMu.Unlock()
	return e.clipboard, nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.sendKey(string(ch))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepSelect:
		key, ok := e.resolveRow(step.Row)
		if !ok {
			return fmt.Errorf("no row for %q", step.Row)
		}
		e.model.Sidebar().Select(key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepNetwork:
		if err := step.Action(e.network); err != nil {
			return fmt.Errorf("%s: %w", step.Description, err)
		}
		e.settle(nil)
		e.captureFrame(index, 300*time.Millisecond)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	case StepFlash:
		e.model.ShowFlash(step.FlashText, step.FlashType)
		e.captureFrame(index, 100*time.Millisecond)
	}

	return nil
}

// resolveRow finds the list row of a contact email or a chat title.
func (e *Executor) resolveRow(row string) (domain.Key, bool) {
	reg := e.model.Registry()
	if id, ok := e.network.FindContact(row); ok {
		if _, ok := reg.Contact(id); ok {
			return domain.ContactKey(id), true
		}
	}
	if id, ok := e.network.FindRoom(row); ok {
		if _, ok := reg.Group(id); ok {
			return domain.GroupKey(id), true
		}
		if _, ok := reg.Peer(id); ok {
			return domain.PeerKey(id), true
		}
	}
	return domain.Key{}, false
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	content := e.model.RenderToString()

	frame := Frame{
		Content:    content,
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model and settles.
func (e *Executor) sendKey(key string) {
	e.send(keyPress(key))
}

// send delivers msg and settles everything it leads to.
func (e *Executor) send(msg tea.Msg) {
	_, cmd := e.model.Update(msg)
	e.settle(cmd)
}

// settle runs cmd and whatever follows from it until the model is idle.
// Network callbacks are applied before the command results of the same
// round, the order in which the model produced them.
func (e *Executor) settle(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for round := 0; round < 200; round++ {
		msgs := runCmds(queue, e.config.CommandTimeout)
		queue = nil

		progressed := false
		for ev, ok := e.model.Bridge().Poll(); ok; ev, ok = e.model.Bridge().Poll() {
			_, next := e.model.Update(roster.EventMsg{Event: ev})
			queue = append(queue, next)
			progressed = true
		}
		for _, msg := range msgs {
			if _, ok := msg.(tea.QuitMsg); ok {
				continue
			}
			_, next := e.model.Update(msg)
			queue = append(queue, next)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

// runCmds runs cmds concurrently and returns their messages in order,
// flattening batches. Commands that outlive timeout are dropped.
func runCmds(cmds []tea.Cmd, timeout time.Duration) []tea.Msg {
	var live []chan []tea.Msg
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		ch := make(chan []tea.Msg, 1)
		live = append(live, ch)
		go func(cmd tea.Cmd) {
			msg := cmd()
			if batch, ok := msg.(tea.BatchMsg); ok {
				ch <- runCmds(batch, timeout)
				return
			}
			ch <- []tea.Msg{msg}
		}(cmd)
	}

	deadline := time.After(2 * timeout)
	var out []tea.Msg
	for _, ch := range live {
		select {
		case msgs := <-ch:
			for _, msg := range msgs {
				if msg != nil {
					out = append(out, msg)
				}
			}
		case <-time.After(timeout):
		case <-deadline:
		}
	}
	return out
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Duplicated from the app tests, which cannot be imported.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape, "escape":
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
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
