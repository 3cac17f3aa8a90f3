// Package demo provides infrastructure for generating demos of huddle.
// Scenarios run against the in-memory network the tests use, so recordings
// are deterministic and need no server.
package demo

import (
	"fmt"
	"time"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/sim"
	"github.com/zhubert/huddle/internal/ui"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
	// StepSelect moves the list selection to a contact (by email) or a chat
	// (by title).
	StepSelect
	// StepNetwork runs a scripted event on the network: a message arriving,
	// a contact going away, a call ringing.
	StepNetwork
	// StepFlash shows a flash message in the footer.
	StepFlash
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText
	Text string

	// For StepWait
	Duration time.Duration

	// For StepSelect
	Row string

	// For StepNetwork
	Action func(n *sim.Network) error

	// For StepAnnotate
	Annotation string

	// For StepFlash
	FlashText string
	FlashType ui.FlashType
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// Fixture describes the network; nil uses the built-in one
	Fixture *sim.Fixture

	// Theme overrides the default theme
	Theme string
}

// DefaultSetup returns a setup on the built-in network.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{Fixture: sim.DefaultFixture()}
}

// Validate checks that the scenario is valid.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Fixture == nil {
		s.Setup.Fixture = sim.DefaultFixture()
	}
	for i, step := range s.Steps {
		switch {
		case step.Type == StepNetwork && step.Action == nil:
			return &ValidationError{Field: fmt.Sprintf("Steps[%d]", i), Message: "network step has no action"}
		case step.Type == StepSelect && step.Row == "":
			return &ValidationError{Field: fmt.Sprintf("Steps[%d]", i), Message: "select step names no row"}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// TypeWithDesc creates a text typing step with a description.
func TypeWithDesc(text, description string) Step {
	return Step{
		Type:        StepTypeText,
		Text:        text,
		Description: description,
	}
}

// Select creates a step selecting the row of a contact email or chat title.
func Select(row string) Step {
	return Step{
		Type: StepSelect,
		Row:  row,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// Flash creates a step showing a flash message.
func Flash(text string, flashType ui.FlashType) Step {
	return Step{
		Type:      StepFlash,
		FlashText: text,
		FlashType: flashType,
	}
}

// Network creates a step running a scripted network event.
func Network(description string, action func(n *sim.Network) error) Step {
	return Step{
		Type:        StepNetwork,
		Description: description,
		Action:      action,
	}
}

// Deliver posts a message from a contact into a chat.
func Deliver(chatTitle, fromEmail, text string) Step {
	return Network("message from "+fromEmail, func(n *sim.Network) error {
		chat, ok := n.FindRoom(chatTitle)
		if !ok {
			return fmt.Errorf("no chat titled %q", chatTitle)
		}
		from, ok := n.FindUser(fromEmail)
		if !ok {
			return fmt.Errorf("no user %s", fromEmail)
		}
		return n.Deliver(chat, from, text)
	})
}

// PresenceChange switches the online status of a contact.
func PresenceChange(email string, p domain.Presence) Step {
	return Network(email+" is "+p.String(), func(n *sim.Network) error {
		id, ok := n.FindContact(email)
		if !ok {
			return fmt.Errorf("no contact %s", email)
		}
		return n.SetPresence(id, p)
	})
}

// ContactRequest delivers a contact request from a known user.
func ContactRequest(fromEmail, text string) Step {
	return Network("contact request from "+fromEmail, func(n *sim.Network) error {
		id, ok := n.FindUser(fromEmail)
		if !ok {
			return fmt.Errorf("no user %s", fromEmail)
		}
		_, err := n.SendContactRequest(id, text)
		return err
	})
}

// Call returns a step ringing a call from a contact and one hanging it up.
// The hangup is a no-op if the call was never offered.
func Call(fromEmail string, video bool) (ring, hangup Step) {
	var call *sim.Call
	ring = Network("call from "+fromEmail, func(n *sim.Network) error {
		id, ok := n.FindContact(fromEmail)
		if !ok {
			return fmt.Errorf("no contact %s", fromEmail)
		}
		c, err := n.OfferCall(id, video)
		if err != nil {
			return err
		}
		call = c
		return nil
	})
	hangup = Network(fromEmail+" hangs up", func(*sim.Network) error {
		if call != nil {
			call.Hangup()
		}
		return nil
	})
	return ring, hangup
}
