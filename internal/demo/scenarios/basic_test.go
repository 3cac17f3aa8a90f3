package scenarios

import (
	"testing"

	"github.com/zhubert/huddle/internal/demo"
)

func TestAll(t *testing.T) {
	scenarios := All()

	if len(scenarios) != 2 {
		t.Errorf("All() should return 2 scenarios, got %d", len(scenarios))
	}

	// Verify each scenario is valid
	for _, s := range scenarios {
		if err := s.Validate(); err != nil {
			t.Errorf("Scenario %q validation failed: %v", s.Name, err)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
	}{
		{"basic", true},
		{"comprehensive", true},
		{"overview", false},
		{"nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := Get(tt.name)
			found := scenario != nil

			if found != tt.wantFound {
				t.Errorf("Get(%q) found = %v, want %v", tt.name, found, tt.wantFound)
			}
		})
	}
}

func TestBasicScenario(t *testing.T) {
	scenario := Basic

	if scenario.Width != 120 {
		t.Errorf("Width = %v, want 120", scenario.Width)
	}

	stepTypes := make(map[demo.StepType]bool)
	for _, step := range scenario.Steps {
		stepTypes[step.Type] = true
	}
	for _, want := range []demo.StepType{demo.StepSelect, demo.StepKey, demo.StepTypeText, demo.StepCapture} {
		if !stepTypes[want] {
			t.Errorf("Basic scenario should have a step of type %v", want)
		}
	}
}

func TestComprehensiveScenario(t *testing.T) {
	networkSteps := 0
	for _, step := range Comprehensive.Steps {
		if step.Type == demo.StepNetwork {
			networkSteps++
		}
	}
	// Message, presence, request and three call steps
	if networkSteps != 6 {
		t.Errorf("network steps = %d, want 6", networkSteps)
	}
}

func TestScenariosRun(t *testing.T) {
	if testing.Short() {
		t.Skip("runs full scenarios")
	}

	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			e := demo.NewExecutor(demo.DefaultExecutorConfig())
			frames, err := e.Run(s)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(frames) < 5 {
				t.Errorf("expected several frames, got %d", len(frames))
			}
		})
	}
}
