package ui

import (
	"strings"
	"testing"
	"time"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if len(footer.bindings) == 0 {
		t.Error("Expected default bindings to be set")
	}
	if footer.flashMessage != nil {
		t.Error("Expected no flash message initially")
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Removed alice@huddle.example from contacts", FlashSuccess)

	if !footer.HasFlash() {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Type != FlashSuccess {
		t.Errorf("type = %v, want FlashSuccess", footer.flashMessage.Type)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("duration = %v, want %v", footer.flashMessage.Duration, DefaultFlashDuration)
	}
	if footer.FlashText() != "Removed alice@huddle.example from contacts" {
		t.Errorf("FlashText = %q", footer.FlashText())
	}

	footer.ClearFlash()
	if footer.HasFlash() || footer.FlashText() != "" {
		t.Error("flash should be gone after ClearFlash")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("fresh", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "stale",
		Type:      FlashInfo,
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_View_Bindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetBindings([]KeyBinding{{Key: "d", Desc: "remove"}, {Key: "g", Desc: "new group"}})

	view := stripANSI(footer.View())
	if !strings.Contains(view, "d: remove") || !strings.Contains(view, "g: new group") {
		t.Errorf("footer = %q", view)
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name      string
		flashType FlashType
		icon      string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := stripANSI(footer.View())
			if !strings.Contains(view, tt.icon) || !strings.Contains(view, "Test message") {
				t.Errorf("view = %q, want icon %q and text", view, tt.icon)
			}
			if strings.Contains(view, "quit") {
				t.Error("flash should replace the key hints")
			}
		})
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
