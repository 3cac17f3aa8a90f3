package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, io.Discard, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	reader := strings.NewReader("")
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(EOF) = %v, want false", result)
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	// Test with a reader that returns an error
	reader := &errorReader{}
	result := confirm(reader, io.Discard, "Test?")
	if result != false {
		t.Errorf("confirm(error) = %v, want false", result)
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func withCleanFlags(t *testing.T, yes, settings bool) {
	t.Helper()
	origYes, origSettings := skipConfirm, cleanSettings
	skipConfirm, cleanSettings = yes, settings
	t.Cleanup(func() { skipConfirm, cleanSettings = origYes, origSettings })
}

func writeSettings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HUDDLE_CONFIG_DIR", dir)
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"nord"}`), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClean_AbortKeepsSettings(t *testing.T) {
	path := writeSettings(t)
	withCleanFlags(t, false, true)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("output = %q, want Aborted.", out.String())
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("summary should name %s, got %q", path, out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings should survive an abort: %v", err)
	}
}

func TestClean_RemovesSettings(t *testing.T) {
	path := writeSettings(t)
	withCleanFlags(t, true, true)

	var out bytes.Buffer
	if err := runCleanWithReader(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("settings should be removed, stat err = %v", err)
	}
	if !strings.Contains(out.String(), "Saved settings removed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestClean_SettingsUntouchedWithoutFlag(t *testing.T) {
	path := writeSettings(t)
	withCleanFlags(t, true, false)

	if err := runCleanWithReader(strings.NewReader(""), io.Discard); err != nil {
		t.Fatalf("runCleanWithReader() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings should be kept without --settings: %v", err)
	}
}
