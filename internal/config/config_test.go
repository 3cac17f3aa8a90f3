package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/zhubert/huddle/internal/errors"
)

func writeConfig(t *testing.T, v any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.GetActionTimeout() != DefaultActionTimeout {
		t.Errorf("timeout = %v, want %v", cfg.GetActionTimeout(), DefaultActionTimeout)
	}
	if cfg.GetDragThreshold() != DefaultDragThreshold {
		t.Errorf("drag threshold = %d, want %d", cfg.GetDragThreshold(), DefaultDragThreshold)
	}
	if cfg.GetOwnPresence() != DefaultOwnPresence {
		t.Errorf("presence = %q, want %q", cfg.GetOwnPresence(), DefaultOwnPresence)
	}
	audio, video := cfg.GetMediaInputs()
	if audio != DefaultAudioInput || video != DefaultVideoInput {
		t.Errorf("media = %q/%q", audio, video)
	}
}

func TestLoadFrom_ReadsFields(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"theme":                 "nord",
		"notifications_enabled": true,
		"action_timeout_secs":   5,
		"drag_threshold":        4,
		"audio_input":           "USB Mic",
		"own_presence":          "away",
		"fixture_path":          "/tmp/f.yaml",
	})

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("theme = %q", cfg.GetTheme())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if cfg.GetActionTimeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.GetActionTimeout())
	}
	if cfg.GetDragThreshold() != 4 {
		t.Errorf("drag threshold = %d", cfg.GetDragThreshold())
	}
	audio, video := cfg.GetMediaInputs()
	if audio != "USB Mic" || video != DefaultVideoInput {
		t.Errorf("media = %q/%q", audio, video)
	}
	if cfg.GetOwnPresence() != "away" {
		t.Errorf("presence = %q", cfg.GetOwnPresence())
	}
	if cfg.GetFixturePath() != "/tmp/f.yaml" {
		t.Errorf("fixture = %q", cfg.GetFixturePath())
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"negative timeout", map[string]any{"action_timeout_secs": -1}},
		{"negative drag", map[string]any{"drag_threshold": -3}},
		{"unknown presence", map[string]any{"own_presence": "lurking"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.body))
			if !errors.Is(err, errors.KindInvalid) {
				t.Errorf("err = %v, want KindInvalid", err)
			}
		})
	}
}

func TestLoadFrom_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFrom(path)
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("err = %v, want KindConfig", err)
	}
}

func TestLoad_UsesConfigDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HUDDLE_CONFIG_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FilePath() != filepath.Join(dir, "config.json") {
		t.Errorf("FilePath = %q", cfg.FilePath())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	cfg.SetTheme("tokyo-night")
	cfg.SetMediaInputs("Built-in", "FaceTime HD")
	cfg.SetNotificationsEnabled(true)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom after save: %v", err)
	}
	if loaded.GetTheme() != "tokyo-night" {
		t.Errorf("theme = %q", loaded.GetTheme())
	}
	audio, video := loaded.GetMediaInputs()
	if audio != "Built-in" || video != "FaceTime HD" {
		t.Errorf("media = %q/%q", audio, video)
	}

	// Edit the file behind cfg's back and reload.
	loaded.SetTheme("nord")
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := cfg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("theme after reload = %q", cfg.GetTheme())
	}
}

func TestReload_KeepsValuesOnError(t *testing.T) {
	path := writeConfig(t, map[string]any{"theme": "nord"})
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if cfg.GetTheme() != "nord" {
		t.Errorf("theme = %q, want unchanged", cfg.GetTheme())
	}
}

func TestSetOwnPresence(t *testing.T) {
	cfg := &Config{}
	if !cfg.SetOwnPresence("busy") {
		t.Error("busy should be accepted")
	}
	if cfg.SetOwnPresence("dancing") {
		t.Error("unknown presence should be rejected")
	}
	if cfg.GetOwnPresence() != "busy" {
		t.Errorf("presence = %q", cfg.GetOwnPresence())
	}
}

func TestZeroConfigGetters(t *testing.T) {
	cfg := &Config{}
	if cfg.GetActionTimeout() != DefaultActionTimeout {
		t.Errorf("timeout = %v", cfg.GetActionTimeout())
	}
	if cfg.GetDragThreshold() != DefaultDragThreshold {
		t.Errorf("drag = %d", cfg.GetDragThreshold())
	}
}

func TestConfig_ConcurrentAccess(t *testing.T) {
	cfg := &Config{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cfg.SetTheme("nord")
			cfg.SetMediaInputs("a", "b")
		}()
		go func() {
			defer wg.Done()
			_ = cfg.GetTheme()
			_, _ = cfg.GetMediaInputs()
		}()
	}
	wg.Wait()
}
