// Package config loads and saves huddle's user settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhubert/huddle/internal/errors"
)

// Defaults applied when a field is missing from the file.
const (
	DefaultActionTimeout = 30 * time.Second
	DefaultDragThreshold = 2
	DefaultOwnPresence   = "online"
	DefaultAudioInput    = "default"
	DefaultVideoInput    = "default"
)

// Presences accepted for OwnPresence.
var Presences = []string{"online", "away", "busy", "offline"}

// Config holds the application configuration
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g. "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for calls and contact requests

	// ActionTimeoutSecs bounds every domain operation issued from the UI.
	ActionTimeoutSecs int `json:"action_timeout_secs,omitempty"`
	// DragThreshold is the manhattan distance in cells a press must travel
	// before it becomes a drag.
	DragThreshold int `json:"drag_threshold,omitempty"`

	// Media settings, edited in the settings dialog
	AudioInput string `json:"audio_input,omitempty"`
	VideoInput string `json:"video_input,omitempty"`

	OwnPresence string `json:"own_presence,omitempty"`
	FixturePath string `json:"fixture_path,omitempty"` // YAML fixture for the in-memory network

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	if dir := os.Getenv("HUDDLE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".huddle"), nil
}

// Path returns the path to the config file
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Must run before Validate, which only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureInitialized fills defaults for zero fields. Not thread-safe: call it
// only before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.ActionTimeoutSecs == 0 {
		c.ActionTimeoutSecs = int(DefaultActionTimeout / time.Second)
	}
	if c.DragThreshold == 0 {
		c.DragThreshold = DefaultDragThreshold
	}
	if c.OwnPresence == "" {
		c.OwnPresence = DefaultOwnPresence
	}
	if c.AudioInput == "" {
		c.AudioInput = DefaultAudioInput
	}
	if c.VideoInput == "" {
		c.VideoInput = DefaultVideoInput
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ActionTimeoutSecs < 0 {
		return errors.ConfigInvalid("action_timeout_secs must not be negative")
	}
	if c.DragThreshold < 0 {
		return errors.ConfigInvalid("drag_threshold must not be negative")
	}
	if !validPresence(c.OwnPresence) {
		return errors.ConfigInvalid("unknown own_presence: " + c.OwnPresence)
	}
	return nil
}

func validPresence(p string) bool {
	for _, v := range Presences {
		if v == p {
			return true
		}
	}
	return false
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Reload re-reads the file this config was loaded from. On error the current
// values are kept.
func (c *Config) Reload() error {
	fresh, err := LoadFrom(c.FilePath())
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = fresh.Theme
	c.NotificationsEnabled = fresh.NotificationsEnabled
	c.ActionTimeoutSecs = fresh.ActionTimeoutSecs
	c.DragThreshold = fresh.DragThreshold
	c.AudioInput = fresh.AudioInput
	c.VideoInput = fresh.VideoInput
	c.OwnPresence = fresh.OwnPresence
	c.FixturePath = fresh.FixturePath
	return nil
}

// FilePath returns where the config is stored.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetActionTimeout returns the deadline applied to domain operations.
func (c *Config) GetActionTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ActionTimeoutSecs <= 0 {
		return DefaultActionTimeout
	}
	return time.Duration(c.ActionTimeoutSecs) * time.Second
}

// GetDragThreshold returns the distance a press must travel to start a drag.
func (c *Config) GetDragThreshold() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.DragThreshold <= 0 {
		return DefaultDragThreshold
	}
	return c.DragThreshold
}

// GetMediaInputs returns the selected audio and video inputs.
func (c *Config) GetMediaInputs() (audio, video string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AudioInput, c.VideoInput
}

// SetMediaInputs stores the selected audio and video inputs.
func (c *Config) SetMediaInputs(audio, video string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AudioInput = audio
	c.VideoInput = video
}

// GetOwnPresence returns the presence restored at startup.
func (c *Config) GetOwnPresence() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.OwnPresence
}

// SetOwnPresence stores the presence restored at startup. Unknown values are
// ignored.
func (c *Config) SetOwnPresence(p string) bool {
	if !validPresence(p) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.OwnPresence = p
	return true
}

// GetFixturePath returns the configured fixture path, if any.
func (c *Config) GetFixturePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.FixturePath
}

// SetFixturePath sets the fixture used when no --fixture flag is given.
func (c *Config) SetFixturePath(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.FixturePath = p
}
