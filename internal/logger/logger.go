// Package logger writes huddle's debug log.
//
// The terminal is owned by the TUI, so everything goes to a file. Callers use
// either the printf-style helpers (Debug, Info, Warn, Error) or a structured
// logger scoped to a component or a roster entity.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultLogPath is used when Init is never called.
const DefaultLogPath = "/tmp/huddle-debug.log"

// logGlob matches every log file huddle may have written.
const logGlob = "/tmp/huddle-*.log"

var (
	mu       sync.Mutex
	base     *slog.Logger
	levelVar = new(slog.LevelVar)
	level    = LevelInfo
	file     *os.File
	path     string
	ready    bool
)

// SetLevel sets the minimum level that reaches the log file.
func SetLevel(l LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	levelVar.Set(l.slogLevel())
}

// SetDebug toggles between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelInfo)
}

// Init opens the log file at p. Later calls are no-ops until Reset.
func Init(p string) error {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return nil
	}
	return open(p)
}

// open must be called with mu held.
func open(p string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	file = f
	path = p
	levelVar.Set(level.slogLevel())
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	ready = true
	base.Info("logger initialized", "path", p)
	return nil
}

// lazyInit must be called with mu held.
func lazyInit() {
	if ready {
		return
	}
	if err := open(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Don't retry on every log call.
		ready = true
	}
}

func logf(l slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	if base == nil || !base.Enabled(context.Background(), l) {
		return
	}
	base.Log(context.Background(), l, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

// Info logs at info level.
func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

// Warn logs at warn level.
func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

// Error logs at error level.
func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }

// WithComponent returns a structured logger tagged with the component name.
//
//	log := logger.WithComponent("roster")
//	log.Debug("item created", "key", key)
func WithComponent(component string) *slog.Logger {
	return scoped(slog.String("component", component))
}

// WithEntity returns a structured logger tagged with a roster entity key.
func WithEntity(key string) *slog.Logger {
	return scoped(slog.String("entity", key))
}

func scoped(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	if base == nil {
		return slog.New(slog.DiscardHandler)
	}
	return base.With(attr)
}

// Path returns the path of the open log file, or "" if none is open.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
}

// Reset drops all logger state so Init can run again. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
		file = nil
	}
	base = nil
	path = ""
	ready = false
	level = LevelInfo
	levelVar = new(slog.LevelVar)
}

// LogFiles lists the huddle log files in /tmp.
func LogFiles() ([]string, error) {
	return filepath.Glob(logGlob)
}

// ClearLogs removes huddle log files from /tmp and reports how many were removed.
func ClearLogs() (int, error) {
	matches, err := LogFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, err
		}
		removed++
	}
	return removed, nil
}
