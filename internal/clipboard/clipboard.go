// Package clipboard reads and writes text on the system clipboard.
//
// huddle uses it to hand a dragged contact handle to other programs when the
// drag ends outside any drop target, and for the yank shortcut.
package clipboard

import (
	"fmt"
	"strings"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/huddle/internal/logger"
)

// payloadPrefix marks clipboard text produced from a contact drag.
const payloadPrefix = "huddle:user:"

var (
	mu          sync.Mutex
	initialized bool
	initErr     error

	// Swapped out by tests; the real clipboard needs a display server.
	writeFn = func(b []byte) { clipboard.Write(clipboard.FmtText, b) }
	readFn  = func() []byte { return clipboard.Read(clipboard.FmtText) }
	initFn  = clipboard.Init
)

// Init initializes the clipboard. Safe to call multiple times; a failure is
// remembered and returned on every later call.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return initErr
	}
	initialized = true
	if err := initFn(); err != nil {
		logger.Warn("clipboard: failed to initialize: %v", err)
		initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
		return initErr
	}
	logger.Debug("clipboard: initialized")
	return nil
}

// WriteText puts text on the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	writeFn([]byte(text))
	return nil
}

// ReadText reads text from the clipboard. An empty clipboard is not an error.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	b := readFn()
	if b == nil {
		return "", nil
	}
	return string(b), nil
}

// EncodeUserHandle renders a user handle as clipboard text.
func EncodeUserHandle(handle string) string {
	return payloadPrefix + handle
}

// DecodeUserHandle extracts a user handle from clipboard text written by
// EncodeUserHandle.
func DecodeUserHandle(text string) (string, bool) {
	handle, ok := strings.CutPrefix(strings.TrimSpace(text), payloadPrefix)
	if !ok || handle == "" {
		return "", false
	}
	return handle, true
}
