// Package notification sends desktop notifications through beeep.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/huddle/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "huddle"

// notifier is swapped out by tests so no real notification is sent.
var notifier = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	logger.Debug("notification: title=%q message=%q", title, message)
	// Empty icon lets beeep pick the platform default.
	err := notifier(title, message, "")
	if err != nil {
		logger.Warn("notification: failed to send: %v", err)
	}
	return err
}

// IncomingCall announces a call from the given caller.
func IncomingCall(caller string, video bool) error {
	kind := "Audio"
	if video {
		kind = "Video"
	}
	return Send(AppName, fmt.Sprintf("%s call from %s", kind, caller))
}

// ContactRequest announces an incoming contact request.
func ContactRequest(email string) error {
	return Send(AppName, email+" wants to add you as a contact")
}
