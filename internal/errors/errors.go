// Package errors provides structured error types for huddle.
// An Error records the operation that failed, a coarse Kind, and the
// underlying cause, so the UI can phrase a report without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindTimeout
	// KindInvariant marks a programming error in the roster (duplicate item,
	// access to a destroyed entity). The operation is refused.
	KindInvariant
	// KindBusy marks a request refused because the same one is still in flight.
	KindBusy
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	case KindInvariant:
		return "invariant violation"
	case KindBusy:
		return "already in progress"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for huddle.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error from any mix of Op, Kind, string (context) and error.
// When no error is given the context string becomes the error text.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Cause returns the innermost non-Error cause, which is what a user-facing
// report shows.
func Cause(err error) error {
	for {
		var e *Error
		if !errors.As(err, &e) || e.Err == nil {
			return err
		}
		err = e.Err
	}
}

// kindOf keeps a known kind from the cause (timeouts, network) and falls back
// to the given default.
func kindOf(err error, fallback Kind) Kind {
	if k := GetKind(err); k != KindUnknown {
		return k
	}
	return fallback
}

// Async action failures

func RoomCreateFailed(contact string, err error) error {
	return E(Op("roster.CreatePeerRoom"), kindOf(err, KindNetwork), fmt.Sprintf("error creating chatroom with %s", contact), err)
}

func GroupCreateFailed(name string, err error) error {
	return E(Op("roster.CreateGroupRoom"), kindOf(err, KindNetwork), fmt.Sprintf("error creating group chat %q", name), err)
}

func ContactRemoveFailed(contact string, err error) error {
	return E(Op("roster.RemoveContact"), kindOf(err, KindNetwork), fmt.Sprintf("error removing contact %s", contact), err)
}

func RoomLeaveFailed(room string, err error) error {
	return E(Op("roster.LeaveRoom"), kindOf(err, KindNetwork), fmt.Sprintf("error leaving group chat %s", room), err)
}

func TopicSetFailed(room string, err error) error {
	return E(Op("roster.SetTopic"), kindOf(err, KindNetwork), fmt.Sprintf("error setting topic of %s", room), err)
}

func TruncateFailed(room string, err error) error {
	return E(Op("roster.Truncate"), kindOf(err, KindNetwork), fmt.Sprintf("error truncating %s", room), err)
}

func InviteFailed(contact, room string, err error) error {
	return E(Op("roster.Invite"), kindOf(err, KindNetwork), fmt.Sprintf("error inviting %s to %s", contact, room), err)
}

func ContactAddFailed(email string, err error) error {
	return E(Op("roster.AddContact"), kindOf(err, KindNetwork), fmt.Sprintf("error adding %s to contacts", email), err)
}

func PresenceSetFailed(err error) error {
	return E(Op("roster.SetPresence"), kindOf(err, KindNetwork), "error changing online status", err)
}

func MessageSendFailed(room string, err error) error {
	return E(Op("roster.SendMessage"), kindOf(err, KindNetwork), fmt.Sprintf("error sending message to %s", room), err)
}

func CallAnswerFailed(err error) error {
	return E(Op("app.AnswerCall"), kindOf(err, KindNetwork), "error answering call", err)
}

// Roster invariant violations

func DuplicateItem(key string) error {
	return E(Op("roster.Add"), KindInvariant, fmt.Sprintf("list item for %s already exists", key))
}

func EntityGone(key string) error {
	return E(Op("roster.Lookup"), KindInvariant, fmt.Sprintf("entity %s has been destroyed", key))
}

func RequestInFlight(action, key string) error {
	return E(Op("roster.Issue"), KindBusy, fmt.Sprintf("%s for %s is already in progress", action, key))
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

func FixtureInvalid(path, reason string) error {
	return E(Op("sim.LoadFixture"), KindInvalid, fmt.Sprintf("%s: %s", path, reason))
}
