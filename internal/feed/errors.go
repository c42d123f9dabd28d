package feed

import (
	"errors"
	"fmt"

	"github.com/Big-jpg/swipehire/internal/store"
)

// Kind classifies errors returned to callers of the service.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindInvalid      Kind = "invalid"
	KindConflict     Kind = "conflict"
	KindStorage      Kind = "storage"
)

// Error is the caller-visible error type. Message is safe to show to users;
// Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrUnauthorized    = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrProfileRequired = &Error{Kind: KindPrecondition, Message: "profile required"}
	ErrNothingToUndo   = &Error{Kind: KindNotFound, Message: "no swipe to undo"}
	ErrJobNotFound     = &Error{Kind: KindNotFound, Message: "job not found"}
)

// KindOf reports the kind of err; unclassified errors are storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStorage {
		return e.Message
	}
	return "internal error"
}

func invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// classify leaves typed errors alone and maps store errors onto kinds.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, store.ErrConflict) {
		return &Error{Kind: KindConflict, Message: op + ": conflicting state", Err: err}
	}
	return &Error{Kind: KindStorage, Message: op, Err: err}
}
