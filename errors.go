package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistration indicates a handler registration failure. Registration
	// errors surface synchronously and are expected to abort bootstrap.
	ErrRegistration = errors.New("dispatch: handler registration failed")
	// ErrHandlerNotFound indicates dispatch of an envelope type with no
	// registered handler. It surfaces asynchronously through the Result
	// channel and is recoverable by the caller.
	ErrHandlerNotFound = errors.New("dispatch: no handler registered")
	// ErrNoResult is returned by Await when a result channel closes without
	// delivering a result.
	ErrNoResult = errors.New("dispatch: no result")
)

// DuplicateHandlerError reports a second registration for an envelope type
// that already has a handler. The first registration is retained unchanged.
type DuplicateHandlerError struct {
	EnvelopeType string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("duplicate handler for envelope type %q", e.EnvelopeType)
}

func (e *DuplicateHandlerError) Unwrap() error { return ErrRegistration }

// HandlerNotFoundError reports dispatch of an envelope whose type has no
// registered handler. No handler code runs when this error is produced.
type HandlerNotFoundError struct {
	EnvelopeType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for envelope type %q", e.EnvelopeType)
}

func (e *HandlerNotFoundError) Unwrap() error { return ErrHandlerNotFound }
