package store

import (
	"errors"
	"fmt"
)

// ErrorKind classifies store failures so callers can decide per call
// whether to skip a render, show a notice, or both.
type ErrorKind string

const (
	// KindNetwork covers transport failures and unreadable responses.
	KindNetwork ErrorKind = "network"
	// KindNotFound covers operations against an ID the service does not know.
	KindNotFound ErrorKind = "not_found"
	// KindRemote covers non-success responses the service produced itself.
	KindRemote ErrorKind = "remote"
)

// Error is the uniform failure outcome of every store operation.
type Error struct {
	Kind    ErrorKind
	Op      string // which store operation failed
	Message string // service-provided detail, if any
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("store %s: %s (%s)", e.Op, msg, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a store error for a missing record.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindNotFound
}

// IsNetwork reports whether err is a transport-level store failure.
func IsNetwork(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == KindNetwork
}

func networkError(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func notFoundError(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

func remoteError(op string, status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("unexpected status %d", status)
	}
	return &Error{Kind: KindRemote, Op: op, Message: message}
}
