package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so transport layers can map it to a status
// code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// Validation: malformed input, reported to the caller, never retried.
	Validation
	// NotFound: the referenced entity does not exist.
	NotFound
	// Conflict: double-booking or capacity contention. Expected, not a bug.
	Conflict
	// State: illegal status transition, usually stale client state.
	State
	// Policy: cancellation-window violation.
	Policy
	// Dependency: calendar/notification failure. Logged and swallowed by the
	// service layer; it never reaches a caller.
	Dependency
	// Integrity: ledger reconciliation mismatch, fatal for the affected
	// package and flagged for manual repair.
	Integrity
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
