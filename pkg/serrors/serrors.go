// Package serrors provides semantic errors for the cruise registry. Every
// failure the registry reports carries one of the kinds declared here so that
// callers (CLI, HTTP surface) can classify it with errors.Is without parsing
// messages.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a semantic error category. Kinds are sentinels: compare them with
// errors.Is through the Error wrapper.
type Kind interface {
	error
	isKind()
}

type kind struct{ code string }

func (k kind) Error() string { return k.code }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind identified by code.
func NewKind(code string) Kind { return kind{code: code} }

var (
	// ErrSourceNotFound indicates the data source could not be opened.
	ErrSourceNotFound = NewKind("SOURCE_NOT_FOUND")
	// ErrMalformedRecord indicates a row could not be turned into a cabin or passenger.
	ErrMalformedRecord = NewKind("MALFORMED_RECORD")
	// ErrCabinNotFound indicates no cabin matches the requested code.
	ErrCabinNotFound = NewKind("CABIN_NOT_FOUND")
	// ErrPassengerNotFound indicates no passenger matches the requested code.
	ErrPassengerNotFound = NewKind("PASSENGER_NOT_FOUND")
	// ErrCabinUnavailable indicates the cabin is already occupied.
	ErrCabinUnavailable = NewKind("CABIN_UNAVAILABLE")
	// ErrPassengerAlreadyAssigned indicates the passenger already occupies a cabin.
	ErrPassengerAlreadyAssigned = NewKind("PASSENGER_ALREADY_ASSIGNED")
	// ErrAlreadyAssigned is raised by a cabin asked to overwrite its own assignment.
	ErrAlreadyAssigned = NewKind("ALREADY_ASSIGNED")
)

// Error carries a kind, an optional cause and an optional message.
//
// errors.Is and errors.As match both the kind and anything in the cause chain.
// The message is rendered as "<msg>: <cause>", "<msg>", "<cause>" or the kind
// code, depending on which parts are set.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an error of kind k with a formatted message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an error of kind k around cause err with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch {
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	}

	return "unknown error"
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the kind of e or appears in its cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.err != nil && errors.Is(e.err, target))
}

// As extracts either the kind or a value from the cause chain into target.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.err != nil && errors.As(e.err, target))
}

// KindOf returns the first kind found in err's chain, or nil when err carries
// none.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// MessageOf returns the message of the outermost *Error in err's chain, falling
// back to err.Error().
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.msg != "" {
		return se.msg
	}

	return err.Error()
}
