// Package apperr carries the error kinds the HTTP layer translates into
// response statuses. Services return these instead of raw fiber errors so
// they stay independent of the transport.
package apperr

import "errors"

// Kind classifies an expected, named failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindInvalid
	KindConflict
	KindUnauthorized
)

// Error is a kind-tagged error with a client-safe message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound reports a missing resource.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Forbidden reports an actor that is not the resource owner.
func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// Invalid reports rejected input.
func Invalid(msg string) error {
	return &Error{Kind: KindInvalid, Msg: msg}
}

// Conflict reports a write that lost to a concurrent one.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Unauthorized reports missing or bad credentials.
func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// KindOf extracts the kind from err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
