package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the HTTP error mapping.
type Kind string

const (
	KindInvalid      Kind = "invalid"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindUpstream     Kind = "upstream"
	KindInternal     Kind = "internal"
)

// Error is a classified failure with a client-safe message.
type Error struct {
	Kind    Kind
	Code    string
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

// New returns a sentinel error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap classifies err under kind, keeping it in the chain.
func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Invalid builds a validation error with a caller-supplied message.
func Invalid(message string) *Error {
	return New(KindInvalid, "validation_error", message)
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
