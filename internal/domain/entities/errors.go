package entities

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable identifier of a failure class. The transport layer
// translates kinds into response codes.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "INVALID_INPUT"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindInternal     ErrorKind = "INTERNAL"
)

// Common errors
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict         = &Error{Kind: KindConflict, Message: "conflict"}
	ErrInternal         = &Error{Kind: KindInternal, Message: "internal error"}
	ErrTemplateNotFound = &Error{Kind: KindNotFound, Message: "template not found"}
)

// Error is a domain error tagged with its kind. Field names the offending
// request field for invalid input.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels (ErrNotFound and friends) by kind alone, so
// errors.Is(err, ErrNotFound) holds for every not-found failure. Any other
// *Error target must also carry the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e.Kind != t.Kind {
		return false
	}
	switch t {
	case ErrInvalidInput, ErrNotFound, ErrConflict, ErrInternal:
		return true
	}
	return e.Message == t.Message
}

// InvalidInput builds an invalid input error for field.
func InvalidInput(field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: message}
}

// NotFound builds a not found error naming the missing resource and id.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %q not found", resource, id)}
}

// Conflict wraps a storage level uniqueness violation.
func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// Internal wraps an unexpected storage or serialization failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
