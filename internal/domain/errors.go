package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a write collides with existing state,
	// e.g. a second active review for the same product or a stale version
	ErrConflict = errors.New("conflict occurred")

	// ErrForbidden is returned when the caller does not own the resource
	ErrForbidden = errors.New("forbidden")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// ErrorKind is the stable, machine-readable category of a domain error
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindForbidden  ErrorKind = "forbidden"
)

// Error is a domain error carrying a kind and a message safe to show to the caller
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates an error for user-correctable input problems
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: ErrInvalidInput}
}

// NotFound creates an error for a missing resource
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: ErrNotFound}
}

// Conflict creates an error for a write that collides with existing state
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: ErrConflict}
}

// Forbidden creates an error for an ownership mismatch
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message, Err: ErrForbidden}
}
