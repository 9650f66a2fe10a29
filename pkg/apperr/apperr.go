// Package apperr defines the application error taxonomy. Handlers hand
// any error to response.Error, which maps a known Kind to its HTTP status;
// everything else becomes a 500.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	// Internal covers store constraint violations, connection failures
	// and anything unanticipated.
	Internal Kind = iota
	// BadRequest covers malformed or invalid input, including invalid
	// credentials at login.
	BadRequest
	// Unauthorized covers missing, malformed or expired tokens.
	Unauthorized
	// Forbidden covers an authenticated subject acting on a resource it
	// does not own.
	Forbidden
	// NotFound covers a referenced entity that is absent.
	NotFound
)

// Error is an error carrying a Kind and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the Kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewBadRequest(message string) *Error   { return New(BadRequest, message) }
func NewUnauthorized(message string) *Error { return New(Unauthorized, message) }
func NewForbidden(message string) *Error    { return New(Forbidden, message) }
func NewNotFound(message string) *Error     { return New(NotFound, message) }

// From extracts an *Error from err, or nil when err carries no Kind.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
