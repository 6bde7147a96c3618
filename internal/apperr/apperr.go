package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error into one of the HTTP-facing failure categories.
type Kind int

const (
	// Internal is an unexpected storage or infrastructure failure.
	Internal Kind = iota
	// Validation means the request payload failed shape checks.
	Validation
	// Lookup means an external lookup (geocoding) found nothing.
	Lookup
	// NotFound means the addressed entity does not exist.
	NotFound
	// Forbidden means the caller is not allowed to act on the resource.
	Forbidden
)

// Error carries a client-safe message alongside its kind and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case Validation, Lookup:
		return http.StatusUnprocessableEntity
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the underlying cause for logs while presenting message to clients.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
