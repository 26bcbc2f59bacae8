// internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"net/http"
)

// Error is an application error carrying the HTTP status it should map to.
// Handlers and services return these; the terminal responder turns them into
// a status code and JSON body. Anything that is not an *Error maps to 500.
type Error struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest creates a 400 validation error
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized creates a 401 authentication error
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden creates a 403 authorization error
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound creates a 404 error
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal wraps an unexpected fault as a 500 error
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
