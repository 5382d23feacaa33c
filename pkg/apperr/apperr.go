package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes a single validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the application error type carried between the service layer and
// the terminal error-handler middleware. Status is the HTTP status hint used
// when the error reaches the response writer.
type Error struct {
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an application error with an explicit status hint.
func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

// Validation reports one or more schema violations (400).
func Validation(message string, fields []FieldError) *Error {
	return &Error{Message: message, Status: http.StatusBadRequest, Fields: fields}
}

// InvalidID reports a malformed resource identifier (400).
func InvalidID(message string) *Error {
	return &Error{Message: message, Status: http.StatusBadRequest}
}

// NotFound reports a missing resource (404).
func NotFound(message string) *Error {
	return &Error{Message: message, Status: http.StatusNotFound}
}

// Unauthorized reports a failed or missing authentication (401).
func Unauthorized(message string) *Error {
	return &Error{Message: message, Status: http.StatusUnauthorized}
}

// Forbidden reports an authenticated but disallowed request (403).
func Forbidden(message string) *Error {
	return &Error{Message: message, Status: http.StatusForbidden}
}

// Internal wraps an unexpected lower-layer failure (500).
func Internal(message string, err error) *Error {
	return &Error{Message: message, Status: http.StatusInternalServerError, Err: err}
}

// StatusOf resolves the HTTP status hint for any error. Unknown errors
// default to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
