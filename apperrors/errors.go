// Package apperrors carries the error taxonomy shared by all workflows.
// Services return these; the handler layer maps them to HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

// Error is an application error with an HTTP status attached.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound marks a referenced entity as absent (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Forbidden marks an authorization or invariant violation (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Validation marks malformed input (400).
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Storage marks a blob storage failure (500).
func Storage(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for errors
// outside the taxonomy.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
