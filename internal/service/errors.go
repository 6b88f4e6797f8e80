package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain failure with an HTTP-style status class. The
// taxonomy is fixed: validation (400), missing identity (401), missing
// role (403), unknown/inactive references (404), stock conflicts (409)
// and everything unexpected (500). Suggestion optionally names the
// alternative action for conflicts.
type Error struct {
	Status     int    `json:"-"`
	Message    string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg, suggestion string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg, Suggestion: suggestion}
}

// StatusOf maps any error to its status class. Non-domain errors are
// reported as a generic internal failure so infrastructure details
// never leak to the caller.
func StatusOf(err error) (int, *Error) {
	var de *Error
	if errors.As(err, &de) {
		return de.Status, de
	}
	return http.StatusInternalServerError, &Error{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
	}
}
