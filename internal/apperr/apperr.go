// Package apperr defines the error taxonomy shared by services and
// handlers. Services classify failures with these errors; handlers map
// them to HTTP status codes without leaking internal details.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced record does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique constraint was violated (409).
	ErrConflict = errors.New("conflict")
	// ErrInvalidState means the operation would violate a stock
	// invariant, e.g. selling more than is on hand (400).
	ErrInvalidState = errors.New("invalid state")
	// ErrValidation means the input was missing or malformed (400).
	ErrValidation = errors.New("validation failed")
)

// apiError carries a client-safe message on top of one of the sentinel
// errors above, so errors.Is still classifies it.
type apiError struct {
	base error
	msg  string
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.base }

func NotFound(format string, args ...interface{}) error {
	return &apiError{base: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &apiError{base: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) error {
	return &apiError{base: ErrInvalidState, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return &apiError{base: ErrValidation, msg: fmt.Sprintf(format, args...)}
}
