package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors let the HTTP layer map service failures to status codes
// without inspecting messages (e.g. ErrInvalidCredentials -> 401).
var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password so
	// login responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
)

// ConflictError is a uniqueness violation (duplicate email, duplicate
// referral for the same owner).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// FieldError is one violated input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field, detected before any
// persistence or filesystem mutation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Field + ": " + e.Fields[0].Message
	}
	return fmt.Sprintf("%d validation errors", len(e.Fields))
}

// Add appends a violation and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any rule was violated.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

func Validation(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsConflict unwraps err into a *ConflictError when possible.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
