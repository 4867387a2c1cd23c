package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three domain failure kinds. Repositories wrap
// these so callers can test with errors.Is without seeing driver errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("integrity violation")
	ErrInvalidInput = errors.New("invalid input")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures detected before a write
// is attempted.
type ValidationError struct {
	Errors []FieldError `json:"field_errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, message string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, message)
	return ve
}
