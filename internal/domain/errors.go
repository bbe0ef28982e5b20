package domain

import (
	"errors"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
)

// Extraction failures. Each one is scoped to a single source block.
var (
	// ErrCollaboratorUnavailable means the text-generation service could not be
	// reached (network, timeout, quota). Callers may retry.
	ErrCollaboratorUnavailable = errors.New("text generation unavailable")

	// ErrMalformedResponse means the service replied but the reply did not
	// satisfy the JSON contract. Callers fall back instead of retrying.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrUnextractable means neither the structured nor the line-pattern path
	// produced a question.
	ErrUnextractable = errors.New("unextractable source block")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// Error lists every field as "field: message", separated by "; ".
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
