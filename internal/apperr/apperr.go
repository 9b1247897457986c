// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Services return these; the handlers map each kind to its status code.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
)

func NotFound(resource string, id int) error {
	return fmt.Errorf("%s with id %d: %w", resource, id, ErrNotFound)
}

func Forbidden(action string) error {
	return fmt.Errorf("%s: %w", action, ErrForbidden)
}

func Conflict(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

func Unauthorized(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
}

// ValidationError carries per-field messages for a 422 response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation error"
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
