package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPreferences signals a malformed preference vector.
	ErrInvalidPreferences = errors.New("invalid preferences")
	// ErrInvalidQuery signals a malformed discovery query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDataset signals a neighborhood dataset that failed validation.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNotImplemented signals a feature that is not configured on this instance.
	ErrNotImplemented = errors.New("not implemented")
)

// FieldError wraps ErrInvalidPreferences with the name of the offending field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidPreferences.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidPreferences }

// NewFieldError creates a preference validation error for field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
