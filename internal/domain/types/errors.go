package types

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// ValidationError reports which release train spec field failed validation.
// Err is ErrMissingField or ErrInvalidField, possibly wrapped with detail.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("release train spec: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func missingField(field string) error {
	return &ValidationError{Field: field, Err: ErrMissingField}
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Err: fmt.Errorf("%w: %s", ErrInvalidField, message)}
}
