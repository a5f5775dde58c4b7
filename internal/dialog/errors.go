package dialog

import (
	"errors"
	"fmt"
)

var (
	// ErrRequired is reported for empty required fields.
	ErrRequired = errors.New("value is required")
	// ErrPasswordMismatch is reported when the confirmation differs from the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidName is reported for names that cannot be used as object names.
	ErrInvalidName = errors.New("invalid name")
	// ErrClosed is returned when a closed dialog is submitted.
	ErrClosed = errors.New("dialog is closed")
)

// ValidationError is a form-level error bound to one field, or to the whole
// form when Field is empty.
type ValidationError struct {
	// Field names the offending form field.
	Field string
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// invalid returns a validation error for field.
func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
