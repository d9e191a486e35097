// Package errors consolidates error definitions for snowgrid.
//
// This file provides:
// - Sentinel errors for all error conditions
// - Error category checking functions
// - Error wrapping utilities
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// Fatal input conditions
	ErrInputNotFound = errors.New("input not found")
	ErrNoValidData   = errors.New("no valid data")

	// Per-file conditions (recoverable, file is skipped)
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidProfile  = errors.New("invalid profile encoding")
	ErrUnitMismatch    = errors.New("unit mismatch")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Output errors
	ErrWriterClosed = errors.New("dataset writer is closed")
	ErrNoDataset    = errors.New("dataset file not found")
)

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// IsFatal returns true if err is a run-aborting condition rather than a
// skip-and-continue one.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrNoValidData) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrNoDataset)
}

// IsMalformed returns true if err indicates a single unparsable input file.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidProfile) ||
		errors.Is(err, ErrUnitMismatch)
}

// ============================================================================
// Error wrapping utilities
// ============================================================================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewMissingField creates a missing field error.
func NewMissingField(field string) error {
	return fmt.Errorf("%s: %w", field, ErrMissingField)
}

// NewMalformed creates a malformed record error with context.
func NewMalformed(detail string) error {
	return fmt.Errorf("%s: %w", detail, ErrMalformedRecord)
}

// ============================================================================
// Validation Errors Collection
// ============================================================================

// ValidationErrors collects multiple validation errors for one record.
type ValidationErrors struct {
	Errors []error
}

// NewValidationErrors creates a new ValidationErrors collector.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add adds an error to the collection.
func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.Errors = append(v.Errors, err)
	}
}

// AddField adds a field validation error.
func (v *ValidationErrors) AddField(field, reason string) {
	v.Errors = append(v.Errors, fmt.Errorf("invalid %s: %s: %w", field, reason, ErrMalformedRecord))
}

// AddMissing adds a missing field error.
func (v *ValidationErrors) AddMissing(field string) {
	v.Errors = append(v.Errors, NewMissingField(field))
}

// HasErrors returns true if there are any errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}

	msg := fmt.Sprintf("validation failed with %d errors:", len(v.Errors))
	for _, err := range v.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Err returns nil if no errors, otherwise returns the ValidationErrors.
func (v *ValidationErrors) Err() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v
}

// Unwrap returns the first error for errors.Is/As support.
func (v *ValidationErrors) Unwrap() error {
	if len(v.Errors) == 0 {
		return nil
	}
	return v.Errors[0]
}
