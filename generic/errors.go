/*
errors.go - Centralized error types for the tracker primitives

PURPOSE:
  All validation errors in one place for consistency and discoverability.
  The timeoff package wraps these with field context (see FieldError).

ERROR CATEGORIES:
  1. Input errors - dates or hours that cannot be parsed
  2. Validation errors - parsed values that break a rule
  3. Store errors - wrapped by the store packages, not defined here

USAGE:
    if generic.IsValidation(err) {
        // nothing changed; tell the user why
    }
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingDate is returned when a required date is empty.
	ErrMissingDate = errors.New("date is required")

	// ErrInvalidDate is returned when a date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvertedRange is returned when a range ends before it starts.
	ErrInvertedRange = errors.New("invalid range: end before start")

	// ErrMissingHours is returned when a deducting entry has no hours.
	ErrMissingHours = errors.New("hours are required")

	// ErrInvalidHours is returned when hours are not numeric.
	ErrInvalidHours = errors.New("invalid hours")

	// ErrNegativeHours is returned for hour values below zero.
	ErrNegativeHours = errors.New("hours must not be negative")

	// ErrUnknownCategory is returned for a category name outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidMonth is returned for months outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is due to invalid caller input.
// Commands that fail this way leave all state untouched.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvertedRange) ||
		errors.Is(err, ErrMissingHours) ||
		errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrNegativeHours) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrInvalidMonth)
}
