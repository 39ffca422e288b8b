// ABOUTME: Error kinds surfaced by the mutation engine and cascade updater
// ABOUTME: Defines the NotFound sentinel and structured validation errors
package crm

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced contact does not exist.
var ErrNotFound = errors.New("contact not found")

// ValidationError rejects an operation whose input is missing a required
// field or carries an unparseable value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
