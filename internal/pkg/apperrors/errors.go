// Package apperrors defines the sentinel errors shared by all resource
// services. Handlers translate them to HTTP statuses: ErrValidation to 400,
// ErrNotFound to 404, ErrConflict to 409. Anything else is a storage or
// internal failure and maps to a generic 500.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when required input is missing or malformed.
// It is always raised before any persistence attempt.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a uniqueness constraint (offer code,
// certificate id) is violated on create.
var ErrConflict = errors.New("conflict")

// Validationf wraps ErrValidation with a field-level message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// Conflictf wraps ErrConflict with detail.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// Detail strips the sentinel prefix for client-facing messages.
func Detail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrNotFound} {
		prefix := sentinel.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
