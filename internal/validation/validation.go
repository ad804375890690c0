// Package validation contains request validation for the API layer.
// Validators return an *Error carrying field-specific messages.
package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidEmail reports whether s looks like an email address. Deliberately
// loose; real verification happens by mailing the address, not here.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
