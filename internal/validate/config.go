package validate

import (
	"fmt"
	"strings"
	"time"
)

// ValidateID validates that a course, assignment or user identifier is positive.
func ValidateID(id int64, name string) error {
	if err := ValidateField(id, "required,min=1"); err != nil {
		return fmt.Errorf("%s must be a positive integer, got %d", name, id)
	}
	return nil
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(strings.TrimSpace(value), "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is not negative.
// Zero is allowed and disables the wait.
func ValidateNonNegativeDuration(d time.Duration, name string) error {
	if d < 0 {
		return fmt.Errorf("%s cannot be negative", name)
	}
	return nil
}

// ValidateRange validates that an integer setting lies within [min, max].
func ValidateRange(value, min, max int, name string) error {
	if err := ValidateField(value, fmt.Sprintf("min=%d,max=%d", min, max)); err != nil {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}
	return nil
}

// ValidateOneOf validates that value is one of the allowed choices.
func ValidateOneOf(value, name string, allowed ...string) error {
	if err := ValidateField(value, "oneof="+strings.Join(allowed, " ")); err != nil {
		return fmt.Errorf("invalid %s '%s' - valid: %s", name, value, strings.Join(allowed, ", "))
	}
	return nil
}
