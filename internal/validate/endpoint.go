// Package validate provides input validation utilities for uppraisal, ensuring
// CLI flags and option structs are well formed before any spreadsheet is read
// or any request is sent.
//
// Implements validation using the go-playground/validator library.
//
// VALIDATION COVERAGE:
//   - Endpoints: LMS API root URLs (absolute http/https)
//   - Identifiers: course, assignment and user identifiers
//   - Worksheets: spreadsheet tab names
//   - Options: ranges, durations and enumerations of CLI flags
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ParseBaseURL parses and validates an LMS API root such as
// "https://canvas.example.edu/api/v1". Trailing slashes are removed so that
// endpoint paths can be appended directly.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	if err := ValidateField(raw, "url"); err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': must be an absolute URL", raw)
	}

	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL '%s': %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL '%s': scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL '%s': missing host", raw)
	}

	return u, nil
}

// ValidateField validates individual values against specified validation rules using
// the go-playground/validator library.
//
// Example: ValidateField(courseID, "required,min=1")
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}
