package logging

import (
	"fmt"
	"strings"
)

// ValidLogLevels is the set of level names accepted by SetLevel and the
// --log-level flag. Keys are uppercase.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel reports whether level names a supported level, ignoring case.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[strings.ToUpper(level)]
}

// ValidateLogLevel returns an error naming level if it is not supported.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s (must be one of DEBUG, INFO, WARN, ERROR)", level)
	}
	return nil
}
