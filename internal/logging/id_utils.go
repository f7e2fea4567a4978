// Package logging provides ID formatting utilities for consistent ID display
// across all logging contexts.
//
// Debug logs carry full run IDs for traceability; info, warn, error and success
// logs use the truncated form for readability.
package logging

import (
	"github.com/charmbracelet/log"
	"github.com/cisglee/uppraisal/internal/utils"
)

// FormatID formats an ID for logging based on the current log level context.
func FormatID(id string) string {
	// Debug messages go to stderr, so the stderr logger decides
	if stderrLogger.GetLevel() <= log.DebugLevel {
		return id
	}
	return utils.TruncateID(id)
}

// FormatRunID formats an upload or listing run ID.
//
// Usage: logging.Info("Starting upload run %s", logging.FormatRunID(runID))
func FormatRunID(runID string) string {
	return FormatID(runID)
}
