// Package utils provides utility functions for the uppraise CLI.
// This file contains logging setup and Resty logger integration utilities.
package utils

import (
	"os"
	"strings"

	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/internal/logging"
)

// RestyLogger implements resty.Logger interface and routes logs through structured logging
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (RestyLogger) Errorf(format string, v ...any) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (RestyLogger) Warnf(format string, v ...any) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (RestyLogger) Debugf(format string, v ...any) {
	logging.Debug(format, v...)
}

// SetupLogging configures CLI logging behavior based on environment and config.
// DEBUG=true restores full output. --verbose raises the level to at least INFO;
// at the default ERROR level everything else is suppressed. --log-file sends
// all log output to a file instead of the terminal.
func SetupLogging() {
	logging.RedirectStandardLog(logging.NewLevelWriter("DEBUG", "stdlog"))

	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}

	level := strings.ToUpper(config.Global.LogLevel)
	if config.Global.Verbose && (level == "ERROR" || level == "WARN") {
		level = "INFO"
	}

	if config.Global.LogFile != "" {
		f, err := os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			logging.SetOutput(f)
			logging.SetLevel(level)
			return
		}
		logging.Error("Failed to open log file %s: %v", config.Global.LogFile, err)
	}

	if level == "ERROR" {
		logging.SuppressOutput()
		return
	}
	logging.RestoreOutput()
	logging.SetLevel(level)
}
