// Package config provides configuration management for the uppraise CLI.
package config

import (
	"time"

	"github.com/cisglee/uppraisal/internal/version"
)

// Version returns the current uppraise CLI version from the centralized version package
var Version = version.UppraiseVersion

// Output formats accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Upload modes accepted by --mode
const (
	ModeBatch  = "batch"
	ModeSingle = "single"
)

// Global holds the global CLI configuration
var Global struct {
	Token    string        // LMS access token
	BaseURL  string        // LMS API root
	EnvFile  string        // Optional .env file with UPPRAISAL_* variables
	LogLevel string        // Log level for CLI operations
	LogFile  string        // Write logs to this file instead of the terminal
	Timeout  time.Duration // Per-request timeout
	Retries  int           // Retries on connection errors
	Verbose  bool          // Show verbose output
	Output   string        // Output format: table, json
}

// Upload holds the upload command configuration
var Upload struct {
	CourseID         int64
	AssignmentID     int64
	Mode             string // batch or single
	HTML             bool   // Comments are HTML and are converted to text
	Sheet            string
	IDHeaders        []string // Identifier column candidates, first match wins
	GradeHeader      string
	CommentHeader    string
	ChunkSize        int
	PollInterval     time.Duration
	RecordDelay      time.Duration
	MaxPolls         int
	RejectDuplicates bool
	Results          string // Write the run report as JSON to this file
}

// List holds the list command configuration
var List struct {
	CourseID     int64
	AssignmentID int64
	SortBy       string
	Columns      []string
	AllColumns   bool   // Keep every submission field
	Out          string // Workbook path; empty disables writing
}
