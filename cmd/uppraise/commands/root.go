// Package commands provides the command tree implementation for uppraise.
//
// COMMAND STRUCTURE:
//   - upload: read grades and comments from a workbook and post them to an assignment
//   - list: fetch submitted work of an assignment and save it as a workbook
//
// Handlers are assigned in main so that this package only describes commands
// and flags.
package commands

import (
	"time"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "uppraise",
	Short: "Bulk upload grades and comments to an LMS assignment",
	Long: `uppraise reads grades and comments from an Excel workbook and uploads them
to a Canvas-style LMS assignment, either in batches tracked through the
server's job queue or one submission at a time.

The access token is taken from --token, UPPRAISAL_TOKEN (also read from a
.env file) or prompted for on the terminal.`,
	SilenceUsage: true,
	Example: `  # Upload grades in batches of 100
  uppraise upload grades.xlsx --course 1234 --assignment 5678

  # Comments are HTML, upload one submission at a time
  uppraise upload grades.xlsx --course 1234 --assignment 5678 --html --mode single

  # Keep a JSON record of the run
  uppraise upload grades.xlsx --course 1234 --assignment 5678 --results run.json

  # Save submitted work to a workbook, sorted by submission time
  uppraise list --course 1234 --assignment 5678 --sort-by submitted_at

  # Use another LMS instance
  uppraise --base-url https://canvas.example.edu/api/v1 list --course 1 --assignment 2

  # Output in JSON format
  uppraise -o json list --course 1234 --assignment 5678 --out ""`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(uploadCmd)
	RootCmd.AddCommand(listCmd)
}

// GlobalFlags holds pointers to the global flag destinations
type GlobalFlags struct {
	Token    *string
	BaseURL  *string
	EnvFile  *string
	LogLevel *string
	LogFile  *string
	Timeout  *time.Duration
	Retries  *int
	Verbose  *bool
	Output   *string
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, f GlobalFlags) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(f.Token, "token", "",
		"LMS access token (default: UPPRAISAL_TOKEN or prompt)")
	flags.StringVar(f.BaseURL, "base-url", config.DefaultBaseURL,
		"LMS API root (env UPPRAISAL_BASE_URL)")
	flags.StringVar(f.EnvFile, "env-file", "",
		"Load UPPRAISAL_* variables from this file (default: .env if present)")
	flags.StringVar(f.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(f.LogFile, "log-file", "",
		"Append logs to this file instead of the terminal")
	flags.DurationVar(f.Timeout, "timeout", config.DefaultTimeout,
		"Per-request timeout")
	flags.IntVar(f.Retries, "retries", 0,
		"Retries on connection errors (HTTP errors are never retried)")
	flags.BoolVarP(f.Verbose, "verbose", "v", false,
		"Show verbose output")
	flags.StringVarP(f.Output, "output", "o", "table",
		"Output format: table, json")
}
