package config

import (
	"fmt"

	internalconfig "github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags validates all global flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if err := LoadEnvironment(cmd); err != nil {
		return err
	}

	if err := ValidateBaseURL(); err != nil {
		return err
	}

	if err := ValidateOutputFormat(); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	if err := validate.ValidateNonNegativeDuration(Global.Timeout, "timeout"); err != nil {
		return err
	}

	if err := validate.ValidateField(Global.Retries, "min=0,max=10"); err != nil {
		return fmt.Errorf("retries must be between 0 and 10")
	}

	return nil
}

// ValidateBaseURL validates the --base-url flag
func ValidateBaseURL() error {
	if _, err := validate.ParseBaseURL(Global.BaseURL); err != nil {
		logging.Error("Invalid base URL '%s': %v", Global.BaseURL, err)
		return fmt.Errorf("invalid base URL - expected e.g. https://canvas.example.edu/api/v1")
	}
	return nil
}

// ValidateOutputFormat validates the --output flag
func ValidateOutputFormat() error {
	if err := validate.ValidateOneOf(Global.Output, "output format", OutputTable, OutputJSON); err != nil {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}

// ValidateUploadFlags validates the upload command flags
func ValidateUploadFlags(cmd *cobra.Command, args []string) error {
	if err := validate.ValidateID(Upload.CourseID, "course"); err != nil {
		return err
	}
	if err := validate.ValidateID(Upload.AssignmentID, "assignment"); err != nil {
		return err
	}
	if err := validate.ValidateOneOf(Upload.Mode, "mode", ModeBatch, ModeSingle); err != nil {
		return err
	}
	if err := validate.SheetNameFormat(Upload.Sheet); err != nil {
		return err
	}
	if len(Upload.IDHeaders) == 0 {
		return fmt.Errorf("at least one identifier header is required")
	}
	if err := validate.ValidateRequiredString(Upload.GradeHeader, "grade header"); err != nil {
		return err
	}
	if err := validate.ValidateRequiredString(Upload.CommentHeader, "comment header"); err != nil {
		return err
	}
	if err := validate.ValidateRange(Upload.ChunkSize, 1, internalconfig.MaxChunkSize, "chunk size"); err != nil {
		return err
	}
	if err := validate.ValidateNonNegativeDuration(Upload.PollInterval, "poll interval"); err != nil {
		return err
	}
	if err := validate.ValidateNonNegativeDuration(Upload.RecordDelay, "record delay"); err != nil {
		return err
	}
	if Upload.MaxPolls < 0 {
		return fmt.Errorf("max polls cannot be negative, got %d", Upload.MaxPolls)
	}
	return nil
}

// ValidateListFlags validates the list command flags
func ValidateListFlags(cmd *cobra.Command, args []string) error {
	if err := validate.ValidateID(List.CourseID, "course"); err != nil {
		return err
	}
	if err := validate.ValidateID(List.AssignmentID, "assignment"); err != nil {
		return err
	}
	if List.AllColumns && cmd.Flags().Changed("columns") {
		return fmt.Errorf("--columns and --all-columns cannot be combined")
	}
	return nil
}
