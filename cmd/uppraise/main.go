// Package main provides the entry point for the uppraise CLI.
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Flag configuration for global and command-specific options
// 3. Handler and validation assignment
// 4. Command execution with a non-zero exit code on error
package main

import (
	"os"

	"github.com/cisglee/uppraisal/cmd/uppraise/commands"
	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/cmd/uppraise/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, commands.GlobalFlags{
		Token:    &config.Global.Token,
		BaseURL:  &config.Global.BaseURL,
		EnvFile:  &config.Global.EnvFile,
		LogLevel: &config.Global.LogLevel,
		LogFile:  &config.Global.LogFile,
		Timeout:  &config.Global.Timeout,
		Retries:  &config.Global.Retries,
		Verbose:  &config.Global.Verbose,
		Output:   &config.Global.Output,
	})

	commands.SetupUploadFlags(commands.GetUploadCommand(), commands.UploadFlags{
		CourseID:         &config.Upload.CourseID,
		AssignmentID:     &config.Upload.AssignmentID,
		Mode:             &config.Upload.Mode,
		HTML:             &config.Upload.HTML,
		Sheet:            &config.Upload.Sheet,
		IDHeaders:        &config.Upload.IDHeaders,
		GradeHeader:      &config.Upload.GradeHeader,
		CommentHeader:    &config.Upload.CommentHeader,
		ChunkSize:        &config.Upload.ChunkSize,
		PollInterval:     &config.Upload.PollInterval,
		RecordDelay:      &config.Upload.RecordDelay,
		MaxPolls:         &config.Upload.MaxPolls,
		RejectDuplicates: &config.Upload.RejectDuplicates,
		Results:          &config.Upload.Results,
	})

	commands.SetupListFlags(commands.GetListCommand(), commands.ListFlags{
		CourseID:     &config.List.CourseID,
		AssignmentID: &config.List.AssignmentID,
		SortBy:       &config.List.SortBy,
		Columns:      &config.List.Columns,
		AllColumns:   &config.List.AllColumns,
		Out:          &config.List.Out,
	})

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE and validation functions to commands
func setupCommandHandlers() {
	uploadCmd := commands.GetUploadCommand()
	uploadCmd.PreRunE = config.ValidateUploadFlags
	uploadCmd.RunE = handlers.HandleUpload

	listCmd := commands.GetListCommand()
	listCmd.PreRunE = config.ValidateListFlags
	listCmd.RunE = handlers.HandleList
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
