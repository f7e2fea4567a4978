package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/cmd/uppraise/display"
	"github.com/cisglee/uppraisal/cmd/uppraise/utils"
	"github.com/cisglee/uppraisal/internal/appraisal"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/spf13/cobra"
)

// HandleUpload handles the upload command: it reads records from the workbook
// given as the first argument and uploads them in batch or single mode.
// The run report is written to --results even when the run fails halfway,
// so that completed batches are not lost.
func HandleUpload(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	path := args[0]
	records, err := appraisal.LoadRecords(path, config.Upload.Sheet, appraisal.Columns{
		Identifier: config.Upload.IDHeaders,
		Grade:      config.Upload.GradeHeader,
		Comment:    config.Upload.CommentHeader,
	})
	if err != nil {
		logging.Error("Failed to read records from %s: %v", path, err)
		return err
	}
	if len(records) == 0 {
		logging.Warn("No records found in %s", path)
		return fmt.Errorf("no records found in %s", path)
	}
	logging.Info("Read %d records from %s", len(records), path)

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	opts := uploadOptions()

	var report *appraisal.Report
	switch config.Upload.Mode {
	case config.ModeSingle:
		report, err = appraisal.NewSingleUploader(client, opts).
			Run(ctx, config.Upload.CourseID, config.Upload.AssignmentID, records)
	default:
		report, err = appraisal.NewBatchUploader(client, opts).
			Submit(ctx, config.Upload.CourseID, config.Upload.AssignmentID, records)
	}

	if report != nil && config.Upload.Results != "" {
		if saveErr := saveReport(config.Upload.Results, report); saveErr != nil {
			logging.Error("Failed to save results: %v", saveErr)
			if err == nil {
				err = saveErr
			}
		} else {
			logging.Info("Saved results to %s", config.Upload.Results)
		}
	}

	if err != nil {
		logging.Error("Upload failed: %v", err)
		return err
	}

	display.DisplayReport(report)

	if incomplete := report.Incomplete(); len(incomplete) > 0 {
		logging.Warn("%d of %d batches did not complete", len(incomplete), len(report.Batches))
	} else {
		logging.Success("Uploaded %d records", len(records))
	}
	return nil
}

func uploadOptions() appraisal.Options {
	return appraisal.Options{
		ChunkSize:        config.Upload.ChunkSize,
		PollInterval:     config.Upload.PollInterval,
		RecordDelay:      config.Upload.RecordDelay,
		MaxPolls:         config.Upload.MaxPolls,
		RejectDuplicates: config.Upload.RejectDuplicates,
		HTMLFormat:       config.Upload.HTML,
		OnProgress: func(p appraisal.BatchProgress) {
			switch {
			case config.Upload.Mode == config.ModeSingle:
				logging.Debug("Record %d/%d updated", p.Index+1, p.Total)
			case p.Polls == 0:
				logging.Info("Batch %d/%d submitted (%d records)", p.Index+1, p.Total, p.Size)
			default:
				logging.Info("Batch %d/%d poll %d: %s", p.Index+1, p.Total, p.Polls, p.State)
			}
		},
	}
}

func saveReport(path string, report *appraisal.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
