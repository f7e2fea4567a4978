package handlers

import (
	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/cmd/uppraise/display"
	"github.com/cisglee/uppraisal/cmd/uppraise/utils"
	"github.com/cisglee/uppraisal/internal/appraisal"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/workbook"
	"github.com/spf13/cobra"
)

// HandleList handles the list command: it fetches every submitted entry of
// an assignment, prints it and writes it to the --out workbook.
func HandleList(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	opts := appraisal.ListOptions{
		SortBy:        config.List.SortBy,
		SelectColumns: config.List.Columns,
	}
	if config.List.AllColumns {
		opts.SelectColumns = nil
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := commandContext(cmd)
	defer stop()

	logging.Info("Listing submissions of course %d, assignment %d from %s",
		config.List.CourseID, config.List.AssignmentID, client.BaseURL())

	listing, err := appraisal.ListSubmissions(ctx, client, config.List.CourseID, config.List.AssignmentID, opts)
	if err != nil {
		logging.Error("Failed to list submissions: %v", err)
		return err
	}

	display.DisplayListing(listing)

	if config.List.Out != "" {
		headers, rows := listing.Table()
		if err := workbook.Write(config.List.Out, workbook.Sheet{Headers: headers, Rows: rows}); err != nil {
			logging.Error("Failed to write %s: %v", config.List.Out, err)
			return err
		}
		logging.Info("Wrote %d submissions to %s", len(rows), config.List.Out)
	}

	logging.Success("Retrieved %d submissions", len(listing.Records))
	return nil
}
