// Package display provides output formatting and display functions for uppraise.
//
// Upload reports and submission listings are printed either as aligned tables
// (text/tabwriter) or as indented JSON, following the global --output flag.
// Writers are injectable so handlers and tests can capture output.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/cisglee/uppraisal/cmd/uppraise/config"
	"github.com/cisglee/uppraisal/cmd/uppraise/utils"
	"github.com/cisglee/uppraisal/internal/appraisal"
	"github.com/cisglee/uppraisal/internal/logging"
	internalutils "github.com/cisglee/uppraisal/internal/utils"
	"github.com/dustin/go-humanize"
)

// Out is where all display functions write
var Out io.Writer = os.Stdout

// maxCellWidth bounds table cells so long comments do not wreck alignment
const maxCellWidth = 40

func encodeJSON(v any) {
	encoder := json.NewEncoder(Out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(Out, "Error encoding JSON output")
	}
}

// DisplayReport prints the result of an upload run.
func DisplayReport(report *appraisal.Report) {
	if config.Global.Output == config.OutputJSON {
		encodeJSON(report)
		return
	}

	fmt.Fprintf(Out, "Run %s: %s records uploaded in %s mode (%s)\n",
		internalutils.TruncateID(report.RunID),
		humanize.Comma(int64(report.Records)),
		report.Mode,
		utils.FormatDuration(report.Finished.Sub(report.Started)))
	if config.Global.Verbose {
		fmt.Fprintf(Out, "Course %d, assignment %d, started %s\n",
			report.CourseID, report.AssignmentID, humanize.Time(report.Started))
	}

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if report.Mode == config.ModeSingle {
		fmt.Fprintln(w, "USER\tSTATE\tGRADE")
		ids := slices.Sorted(maps.Keys(report.Submissions))
		for _, id := range ids {
			var body struct {
				WorkflowState string `json:"workflow_state"`
				Grade         any    `json:"grade"`
			}
			_ = json.Unmarshal(report.Submissions[id], &body)
			fmt.Fprintf(w, "%d\t%s\t%v\n", id, orDash(body.WorkflowState), orDash(body.Grade))
		}
		return
	}

	if config.Global.Verbose {
		fmt.Fprintln(w, "BATCH\tRECORDS\tSTATE\tPOLLS\tFIRST USER\tLAST USER")
	} else {
		fmt.Fprintln(w, "BATCH\tRECORDS\tSTATE\tPOLLS")
	}
	for _, b := range report.Batches {
		if config.Global.Verbose {
			var first, last int64
			if n := len(b.Identifiers); n > 0 {
				first, last = b.Identifiers[0], b.Identifiers[n-1]
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\t%d\n", b.Index+1, b.Size, b.WorkflowState, b.Polls, first, last)
		} else {
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\n", b.Index+1, b.Size, b.WorkflowState, b.Polls)
		}
	}
}

// DisplayListing prints a prepared submission listing.
func DisplayListing(listing *appraisal.Listing) {
	if config.Global.Output == config.OutputJSON {
		records := listing.Records
		if records == nil {
			records = []map[string]any{}
		}
		encodeJSON(records)
		return
	}

	if len(listing.Records) == 0 {
		fmt.Fprintln(Out, "No submitted work found")
		return
	}

	headers, rows := listing.Table()

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, utils.Truncate(cell(v), maxCellWidth))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	fmt.Fprintf(Out, "\n%s submissions\n", humanize.Comma(int64(len(rows))))
}

func cell(v any) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return humanize.Ftoa(v)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

func orDash(v any) any {
	if v == nil || v == "" {
		return "-"
	}
	return v
}
