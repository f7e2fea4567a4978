package commands

import (
	"time"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload grades and comments from a workbook",
	Long: `Upload grades and comments from an Excel workbook to an assignment.

Each row needs an identifier column (user_id or sis_user_id by default), a
grade column and a comment column. In batch mode rows are sent in chunks and
every chunk is polled until the LMS has processed it; a chunk that ends in a
state other than "completed" is reported but does not stop the run. In single
mode every row is a separate request.`,
	Args: cobra.ExactArgs(1),
	Example: `  uppraise upload grades.xlsx --course 1234 --assignment 5678
  uppraise upload grades.xlsx --course 1234 --assignment 5678 --sheet Week3 --grade-header points`,
}

// GetUploadCommand returns the upload command for handler assignment
func GetUploadCommand() *cobra.Command {
	return uploadCmd
}

// UploadFlags holds pointers to the upload flag destinations
type UploadFlags struct {
	CourseID         *int64
	AssignmentID     *int64
	Mode             *string
	HTML             *bool
	Sheet            *string
	IDHeaders        *[]string
	GradeHeader      *string
	CommentHeader    *string
	ChunkSize        *int
	PollInterval     *time.Duration
	RecordDelay      *time.Duration
	MaxPolls         *int
	RejectDuplicates *bool
	Results          *string
}

// SetupUploadFlags configures the upload command flags
func SetupUploadFlags(cmd *cobra.Command, f UploadFlags) {
	flags := cmd.Flags()
	flags.Int64Var(f.CourseID, "course", 0, "Course identifier")
	flags.Int64Var(f.AssignmentID, "assignment", 0, "Assignment identifier")
	flags.StringVar(f.Mode, "mode", "batch", "Upload mode: batch, single")
	flags.BoolVar(f.HTML, "html", false, "Comments are HTML; convert them to plain text")
	flags.StringVar(f.Sheet, "sheet", config.DefaultWorksheet, "Worksheet to read")
	flags.StringSliceVar(f.IDHeaders, "id-header", config.DefaultIDHeaders(),
		"Identifier column candidates, first match wins")
	flags.StringVar(f.GradeHeader, "grade-header", config.DefaultGradeHeader, "Grade column")
	flags.StringVar(f.CommentHeader, "comment-header", config.DefaultCommentHeader, "Comment column")
	flags.IntVar(f.ChunkSize, "chunk-size", config.DefaultChunkSize, "Records per batch request")
	flags.DurationVar(f.PollInterval, "poll-interval", config.DefaultPollInterval, "Wait before every job status poll")
	flags.DurationVar(f.RecordDelay, "record-delay", config.DefaultRecordDelay, "Wait after every single-mode request")
	flags.IntVar(f.MaxPolls, "max-polls", 0, "Give up on a job after this many polls (0 = no limit)")
	flags.BoolVar(f.RejectDuplicates, "reject-duplicates", false,
		"Fail when an identifier occurs twice in one batch instead of keeping the last row")
	flags.StringVar(f.Results, "results", "", "Write the run report as JSON to this file")

	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("assignment")
}
