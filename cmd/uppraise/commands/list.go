package commands

import (
	"github.com/cisglee/uppraisal/internal/config"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List submitted work of an assignment",
	Long: `List every submission of an assignment that has been handed in.

Nested user fields are flattened to user_* columns and attachments are
reduced to their file names. The result is printed and saved as a workbook.`,
	Args: cobra.NoArgs,
	Example: `  uppraise list --course 1234 --assignment 5678
  uppraise list --course 1234 --assignment 5678 --all-columns --sort-by "" --out all.xlsx`,
}

// GetListCommand returns the list command for handler assignment
func GetListCommand() *cobra.Command {
	return listCmd
}

// ListFlags holds pointers to the list flag destinations
type ListFlags struct {
	CourseID     *int64
	AssignmentID *int64
	SortBy       *string
	Columns      *[]string
	AllColumns   *bool
	Out          *string
}

// SetupListFlags configures the list command flags
func SetupListFlags(cmd *cobra.Command, f ListFlags) {
	flags := cmd.Flags()
	flags.Int64Var(f.CourseID, "course", 0, "Course identifier")
	flags.Int64Var(f.AssignmentID, "assignment", 0, "Assignment identifier")
	flags.StringVar(f.SortBy, "sort-by", config.DefaultSortBy, "Column to sort by (empty keeps server order)")
	flags.StringSliceVar(f.Columns, "columns", config.DefaultSelectColumns(), "Columns to keep")
	flags.BoolVar(f.AllColumns, "all-columns", false, "Keep every submission field")
	flags.StringVar(f.Out, "out", config.DefaultListOutPath, "Workbook to write (empty to skip)")

	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("assignment")
}
