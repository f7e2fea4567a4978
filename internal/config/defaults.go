// Package config provides default configuration values shared across uppraisal
// components (LMS client, upload protocols, workbook reader, CLI). This
// centralizes the endpoint, timing and header defaults so that tests and the CLI
// can override them through explicit option structs.
package config

import "time"

const (
	// DefaultBaseURL is the LMS REST API root all endpoint paths are joined to
	DefaultBaseURL = "https://canvas.eur.nl/api/v1"

	// DefaultLogLevel is the default log level for the CLI
	DefaultLogLevel = "ERROR"

	// DefaultTimeout bounds a single HTTP request
	DefaultTimeout = 30 * time.Second

	// DefaultChunkSize is the maximum number of records per update_grades request
	DefaultChunkSize = 100

	// MaxChunkSize caps user supplied chunk sizes
	MaxChunkSize = 1000

	// DefaultPollInterval is the wait before every progress poll. Batch jobs
	// take minutes server side; polling faster only burns API quota.
	DefaultPollInterval = 30 * time.Second

	// DefaultRecordDelay is the pause after every single-record update
	DefaultRecordDelay = 20 * time.Millisecond

	// DefaultPerPage is the page size requested when listing submissions
	DefaultPerPage = 100
)

// Spreadsheet defaults
const (
	DefaultIDHeader        = "user_id"
	DefaultSISIDHeader     = "sis_user_id"
	DefaultGradeHeader     = "grade"
	DefaultCommentHeader   = "submission_comment"
	DefaultWorksheet       = "Sheet1"
	DefaultListOutPath     = "./assignment_data.xlsx"
	DefaultSortBy          = "user_sortable_name"
	DefaultEnvPrefix       = "UPPRAISAL"
	DefaultContentType     = "application/json"
	DefaultQueuedState     = "queued"
	DefaultCompletedState  = "completed"
	DefaultAttachmentJoin  = "; "
	DefaultUserFieldPrefix = "user_"
)

// DefaultIDHeaders lists identifier column candidates in resolution order.
func DefaultIDHeaders() []string {
	return []string{DefaultIDHeader, DefaultSISIDHeader}
}

// DefaultSelectColumns lists the submission fields kept by the listing command.
func DefaultSelectColumns() []string {
	return []string{
		"user_id",
		"user_sortable_name",
		"grade",
		"score",
		"submitted_at",
		"preview_url",
		"attachments",
	}
}
