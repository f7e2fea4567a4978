package appraisal

import (
	"fmt"
)

// ConfigurationError reports invalid uploader or listing options. It is
// always returned before any request is made.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Msg
}

// InvalidIdentifierError reports an identifier that is not a positive integer.
// Row is the 1-based sheet row when records were loaded from a workbook, or
// the 1-based record position otherwise.
type InvalidIdentifierError struct {
	Row   int
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("row %d: identifier %q is not a positive integer", e.Row, e.Value)
}

// DuplicateIdentifierError reports an identifier that occurs more than once
// within one batch while duplicate rejection is enabled.
type DuplicateIdentifierError struct {
	Batch      int
	Identifier int64
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("batch %d: identifier %d occurs more than once", e.Batch, e.Identifier)
}

// PollLimitError is returned when a job is still queued after the configured
// maximum number of polls.
type PollLimitError struct {
	URL   string
	Polls int
	State string
}

func (e *PollLimitError) Error() string {
	return fmt.Sprintf("job %s still %s after %d polls", e.URL, e.State, e.Polls)
}

// SortKeyWarning is a non-fatal listing problem: the requested sort key is
// not present in any record, so the original order is kept.
type SortKeyWarning struct {
	Key string
}

func (w *SortKeyWarning) Error() string {
	return fmt.Sprintf("the specified sort key %q was not found, keeping original order", w.Key)
}
