package appraisal

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/logging"
)

// SubmissionLister is the part of the LMS client used by ListSubmissions.
type SubmissionLister interface {
	ListSubmissions(ctx context.Context, courseID, assignmentID int64, fn lms.PageFunc) ([]lms.Submission, error)
}

// ListOptions controls post-processing of a submission listing.
type ListOptions struct {
	// SortBy is the field records are sorted on; empty keeps server order
	SortBy string

	// SelectColumns prunes records to these fields; empty keeps every field
	SelectColumns []string
}

// DefaultListOptions returns the standard sort key and column selection.
func DefaultListOptions() ListOptions {
	return ListOptions{
		SortBy:        config.DefaultSortBy,
		SelectColumns: config.DefaultSelectColumns(),
	}
}

// Validate checks that the sort key survives column pruning.
func (o ListOptions) Validate() error {
	if o.SortBy != "" && len(o.SelectColumns) > 0 && !slices.Contains(o.SelectColumns, o.SortBy) {
		return &ConfigurationError{Msg: fmt.Sprintf("sort column %q must be one of the selected columns", o.SortBy)}
	}
	return nil
}

// Listing is a flattened, filtered and sorted set of submissions.
type Listing struct {
	Records  []map[string]any
	Columns  []string
	Warnings []error
}

// ListSubmissions fetches every submission of an assignment and prepares it
// with opts. Options are validated before the first request.
func ListSubmissions(ctx context.Context, api SubmissionLister, courseID, assignmentID int64, opts ListOptions) (*Listing, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	raw, err := api.ListSubmissions(ctx, courseID, assignmentID, func(page int, items []lms.Submission) error {
		logging.Info("Fetched page %d with %d submissions", page, len(items))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return PrepareSubmissions(raw, opts)
}

// PrepareSubmissions drops unsubmitted entries, hoists nested user fields to
// user_* keys, joins attachment file names, prunes to the selected columns and
// sorts. A sort key missing from every record yields a *SortKeyWarning in
// Listing.Warnings and keeps the original order.
func PrepareSubmissions(raw []lms.Submission, opts ListOptions) (*Listing, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	listing := &Listing{}
	for _, item := range raw {
		if empty(item["submitted_at"]) {
			continue
		}
		listing.Records = append(listing.Records, flatten(item, opts.SelectColumns))
	}

	if opts.SortBy != "" && len(listing.Records) > 0 {
		found := slices.ContainsFunc(listing.Records, func(r map[string]any) bool {
			_, ok := r[opts.SortBy]
			return ok
		})
		if found {
			slices.SortStableFunc(listing.Records, func(a, b map[string]any) int {
				return compareValues(a[opts.SortBy], b[opts.SortBy])
			})
		} else {
			w := &SortKeyWarning{Key: opts.SortBy}
			logging.Warn("%v", w)
			listing.Warnings = append(listing.Warnings, w)
		}
	}

	if len(opts.SelectColumns) > 0 {
		listing.Columns = slices.Clone(opts.SelectColumns)
	} else {
		keys := map[string]bool{}
		for _, r := range listing.Records {
			for k := range r {
				keys[k] = true
			}
		}
		listing.Columns = slices.Sorted(maps.Keys(keys))
	}

	return listing, nil
}

// Table returns the listing as header names and rows of cell values ready to
// be written to a worksheet. Numbers stay numeric, nested values are JSON
// encoded and absent fields are empty.
func (l *Listing) Table() ([]string, [][]any) {
	rows := make([][]any, len(l.Records))
	for i, r := range l.Records {
		row := make([]any, len(l.Columns))
		for j, col := range l.Columns {
			row[j] = cellValue(r[col])
		}
		rows[i] = row
	}
	return slices.Clone(l.Columns), rows
}

func flatten(item lms.Submission, selected []string) map[string]any {
	out := make(map[string]any, len(item))
	for k, v := range item {
		switch k {
		case "user":
			if user, ok := v.(map[string]any); ok {
				for uk, uv := range user {
					out[config.DefaultUserFieldPrefix+uk] = uv
				}
				continue
			}
		case "attachments":
			v = joinAttachments(v)
		}
		out[k] = v
	}

	if len(selected) > 0 {
		for k := range out {
			if !slices.Contains(selected, k) {
				delete(out, k)
			}
		}
	}
	return out
}

func joinAttachments(v any) string {
	list, _ := v.([]any)
	names := make([]string, 0, len(list))
	for _, a := range list {
		if att, ok := a.(map[string]any); ok {
			if name, ok := att["filename"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return strings.Join(names, config.DefaultAttachmentJoin)
}

func empty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// compareValues orders numbers numerically and everything else by its
// string form. Absent values sort last.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	an, aok := number(a)
	bn, bok := number(b)
	if aok && bok {
		return cmp.Compare(an, bn)
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func cellValue(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	return v
}
