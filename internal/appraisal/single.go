package appraisal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/utils"
)

// SubmissionAPI is the part of the LMS client used by SingleUploader.
type SubmissionAPI interface {
	UpdateSubmission(ctx context.Context, courseID, assignmentID, userID int64, update lms.SubmissionUpdate) (json.RawMessage, error)
}

// SingleUploader updates one submission per request.
type SingleUploader struct {
	api  SubmissionAPI
	opts Options
}

// NewSingleUploader creates an uploader. ChunkSize is ignored, so options
// shared with a BatchUploader are accepted whatever their chunk size.
func NewSingleUploader(api SubmissionAPI, opts Options) *SingleUploader {
	opts.ChunkSize = 1
	return &SingleUploader{api: api, opts: opts}
}

// Submit sends one update per record and waits RecordDelay after each. The
// returned map is keyed by identifier; a repeated identifier keeps the last
// response. On error the map holds the responses received before it.
func (u *SingleUploader) Submit(ctx context.Context, courseID, assignmentID int64, records []Record) (map[int64]json.RawMessage, error) {
	if err := u.opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkIdentifiers(records); err != nil {
		return nil, err
	}

	updates := make([]lms.SubmissionUpdate, len(records))
	for i, r := range records {
		update, err := BuildSubmissionUpdate(r, u.opts.HTMLFormat)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		updates[i] = update
	}

	results := make(map[int64]json.RawMessage, len(records))
	for i, r := range records {
		body, err := u.api.UpdateSubmission(ctx, courseID, assignmentID, r.Identifier, updates[i])
		if err != nil {
			return results, fmt.Errorf("record %d (user %d): %w", i+1, r.Identifier, err)
		}
		results[r.Identifier] = body
		logging.Debug("Updated submission of user %d (%d/%d)", r.Identifier, i+1, len(records))

		u.opts.progress(BatchProgress{Index: i, Total: len(records), Size: 1, Done: true})

		if err := u.opts.sleep(ctx, u.opts.RecordDelay); err != nil {
			return results, err
		}
	}

	return results, nil
}

// Run wraps Submit in a Report.
func (u *SingleUploader) Run(ctx context.Context, courseID, assignmentID int64, records []Record) (*Report, error) {
	report := &Report{
		RunID:        utils.NewRunID(),
		Mode:         "single",
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Records:      len(records),
		Started:      time.Now(),
	}
	logging.Info("Upload run %s: %d records, one request each",
		logging.FormatRunID(report.RunID), len(records))

	results, err := u.Submit(ctx, courseID, assignmentID, records)
	report.Submissions = results
	report.Finished = time.Now()
	return report, err
}
