// Package appraisal uploads grades and comments to an LMS assignment.
//
// Two protocols are provided. BatchUploader splits records into chunks, posts
// each chunk to update_grades and polls the returned job until the server no
// longer reports it as queued. SingleUploader updates one submission per
// request with a short pause after each. Both run strictly sequentially and
// stop at the first error; the work done until then is returned alongside it.
//
// A terminal job state other than "completed" is not treated as an error. It
// is logged and returned in the report for the caller to interpret.
package appraisal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/utils"
)

// GradeAPI is the part of the LMS client used by BatchUploader.
type GradeAPI interface {
	UpdateGrades(ctx context.Context, courseID, assignmentID int64, data lms.GradeData) (lms.Job, error)
	GetProgress(ctx context.Context, url string) (lms.Job, error)
}

// BatchResult is the outcome of one submitted batch.
type BatchResult struct {
	Index         int             `json:"index"`
	Size          int             `json:"size"`
	Identifiers   []int64         `json:"identifiers"`
	WorkflowState string          `json:"workflow_state"`
	Polls         int             `json:"polls"`
	Body          json.RawMessage `json:"body"`
}

// Report aggregates the results of one upload run.
type Report struct {
	RunID        string        `json:"run_id"`
	Mode         string        `json:"mode"`
	CourseID     int64         `json:"course_id"`
	AssignmentID int64         `json:"assignment_id"`
	Records      int           `json:"records"`
	Started      time.Time     `json:"started"`
	Finished     time.Time     `json:"finished"`
	Batches      []BatchResult `json:"batches,omitempty"`

	// Submissions holds the single-record responses keyed by identifier
	Submissions map[int64]json.RawMessage `json:"submissions,omitempty"`
}

// Bodies returns the final job body of every batch in submission order.
func (r *Report) Bodies() []json.RawMessage {
	bodies := make([]json.RawMessage, len(r.Batches))
	for i, b := range r.Batches {
		bodies[i] = b.Body
	}
	return bodies
}

// Incomplete returns the batches whose job ended in a state other than
// completed.
func (r *Report) Incomplete() []BatchResult {
	var out []BatchResult
	for _, b := range r.Batches {
		if b.WorkflowState != config.DefaultCompletedState {
			out = append(out, b)
		}
	}
	return out
}

// BatchUploader runs the batch upload protocol.
type BatchUploader struct {
	api  GradeAPI
	opts Options
}

// NewBatchUploader creates an uploader. A zero ChunkSize in opts selects the
// default chunk size.
func NewBatchUploader(api GradeAPI, opts Options) *BatchUploader {
	if opts.ChunkSize == 0 {
		opts.ChunkSize = config.DefaultChunkSize
	}
	return &BatchUploader{api: api, opts: opts}
}

type pendingBatch struct {
	records []Record
	data    lms.GradeData
}

// Submit uploads records in batches. Every payload is built and checked
// before the first request, so invalid identifiers, duplicate rejection and
// bad options fail without any network traffic. On error the report holds the
// batches that finished before it.
func (u *BatchUploader) Submit(ctx context.Context, courseID, assignmentID int64, records []Record) (*Report, error) {
	if err := u.opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkIdentifiers(records); err != nil {
		return nil, err
	}

	batches := make([]pendingBatch, 0, ChunkCount(len(records), u.opts.ChunkSize))
	for chunk := range Chunks(records, u.opts.ChunkSize) {
		data, err := BuildGradeData(len(batches)+1, chunk, u.opts.HTMLFormat, u.opts.RejectDuplicates)
		if err != nil {
			return nil, err
		}
		batches = append(batches, pendingBatch{records: chunk, data: data})
	}

	report := &Report{
		RunID:        utils.NewRunID(),
		Mode:         "batch",
		CourseID:     courseID,
		AssignmentID: assignmentID,
		Records:      len(records),
		Started:      time.Now(),
	}
	defer func() { report.Finished = time.Now() }()

	logging.Info("Upload run %s: %d records in %d batches of at most %d",
		logging.FormatRunID(report.RunID), len(records), len(batches), u.opts.ChunkSize)

	for i, b := range batches {
		result, err := u.submitBatch(ctx, courseID, assignmentID, i, len(batches), b)
		if err != nil {
			return report, fmt.Errorf("batch %d/%d: %w", i+1, len(batches), err)
		}
		report.Batches = append(report.Batches, result)
	}

	return report, nil
}

func (u *BatchUploader) submitBatch(ctx context.Context, courseID, assignmentID int64, index, total int, b pendingBatch) (BatchResult, error) {
	ids := make([]int64, len(b.records))
	for i, r := range b.records {
		ids[i] = r.Identifier
	}

	job, err := u.api.UpdateGrades(ctx, courseID, assignmentID, b.data)
	if err != nil {
		return BatchResult{}, err
	}
	logging.Debug("Batch %d/%d submitted, job %d at %s", index+1, total, job.ID, job.URL)

	// The submit response itself counts as queued
	pollURL := job.URL
	state := config.DefaultQueuedState
	polls := 0
	body := job.Body

	progress := BatchProgress{Index: index, Total: total, Size: len(b.records), State: state}
	u.opts.progress(progress)

	for state == config.DefaultQueuedState {
		if u.opts.MaxPolls > 0 && polls >= u.opts.MaxPolls {
			return BatchResult{}, &PollLimitError{URL: pollURL, Polls: polls, State: state}
		}
		if err := u.opts.sleep(ctx, u.opts.PollInterval); err != nil {
			return BatchResult{}, err
		}

		job, err = u.api.GetProgress(ctx, pollURL)
		if err != nil {
			return BatchResult{}, err
		}
		polls++
		state = job.WorkflowState
		body = job.Body
		logging.Debug("Batch %d/%d poll %d: %s", index+1, total, polls, state)

		progress.Polls = polls
		progress.State = state
		progress.Done = state != config.DefaultQueuedState
		u.opts.progress(progress)
	}

	if state == config.DefaultCompletedState {
		logging.Info("Batch %d/%d (%d records) completed", index+1, total, len(b.records))
	} else {
		logging.Warn("Batch %d/%d (%d records) ended in state %q", index+1, total, len(b.records), state)
	}

	return BatchResult{
		Index:         index,
		Size:          len(b.records),
		Identifiers:   ids,
		WorkflowState: state,
		Polls:         polls,
		Body:          body,
	}, nil
}
