package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GradeEntry is the grade and comment posted for one user in a batch.
type GradeEntry struct {
	PostedGrade string `json:"posted_grade"`
	TextComment string `json:"text_comment"`
}

// GradeData maps a user identifier (as a decimal string) to its entry.
type GradeData map[string]GradeEntry

// UpdateGradesRequest is the body of an update_grades call.
type UpdateGradesRequest struct {
	GradeData GradeData `json:"grade_data"`
}

// SubmissionUpdate is the body of a single submission PUT.
type SubmissionUpdate struct {
	Comment    SubmissionComment `json:"comment"`
	Submission SubmissionGrade   `json:"submission"`
}

// SubmissionComment carries the text comment of a SubmissionUpdate.
type SubmissionComment struct {
	TextComment string `json:"text_comment"`
}

// SubmissionGrade carries the posted grade of a SubmissionUpdate.
type SubmissionGrade struct {
	PostedGrade string `json:"posted_grade"`
}

// Job is the server side progress object of an asynchronous batch update.
// Body holds the raw response it was decoded from so callers can keep the
// server's representation verbatim.
type Job struct {
	ID            int64    `json:"id"`
	URL           string   `json:"url"`
	WorkflowState string   `json:"workflow_state"`
	Completion    *float64 `json:"completion"`
	Message       string   `json:"message"`

	Body json.RawMessage `json:"-"`
}

func decodeJob(body []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return Job{}, fmt.Errorf("failed to decode job descriptor: %w", err)
	}
	job.Body = append(json.RawMessage(nil), body...)
	return job, nil
}

// UpdateGrades submits a batch of grades and comments for one assignment and
// returns the queued job descriptor. The descriptor must carry a progress URL.
func (api *Client) UpdateGrades(ctx context.Context, courseID, assignmentID int64, data GradeData) (Job, error) {
	target := api.baseURL + updateGradesPath

	resp, err := api.request(ctx, courseID, assignmentID).
		SetBody(UpdateGradesRequest{GradeData: data}).
		Post(updateGradesPath)
	if err := api.check(resp, err, target); err != nil {
		return Job{}, err
	}

	job, err := decodeJob(resp.Body())
	if err != nil {
		return Job{}, err
	}
	if job.URL == "" {
		return Job{}, ErrMissingJobURL
	}
	return job, nil
}

// GetProgress fetches the current state of a job from its progress URL.
func (api *Client) GetProgress(ctx context.Context, url string) (Job, error) {
	resp, err := api.client.R().
		SetContext(ctx).
		Get(url)
	if err := api.check(resp, err, url); err != nil {
		return Job{}, err
	}
	return decodeJob(resp.Body())
}

// UpdateSubmission grades and comments one user's submission synchronously and
// returns the raw response body.
func (api *Client) UpdateSubmission(ctx context.Context, courseID, assignmentID, userID int64, update SubmissionUpdate) (json.RawMessage, error) {
	target := api.baseURL + submissionPath

	resp, err := api.request(ctx, courseID, assignmentID).
		SetPathParam("userId", strconv.FormatInt(userID, 10)).
		SetBody(update).
		Put(submissionPath)
	if err := api.check(resp, err, target); err != nil {
		return nil, err
	}

	body := resp.Body()
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON in submission response from %s", resp.Request.URL)
	}
	return append(json.RawMessage(nil), body...), nil
}
