package lms_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/lms/lmstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

func newClient(t *testing.T, srv *lmstest.Server) *lms.Client {
	t.Helper()
	c, err := lms.NewClient(lms.Config{BaseURL: srv.BaseURL(), Token: testToken})
	require.NoError(t, err)
	return c
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  lms.Config
	}{
		{name: "missing token", cfg: lms.Config{BaseURL: "https://lms.test/api/v1"}},
		{name: "bad base url", cfg: lms.Config{BaseURL: "lms.test", Token: "x"}},
		{name: "negative retries", cfg: lms.Config{BaseURL: "https://lms.test/api/v1", Token: "x", Retries: -1}},
		{name: "negative timeout", cfg: lms.Config{BaseURL: "https://lms.test/api/v1", Token: "x", Timeout: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := lms.NewClient(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c, err := lms.NewClient(lms.Config{BaseURL: "https://lms.test/api/v1/", Token: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://lms.test/api/v1", c.BaseURL())
}

func TestUpdateGrades(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Token = testToken
	c := newClient(t, srv)

	data := lms.GradeData{
		"1": {PostedGrade: "A", TextComment: "hi"},
		"2": {PostedGrade: "B", TextComment: "bye"},
	}
	job, err := c.UpdateGrades(context.Background(), 10, 20, data)
	require.NoError(t, err)

	assert.Equal(t, "queued", job.WorkflowState)
	assert.True(t, strings.HasPrefix(job.URL, srv.URL+"/api/v1/progress/"), job.URL)
	assert.Contains(t, string(job.Body), `"workflow_state":"queued"`)

	calls := srv.GradeCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "10", calls[0].CourseID)
	assert.Equal(t, "20", calls[0].AssignmentID)
	assert.Equal(t, "Bearer "+testToken, calls[0].Authorization)
	assert.Equal(t, "application/json", calls[0].ContentType)
	assert.Equal(t, data, calls[0].Data)
}

func TestUpdateGradesRemoteError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv := lmstest.NewServer(t)
			srv.UpdateGradesStatus = status
			c := newClient(t, srv)

			_, err := c.UpdateGrades(context.Background(), 1, 2, lms.GradeData{"5": {PostedGrade: "7"}})
			require.Error(t, err)

			re, ok := lms.IsRemoteError(err)
			require.True(t, ok, "expected RemoteError, got %T", err)
			assert.Equal(t, status, re.StatusCode)
			assert.Equal(t, srv.BaseURL()+"/courses/1/assignments/2/submissions/update_grades", re.URL)
			assert.Contains(t, re.Body, "update rejected")
			assert.Contains(t, err.Error(), fmt.Sprintf("got an error %d from", status))
		})
	}
}

func TestUpdateGradesUnauthorized(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Token = "other-token"
	c := newClient(t, srv)

	_, err := c.UpdateGrades(context.Background(), 1, 2, lms.GradeData{})
	re, ok := lms.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	assert.Empty(t, srv.GradeCalls())
}

func TestUpdateGradesMissingJobURL(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.OmitJobURL = true
	c := newClient(t, srv)

	_, err := c.UpdateGrades(context.Background(), 1, 2, lms.GradeData{"1": {PostedGrade: "A"}})
	assert.True(t, errors.Is(err, lms.ErrMissingJobURL))
}

func TestGetProgress(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.JobStates = []string{"queued", "running", "completed"}
	c := newClient(t, srv)

	job, err := c.UpdateGrades(context.Background(), 1, 2, lms.GradeData{"1": {PostedGrade: "A"}})
	require.NoError(t, err)

	var states []string
	for range 3 {
		polled, err := c.GetProgress(context.Background(), job.URL)
		require.NoError(t, err)
		states = append(states, polled.WorkflowState)
	}
	assert.Equal(t, []string{"running", "completed", "completed"}, states)
	assert.Equal(t, 3, srv.PollCalls())
}

func TestGetProgressRemoteError(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.ProgressStatus = http.StatusInternalServerError
	c := newClient(t, srv)

	url := srv.BaseURL() + "/progress/1"
	_, err := c.GetProgress(context.Background(), url)
	re, ok := lms.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
	assert.Equal(t, url, re.URL)
}

func TestUpdateSubmission(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)

	update := lms.SubmissionUpdate{
		Comment:    lms.SubmissionComment{TextComment: "well done"},
		Submission: lms.SubmissionGrade{PostedGrade: "8.5"},
	}
	body, err := c.UpdateSubmission(context.Background(), 3, 4, 77, update)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"grade":"8.5"`)

	calls := srv.SubmissionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "77", calls[0].UserID)
	assert.Equal(t, update, calls[0].Update)
}

func TestUpdateSubmissionRemoteError(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.SubmissionStatus["77"] = http.StatusNotFound
	c := newClient(t, srv)

	_, err := c.UpdateSubmission(context.Background(), 3, 4, 77, lms.SubmissionUpdate{})
	re, ok := lms.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, srv.BaseURL()+"/courses/3/assignments/4/submissions/77", re.URL)
}

func TestTransportError(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)
	srv.Close()

	_, err := c.UpdateGrades(context.Background(), 1, 2, lms.GradeData{})
	require.Error(t, err)
	_, remote := lms.IsRemoteError(err)
	assert.False(t, remote)
	assert.Contains(t, err.Error(), "failed to connect to LMS API")
}

func TestListSubmissionsPaging(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.PerPage = 2
	for i := 1; i <= 5; i++ {
		srv.Submissions = append(srv.Submissions, map[string]any{
			"user_id":      1000000 + i,
			"submitted_at": "2024-01-01T10:00:00Z",
		})
	}
	c := newClient(t, srv)

	var pages []int
	items, err := c.ListSubmissions(context.Background(), 1, 2, func(page int, items []lms.Submission) error {
		pages = append(pages, len(items))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, pages)
	require.Len(t, items, 5)
	assert.Equal(t, 3, srv.ListCalls())
	assert.Equal(t, "1000001", fmt.Sprint(items[0]["user_id"]))
	assert.Equal(t, "1000005", fmt.Sprint(items[4]["user_id"]))
}

func TestListSubmissionsSinglePage(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Submissions = []map[string]any{{"user_id": 1}}
	c := newClient(t, srv)

	items, err := c.ListSubmissions(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, srv.ListCalls())
}

func TestListSubmissionsRemoteError(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.ListStatus = http.StatusForbidden
	c := newClient(t, srv)

	_, err := c.ListSubmissions(context.Background(), 1, 2, nil)
	re, ok := lms.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.True(t, strings.HasPrefix(re.URL, srv.BaseURL()+"/courses/1/assignments/2/submissions?"), re.URL)
}

func TestListSubmissionsPageCallbackError(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.PerPage = 1
	srv.Submissions = []map[string]any{{"user_id": 1}, {"user_id": 2}}
	c := newClient(t, srv)

	stop := errors.New("stop")
	_, err := c.ListSubmissions(context.Background(), 1, 2, func(int, []lms.Submission) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, srv.ListCalls())
}
