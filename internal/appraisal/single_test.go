package appraisal

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/cisglee/uppraisal/internal/lms"
	"github.com/cisglee/uppraisal/internal/lms/lmstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleUpload(t *testing.T) {
	srv := lmstest.NewServer(t)
	client, err := lms.NewClient(lms.Config{BaseURL: srv.BaseURL(), Token: "t"})
	require.NoError(t, err)

	s := &recordingSleep{}
	opts := testOptions(s)
	opts.HTMLFormat = true
	records := []Record{
		{Identifier: 5, Grade: "8", Comment: "line1<br>line2"},
		{Identifier: 6, Grade: "7", Comment: "ok"},
		{Identifier: 5, Grade: "9", Comment: "again"},
	}

	results, err := NewSingleUploader(client, opts).Submit(context.Background(), 1, 2, records)
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Contains(t, string(results[5]), `"grade":"9"`)
	assert.Equal(t, []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}, s.waits)

	calls := srv.SubmissionCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, "5", calls[0].UserID)
	assert.Equal(t, "line1\nline2", calls[0].Update.Comment.TextComment)
	assert.Equal(t, "8", calls[0].Update.Submission.PostedGrade)
}

func TestSingleUploadAbortsOnRemoteError(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.SubmissionStatus["2"] = http.StatusNotFound
	client, err := lms.NewClient(lms.Config{BaseURL: srv.BaseURL(), Token: "t"})
	require.NoError(t, err)

	results, err := NewSingleUploader(client, testOptions(&recordingSleep{})).
		Submit(context.Background(), 1, 2, makeRecords(3))

	re, ok := lms.IsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, srv.BaseURL()+"/courses/1/assignments/2/submissions/2", re.URL)
	assert.Len(t, results, 1)
	assert.Len(t, srv.SubmissionCalls(), 2)
}

type stubSubmissionAPI struct {
	calls int
}

func (s *stubSubmissionAPI) UpdateSubmission(context.Context, int64, int64, int64, lms.SubmissionUpdate) (json.RawMessage, error) {
	s.calls++
	return json.RawMessage(`{}`), nil
}

func TestSingleUploadValidationBeforeIO(t *testing.T) {
	api := &stubSubmissionAPI{}
	opts := testOptions(&recordingSleep{})
	opts.RecordDelay = -time.Millisecond

	_, err := NewSingleUploader(api, opts).Submit(context.Background(), 1, 2, makeRecords(2))
	assert.ErrorAs(t, err, new(*ConfigurationError))

	_, err = NewSingleUploader(api, testOptions(&recordingSleep{})).
		Submit(context.Background(), 1, 2, []Record{{Identifier: -1}})
	assert.ErrorAs(t, err, new(*InvalidIdentifierError))
	assert.Zero(t, api.calls)
}

func TestSingleRunReport(t *testing.T) {
	api := &stubSubmissionAPI{}
	report, err := NewSingleUploader(api, testOptions(&recordingSleep{})).
		Run(context.Background(), 3, 4, makeRecords(2))
	require.NoError(t, err)

	assert.Equal(t, "single", report.Mode)
	assert.Equal(t, int64(3), report.CourseID)
	assert.Len(t, report.Submissions, 2)
	assert.False(t, report.Finished.Before(report.Started))
}

func TestSingleUploadIgnoresChunkSize(t *testing.T) {
	srv := lmstest.NewServer(t)
	client, err := lms.NewClient(lms.Config{BaseURL: srv.BaseURL(), Token: "t"})
	require.NoError(t, err)

	for _, size := range []int{0, -1, 100000} {
		opts := testOptions(&recordingSleep{})
		opts.ChunkSize = size

		results, err := NewSingleUploader(client, opts).Submit(context.Background(), 1, 2, makeRecords(2))
		require.NoError(t, err, "chunk size %d", size)
		assert.Len(t, results, 2)
	}
	assert.Len(t, srv.SubmissionCalls(), 6)

	opts := testOptions(&recordingSleep{})
	opts.RecordDelay = -time.Second
	_, err = NewSingleUploader(client, opts).Submit(context.Background(), 1, 2, makeRecords(1))
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
