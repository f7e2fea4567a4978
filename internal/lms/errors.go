package lms

import (
	"errors"
	"fmt"
)

// RemoteError represents a non-2xx response from the LMS API. It carries the
// status code, the request URL and the raw response body verbatim. The
// operation that received it is aborted; nothing retries it.
type RemoteError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("got an error %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// IsRemoteError reports whether err wraps a *RemoteError and returns it.
func IsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// ErrMissingJobURL is returned when an update_grades response does not carry
// the progress URL needed to track the job.
var ErrMissingJobURL = errors.New("job descriptor has no progress url")
