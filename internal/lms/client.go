// Package lms provides the HTTP client layer for the learning-management-system
// REST API used by uppraisal.
//
// The Client wraps the Resty HTTP client with LMS specific functionality:
//   - Authentication: every request carries a bearer token and a JSON content type
//   - Status handling: any non-2xx response becomes a *RemoteError carrying the
//     status code, the request URL and the raw body; it is never retried
//   - Logging: requests, responses and transport failures are logged at DEBUG
//     through the internal logging package
//
// SUPPORTED OPERATIONS:
//   - Batch grading: POST update_grades and poll the returned progress job
//   - Single submission grading: PUT one submission with grade and comment
//   - Submission listing: GET submissions, following RFC 5988 Link headers
//
// The client is safe for sequential use by the upload protocols. It performs no
// batching, polling or pacing of its own; that belongs to internal/appraisal.
package lms

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/logging"
	"github.com/cisglee/uppraisal/internal/validate"
	"github.com/cisglee/uppraisal/internal/version"
	"github.com/go-resty/resty/v2"
)

// Endpoint path templates, relative to the API root
const (
	submissionsPath  = "/courses/{courseId}/assignments/{assignmentId}/submissions"
	submissionPath   = submissionsPath + "/{userId}"
	updateGradesPath = submissionsPath + "/update_grades"
)

// Config holds the connection settings for a Client.
type Config struct {
	BaseURL string        // API root, e.g. https://canvas.example.edu/api/v1
	Token   string        // Bearer token
	Timeout time.Duration // Per-request timeout
	Retries int           // Retries on transport errors only; 0 disables

	// Logger receives Resty's internal log output. Nil keeps Resty's default.
	Logger resty.Logger
}

// Validate checks the connection settings before any request is attempted.
func (c Config) Validate() error {
	if _, err := validate.ParseBaseURL(c.BaseURL); err != nil {
		return err
	}
	if err := validate.ValidateRequiredString(c.Token, "access token"); err != nil {
		return err
	}
	if err := validate.ValidateNonNegativeDuration(c.Timeout, "timeout"); err != nil {
		return err
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	return nil
}

// Client communicates with the LMS REST API.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a new API client from cfg. The configuration is validated
// first so that a bad base URL or missing token fails before any I/O.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, _ := validate.ParseBaseURL(cfg.BaseURL)
	baseURL := base.String()

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = config.DefaultTimeout
	}

	client := resty.New()
	if cfg.Logger != nil {
		client.SetLogger(cfg.Logger)
	}

	client.
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", config.DefaultContentType).
		SetHeader("Content-Type", config.DefaultContentType).
		SetHeader("User-Agent", fmt.Sprintf("uppraise/%s", version.UppraiseVersion))

	// Only retry on connection errors, never on HTTP status codes
	client.
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Client{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the normalized API root the client sends requests to.
func (api *Client) BaseURL() string {
	return api.baseURL
}

// request starts a request bound to ctx with the course and assignment path
// parameters filled in.
func (api *Client) request(ctx context.Context, courseID, assignmentID int64) *resty.Request {
	return api.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"courseId":     strconv.FormatInt(courseID, 10),
			"assignmentId": strconv.FormatInt(assignmentID, 10),
		})
}

// check converts transport failures and non-2xx responses into errors.
func (api *Client) check(resp *resty.Response, err error, target string) error {
	if err != nil {
		return fmt.Errorf("failed to connect to LMS API at %s: %w", target, err)
	}
	if !resp.IsSuccess() {
		url := target
		if resp.Request != nil && resp.Request.URL != "" {
			url = resp.Request.URL
		}
		return &RemoteError{
			StatusCode: resp.StatusCode(),
			URL:        url,
			Body:       resp.String(),
		}
	}
	return nil
}
