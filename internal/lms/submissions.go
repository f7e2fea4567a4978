package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cisglee/uppraisal/internal/config"
	"github.com/cisglee/uppraisal/internal/logging"
)

// Submission is one raw submission object as returned by the listing endpoint.
// Numbers are kept as json.Number so that large identifiers survive intact.
type Submission map[string]any

// PageFunc is called with every page as it arrives. Returning an error stops
// the listing.
type PageFunc func(page int, items []Submission) error

// ListSubmissions fetches every submission of an assignment, following the
// "next" Link relation until the "current" page equals the "last" page. Each
// page is passed to fn when it is non-nil; all items are also returned.
func (api *Client) ListSubmissions(ctx context.Context, courseID, assignmentID int64, fn PageFunc) ([]Submission, error) {
	target := api.baseURL + submissionsPath

	resp, reqErr := api.request(ctx, courseID, assignmentID).
		SetQueryParams(map[string]string{
			"grouped":  "true",
			"per_page": strconv.Itoa(config.DefaultPerPage),
			"include":  "user",
		}).
		Get(submissionsPath)

	var all []Submission
	for page := 1; ; page++ {
		if err := api.check(resp, reqErr, target); err != nil {
			return nil, err
		}

		items, err := decodeSubmissions(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("page %d from %s: %w", page, resp.Request.URL, err)
		}
		logging.Debug("Fetched submissions page %d (%d items)", page, len(items))

		if fn != nil {
			if err := fn(page, items); err != nil {
				return nil, err
			}
		}
		all = append(all, items...)

		links := ParseLinkHeader(resp.Header().Get("Link"))
		if links.Done() {
			break
		}

		// The next link already carries the query parameters
		target = links["next"]
		resp, reqErr = api.client.R().
			SetContext(ctx).
			Get(target)
	}

	return all, nil
}

func decodeSubmissions(body []byte) ([]Submission, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var items []Submission
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return items, nil
}
