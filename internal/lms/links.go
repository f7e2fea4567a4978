package lms

import (
	"strings"

	"github.com/tomnomnom/linkheader"
)

// Links maps relation types ("current", "next", "last", ...) to URLs parsed
// from an RFC 5988 Link header.
type Links map[string]string

// ParseLinkHeader parses a header such as
//
//	<https://lms/api/v1/x?page=2>; rel="next", <https://lms/api/v1/x?page=5>; rel="last"
//
// Entries without a rel parameter are ignored. A parameter listing several
// relations (rel="next last") registers the URL under each of them.
func ParseLinkHeader(header string) Links {
	links := Links{}
	for _, link := range linkheader.Parse(header) {
		for _, rel := range strings.Fields(link.Rel) {
			links[strings.ToLower(rel)] = strings.TrimSpace(link.URL)
		}
	}
	return links
}

// Done reports whether a paged listing has reached its final page: there is
// no next page, or the current page is the last one.
func (l Links) Done() bool {
	if l["next"] == "" {
		return true
	}
	return l["current"] != "" && l["current"] == l["last"]
}
