package appraisal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// bodyContext parses comments as body content, so leading whitespace and
// text outside any element are kept.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// StripHTML converts an HTML comment to plain text. Line break tags become
// newlines; all other markup is removed and entities are decoded.
func StripHTML(s string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(lineBreak.ReplaceAllString(s, "\n")), bodyContext)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML comment: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(goquery.NewDocumentFromNode(n).Text())
	}
	return b.String(), nil
}
