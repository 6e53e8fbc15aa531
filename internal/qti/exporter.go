// Package qti generates IMS QTI packages (versions 1.2 and 2.1) from quiz
// collections. Both backends encode the same quiz model; they differ in the
// XML dialect and the scoring primitives that dialect offers.
package qti

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/quizmd/quizmd/internal/quiz"
)

type Version string

const (
	V12 Version = "1.2"
	V21 Version = "2.1"
)

// Exporter produces the three document kinds of a QTI content package.
// Items maps archive-relative paths (items/<quizIdentifier>.xml) to XML.
type Exporter interface {
	Version() Version
	Manifest() string
	Assessment() string
	Items() map[string]string
}

// New selects an export backend by version string. Unknown versions are a
// configuration error and fail the export call.
func New(version string, c quiz.Collection) (Exporter, error) {
	switch Version(version) {
	case V12:
		return &exporter12{collection: c}, nil
	case V21:
		return &exporter21{collection: c}, nil
	default:
		return nil, fmt.Errorf("unsupported QTI version %q (supported: 1.2, 2.1)", version)
	}
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func xmlEscape(text string) string { return xmlEscaper.Replace(text) }

// xmlContent protects a text field for embedding in generated XML. Fields
// holding rendered HTML must pass through verbatim (escaping would corrupt
// the markup the LMS displays), so tag-like text is wrapped in CDATA; plain
// text is entity-escaped.
func xmlContent(text string) string {
	if tagRe.MatchString(text) {
		return "<![CDATA[" + text + "]]>"
	}
	return xmlEscape(text)
}

func stripTags(text string) string { return tagRe.ReplaceAllString(text, "") }

// itemTitle derives the item title attribute: the first 50 characters of the
// tag-stripped question, escaped.
func itemTitle(question string) string {
	title := []rune(stripTags(question))
	if len(title) > 50 {
		title = title[:50]
	}
	return xmlEscape(string(title))
}
