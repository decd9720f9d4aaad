package textutil

import (
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`https?://\S+`)
	// A whitespace run containing a newline becomes a single newline,
	// so stray indentation and blank-line padding around line breaks
	// disappear along with the breaks themselves.
	newlineRun = regexp.MustCompile(`\s*\n\s*`)
	spaceRun   = regexp.MustCompile(`[^\S\n]{2,}`)
)

// Normalize cleans a raw message body for storage: URLs and angle
// brackets are removed, whitespace runs are collapsed and the result is
// trimmed. Pure and idempotent; empty input yields empty output.
func Normalize(raw string) string {
	s := urlPattern.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	s = newlineRun.ReplaceAllString(s, "\n")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
