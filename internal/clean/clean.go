// Package clean sanitizes raw catalog text before it reaches the splitter
// or the index, collapsing embedded newlines and dropping characters
// outside letters, numbers, punctuation, and spaces.
//
// Grounded on the teacher's internal/utils/clean/clean.go; the two regexps
// are compiled once at package init instead of on every call, since this
// runs once per catalog line at load time rather than once per matched
// search hit.
package clean

import (
	"regexp"
	"strings"
)

var (
	newlines     = regexp.MustCompile(`\n+`)
	notPrintable = regexp.MustCompile(`[^\p{L}\p{N}\p{P}\p{Z}]`)
)

// Title collapses newlines, strips characters that are neither letters,
// numbers, punctuation, nor spaces, and trims surrounding whitespace.
func Title(text string) string {
	text = newlines.ReplaceAllString(text, " ")
	text = notPrintable.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
