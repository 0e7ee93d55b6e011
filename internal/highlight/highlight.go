// Package highlight implements the subword highlighter (C3) and the
// immutable HighlightedString result value (C5).
//
// The alignment trick -- build a normalized, optionally tag-stripped view
// of a string alongside a position map back to the original bytes -- has
// no direct analogue in the teacher repo (dariasmyr-fts-engine never
// highlights results), so this package is grounded on the teacher's
// general approach to text transforms as small, composable pure functions
// over strings (internal/services/fts/fts.go's Tokenize/ToLower pipeline)
// rather than on a specific teacher file; the position-map algorithm
// itself follows the spec's own description of how expansion and
// tag-skipping must accumulate.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"prefixdex/internal/fold"
)

// Mode selects text or HTML-aware highlighting.
type Mode int

const (
	Text Mode = iota
	HTML
)

// simpleTagPattern recognizes only balanced, attribute-free, lowercase
// HTML tags, per the spec's HTML dialect.
var simpleTagPattern = regexp.MustCompile(`</?[a-z]+>`)

// Highlight is an interval within an original value to be rendered
// emphasized. Start and Length are in byte offsets of the original value.
type Highlight struct {
	Start  int
	Length int
}

// NewHighlight validates and constructs a Highlight. A negative start or a
// non-positive length is a programmer error and panics.
func NewHighlight(start, length int) Highlight {
	if start < 0 {
		panic("highlight: negative start")
	}
	if length <= 0 {
		panic("highlight: non-positive length")
	}
	return Highlight{Start: start, Length: length}
}

// HighlightSegment is one contiguous run of a HighlightedString's value,
// tagged as highlighted or not.
type HighlightSegment struct {
	Text        string
	Highlighted bool
}

// HighlightedString is an immutable original value plus a set of
// non-overlapping highlight intervals.
type HighlightedString struct {
	Value      string
	Highlights []Highlight
}

// New builds a HighlightedString, sorting highlights by ascending start
// (ties broken by descending length) as the spec requires.
func New(value string, highlights []Highlight) HighlightedString {
	sorted := make([]Highlight, len(highlights))
	copy(sorted, highlights)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Length > sorted[j].Length
	})
	return HighlightedString{Value: value, Highlights: sorted}
}

// Segments derives the ordered, disjoint segmentation of Value. Gaps
// before a highlight become non-highlighted segments; highlights fully
// before the walk cursor (overlap) are skipped; lengths are clipped to the
// value's end; zero-length results are dropped; a final non-highlighted
// tail is appended if anything remains. Adjacent segments are merged so
// that no two ever share the same highlight tag.
func (h HighlightedString) Segments() []HighlightSegment {
	if h.Value == "" {
		return nil
	}

	var segs []HighlightSegment
	append_ := func(text string, highlighted bool) {
		if text == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].Highlighted == highlighted {
			segs[n-1].Text += text
			return
		}
		segs = append(segs, HighlightSegment{Text: text, Highlighted: highlighted})
	}

	cursor := 0
	for _, hl := range h.Highlights {
		start, end := hl.Start, hl.Start+hl.Length
		if end <= cursor {
			continue
		}
		if start < cursor {
			start = cursor
		}
		if start > len(h.Value) {
			break
		}
		if end > len(h.Value) {
			end = len(h.Value)
		}
		if start >= end {
			continue
		}
		append_(h.Value[cursor:start], false)
		append_(h.Value[start:end], true)
		cursor = end
	}
	if cursor < len(h.Value) {
		append_(h.Value[cursor:], false)
	}
	if len(segs) == 0 {
		segs = append(segs, HighlightSegment{Text: h.Value, Highlighted: false})
	}
	return segs
}

// Highlighter produces HighlightedStrings for a value and a set of query
// words, using a caller-supplied subword pattern (normally the same
// pattern the search splitter uses, so word-start boundaries agree).
type Highlighter struct {
	pattern *regexp.Regexp
}

// NewHighlighter builds a Highlighter driven by pattern.
func NewHighlighter(pattern *regexp.Regexp) *Highlighter {
	return &Highlighter{pattern: pattern}
}

// Highlight returns the HighlightedString for value against queryWords, in
// the given mode. An absent/whitespace-only value or an empty query set
// degrades to the value with no highlights.
func (h *Highlighter) Highlight(value string, queryWords map[string]struct{}, mode Mode) HighlightedString {
	if strings.TrimSpace(value) == "" || len(queryWords) == 0 {
		return HighlightedString{Value: value}
	}

	words := sortedQueryWords(queryWords)
	valueNorm, posMap := buildNormalizedView(value, mode == HTML)

	var highlights []Highlight
	for _, m := range h.pattern.FindAllStringIndex(valueNorm, -1) {
		start := m[0]
		for _, qw := range words {
			if !strings.HasPrefix(valueNorm[start:], qw) {
				continue
			}
			end := start + len(qw)
			origStart, origEnd := posMap[start], posMap[end]
			if origEnd <= origStart {
				break
			}
			if mode == HTML {
				highlights = append(highlights, carveHTML(value, origStart, origEnd-origStart)...)
			} else {
				highlights = append(highlights, Highlight{Start: origStart, Length: origEnd - origStart})
			}
			break
		}
	}
	return New(value, highlights)
}

func sortedQueryWords(words map[string]struct{}) []string {
	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// buildNormalizedView returns value_norm (lowercased, ASCII-folded, and
// with simple HTML tags removed when htmlMode is set) alongside the
// position map translating normalized positions back to original byte
// offsets. The map has length len(value_norm)+1.
//
// Tags are recognized against the original (not lowercased) text, since
// the spec's simple-tag grammar requires lowercase tag names specifically
// -- an uppercase tag is literal text, not markup, so detecting it after
// lowercasing would wrongly recognize it.
func buildNormalizedView(value string, htmlMode bool) (string, []int) {
	var tagSpans [][2]int
	if htmlMode {
		tagSpans = simpleTagPattern.FindAllStringIndex(value, -1)
	}

	var norm strings.Builder
	norm.Grow(len(value))
	posMap := make([]int, 1, len(value)+1)

	spanIdx, i := 0, 0
	for i < len(value) {
		if spanIdx < len(tagSpans) && tagSpans[spanIdx][0] == i {
			i = tagSpans[spanIdx][1]
			spanIdx++
			posMap[len(posMap)-1] = i
			continue
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		folded := fold.Rune(unicode.ToLower(r))
		next := i + size
		if len(folded) == 0 {
			posMap[len(posMap)-1] = next
		}
		for _, fr := range folded {
			norm.WriteRune(fr)
			posMap = append(posMap, next)
		}
		i = next
	}
	return norm.String(), posMap
}

// carveHTML subdivides the original[start:start+length) span by the
// simple-tag pattern: tag spans are excluded, and the runs between them
// become separate highlights, so a highlighted run never contains a tag.
func carveHTML(value string, start, length int) []Highlight {
	sub := value[start : start+length]
	tagIdx := simpleTagPattern.FindAllStringIndex(sub, -1)

	var out []Highlight
	cursor := 0
	for _, m := range tagIdx {
		if m[0] > cursor {
			out = append(out, Highlight{Start: start + cursor, Length: m[0] - cursor})
		}
		cursor = m[1]
	}
	if cursor < len(sub) {
		out = append(out, Highlight{Start: start + cursor, Length: len(sub) - cursor})
	}
	return out
}
