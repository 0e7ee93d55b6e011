// Package wordsplit derives normalized word sets from models or query
// strings (the spec's WordSplitter, C2). The default implementation
// lowercases, optionally ASCII-folds via internal/fold, and matches a
// configurable subword pattern.
//
// The pipeline shape (tokenize -> lowercase -> normalize) mirrors the
// teacher's functional token pipeline in internal/services/fts/fts.go
// (Tokenize / ToLower / FilterStopWords / Stem over iter.Seq[string]);
// here there is no stop-word filtering or stemming (the spec's Non-goals
// rule both out), and tokenization is a single regexp pass rather than a
// hand-rolled scanner, since the spec pins the subword grammar to one
// configurable pattern instead of leaving it to tokenizer heuristics.
package wordsplit

import (
	"regexp"
	"strings"

	"prefixdex/internal/fold"
)

// DefaultPattern is the subword pattern the spec names as the default.
const DefaultPattern = `[a-z0-9]+`

// Splitter derives a set of normalized words from a value of type T.
type Splitter[T any] struct {
	project   func(T) (string, bool)
	pattern   *regexp.Regexp
	normalize bool
}

// Option configures a Splitter.
type Option func(*config)

type config struct {
	pattern   string
	normalize bool
}

// WithPattern overrides the default subword pattern.
func WithPattern(pattern string) Option {
	return func(c *config) { c.pattern = pattern }
}

// WithNormalizeUnicode toggles whole-string ASCII folding. It defaults to
// true, matching the spec's default.
func WithNormalizeUnicode(normalize bool) Option {
	return func(c *config) { c.normalize = normalize }
}

func newConfig(opts []Option) config {
	c := config{pattern: DefaultPattern, normalize: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// New builds a Splitter[T] with the given projection (model -> string) and
// options.
func New[T any](project func(T) (string, bool), opts ...Option) Splitter[T] {
	c := newConfig(opts)
	return Splitter[T]{
		project:   project,
		pattern:   regexp.MustCompile(c.pattern),
		normalize: c.normalize,
	}
}

// NewString builds a Splitter[string] whose projection is the identity
// function -- the shape used for splitting a query string.
func NewString(opts ...Option) Splitter[string] {
	return New(func(s string) (string, bool) { return s, true }, opts...)
}

// Split derives the normalized word set for v. It returns nil if the
// projection yields no string at all, and an empty (non-nil) set if the
// projected string contains no subword matches.
func (s Splitter[T]) Split(v T) map[string]struct{} {
	str, ok := s.project(v)
	if !ok {
		return nil
	}
	return s.SplitString(str)
}

// SplitString applies the splitter's normalization and pattern directly to
// a string, bypassing the projection. The query splitter is exercised
// through this path.
func (s Splitter[T]) SplitString(str string) map[string]struct{} {
	lower := strings.ToLower(str)
	if s.normalize {
		lower = fold.ASCII(lower)
	}
	matches := s.pattern.FindAllString(lower, -1)
	words := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		words[m] = struct{}{}
	}
	return words
}

// Pattern returns the compiled subword pattern, exposed so the highlighter
// can reuse the exact same word-start grammar.
func (s Splitter[T]) Pattern() *regexp.Regexp {
	return s.pattern
}

// NormalizeUnicode reports whether this splitter folds Unicode to ASCII.
func (s Splitter[T]) NormalizeUnicode() bool {
	return s.normalize
}
