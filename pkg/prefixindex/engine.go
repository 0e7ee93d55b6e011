// Package prefixindex implements the PrefixIndex Engine (C4): an
// in-memory, atomically-swappable index over a user-supplied model
// collection, answering conjunctive prefix and exact multi-word queries
// and producing query-aware highlighting.
//
// The snapshot-swap concurrency shape is grounded on how the teacher's
// own fts.go/loader pair treat a freshly built index as an opaque unit
// handed off to readers (internal/services/fts, internal/services/loader)
// rather than mutated in place; here that discipline is made explicit
// through atomic.Pointer instead of the teacher's ad hoc rebuild-by-
// reassignment. Lazy result streams reuse the iter.Seq style the teacher
// establishes in internal/services/fts/fts.go's Tokenize/ToLower pipeline.
package prefixindex

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Zubayear/ryushin/set"
	"github.com/Zubayear/ryushin/treemap"

	"prefixdex/internal/highlight"
	"prefixdex/internal/metrics"
	"prefixdex/internal/trie"
	"prefixdex/internal/wordsplit"
	"prefixdex/internal/workers"
)

// IndexSnapshot is the immutable triple (model list, inverted word map,
// prefix trie) that represents one generation of the index. It is never
// mutated after publication.
type IndexSnapshot[M any] struct {
	Models   []M
	Inverted map[string]map[int]struct{}
	Trie     *trie.Trie[map[string]struct{}]
}

// Index owns the current IndexSnapshot through an atomically swappable
// reference, per the spec's concurrency model: rebuild constructs a fresh
// snapshot in isolation, then publishes it with a single atomic store.
type Index[M any] struct {
	dataSplitter  wordsplit.Splitter[M]
	querySplitter wordsplit.Splitter[string]
	highlighter   *highlight.Highlighter
	workerCount   int
	logger        *slog.Logger
	buildMetrics  *metrics.Build

	snapshot atomic.Pointer[IndexSnapshot[M]]
}

// Option configures an Index at construction time.
type Option[M any] func(*Index[M])

// WithQuerySplitter overrides the splitter used for query strings; it
// defaults to a string splitter mirroring the data splitter's pattern and
// normalization settings.
func WithQuerySplitter[M any](s wordsplit.Splitter[string]) Option[M] {
	return func(idx *Index[M]) { idx.querySplitter = s }
}

// WithHighlighter overrides the highlighter used by GetHighlighted /
// GetHighlightedHTML; it defaults to one driven by the query splitter's
// pattern so word-start boundaries agree between search and highlighting.
func WithHighlighter[M any](h *highlight.Highlighter) Option[M] {
	return func(idx *Index[M]) { idx.highlighter = h }
}

// WithWorkerCount overrides the build-time parallelism (default:
// runtime.NumCPU(), via internal/workers).
func WithWorkerCount[M any](n int) Option[M] {
	return func(idx *Index[M]) { idx.workerCount = n }
}

// WithLogger attaches a logger used for build diagnostics.
func WithLogger[M any](logger *slog.Logger) Option[M] {
	return func(idx *Index[M]) { idx.logger = logger }
}

// WithBuildMetrics attaches a metrics.Build that records each entry's
// split outcome and timing during CreateIndex, and is logged once the
// build completes (requires a logger via WithLogger to actually log).
func WithBuildMetrics[M any](b *metrics.Build) Option[M] {
	return func(idx *Index[M]) { idx.buildMetrics = b }
}

// NewIndex constructs an Index driven by dataSplitter. The default query
// splitter mirrors dataSplitter's subword pattern and Unicode-folding
// setting, and the default highlighter is driven by that same pattern, so
// data and query words are normalized identically.
func NewIndex[M any](dataSplitter wordsplit.Splitter[M], opts ...Option[M]) *Index[M] {
	idx := &Index[M]{
		dataSplitter: dataSplitter,
		querySplitter: wordsplit.NewString(
			wordsplit.WithPattern(dataSplitter.Pattern().String()),
			wordsplit.WithNormalizeUnicode(dataSplitter.NormalizeUnicode()),
		),
	}
	for _, opt := range opts {
		opt(idx)
	}
	if idx.highlighter == nil {
		idx.highlighter = highlight.NewHighlighter(idx.querySplitter.Pattern())
	}
	return idx
}

// CreateIndex builds a fresh snapshot from models and atomically publishes
// it, per the spec's build algorithm:
//  1. copy models into an id-ordered list;
//  2. derive each model's word set (parallelized across workers) and
//     populate the inverted word->model-id map;
//  3. collect the distinct full-word set and group every non-empty prefix
//     of every word to the set of full words bearing it;
//  4. insert prefix keys into a fresh trie in ascending-length, then
//     lexicographic order;
//  5. atomically swap the snapshot reference.
//
// No partial snapshot is ever published: the new snapshot is only stored
// once fully built, and a canceled context aborts before the swap.
func (idx *Index[M]) CreateIndex(ctx context.Context, models []M) error {
	modelList := make([]M, len(models))
	copy(modelList, models)

	wordSets := workers.Run(ctx, modelList, idx.workerCount, idx.logger, func(_ context.Context, m M) (map[string]struct{}, error) {
		start := time.Now()
		words := idx.dataSplitter.Split(m)
		if idx.buildMetrics != nil {
			idx.buildMetrics.RecordSplit(time.Since(start), nil)
		}
		return words, nil
	})
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("prefixindex: build canceled: %w", err)
	}

	inverted := make(map[string]map[int]struct{})
	distinct := set.NewUnorderedSet()
	for id, r := range wordSets {
		for w := range r.Value {
			distinct.Insert(w)
			if inverted[w] == nil {
				inverted[w] = make(map[int]struct{})
			}
			inverted[w][id] = struct{}{}
		}
	}

	// Group every non-empty prefix of every distinct word to the set of
	// words bearing it, keyed in a tree map by a composite sort key so
	// Keys() yields ascending-length-then-lexicographic order directly --
	// the order the spec prescribes for trie insertion, to keep
	// intermediate split cost predictable.
	prefixTree := treemap.NewTreeMap[string, map[string]struct{}]()
	for _, item := range distinct.Items() {
		w := item.(string)
		for i := 1; i <= len(w); i++ {
			p := w[:i]
			key := prefixSortKey(p)
			s, ok := prefixTree.Get(key)
			if !ok {
				s = make(map[string]struct{})
			}
			s[w] = struct{}{}
			prefixTree.Put(key, s)
		}
	}

	t := trie.New[map[string]struct{}]()
	for _, key := range prefixTree.Keys() {
		words, _ := prefixTree.Get(key)
		t.Insert(prefixFromSortKey(key), words)
	}

	idx.snapshot.Store(&IndexSnapshot[M]{Models: modelList, Inverted: inverted, Trie: t})
	if idx.buildMetrics != nil && idx.logger != nil {
		idx.buildMetrics.Log(idx.logger)
	}
	return nil
}

// Snapshot returns the current snapshot, or nil if CreateIndex has never
// run.
func (idx *Index[M]) Snapshot() *IndexSnapshot[M] {
	return idx.snapshot.Load()
}

// GetAll streams every model in insertion order.
func (idx *Index[M]) GetAll() iter.Seq[M] {
	return idx.SearchStream("")
}

// SearchStream answers a conjunctive prefix query lazily, in model
// insertion order.
func (idx *Index[M]) SearchStream(query string) iter.Seq[M] {
	return idx.searchStream(query, true)
}

// SearchExactStream answers a conjunctive exact-word query lazily,
// skipping the trie and consulting the inverted map directly.
func (idx *Index[M]) SearchExactStream(query string) iter.Seq[M] {
	return idx.searchStream(query, false)
}

func (idx *Index[M]) searchStream(query string, usePrefix bool) iter.Seq[M] {
	snap := idx.snapshot.Load()
	return func(yield func(M) bool) {
		if snap == nil {
			return
		}
		var queryWords map[string]struct{}
		if query != "" {
			queryWords = idx.querySplitter.SplitString(query)
		}
		if len(queryWords) == 0 {
			for _, m := range snap.Models {
				if !yield(m) {
					return
				}
			}
			return
		}

		var idSets []map[int]struct{}
		for q := range queryWords {
			idSets = append(idSets, queryWordIDs(snap, q, usePrefix))
		}
		ids := intersectIDs(idSets)
		if len(ids) == 0 {
			return
		}
		for i, m := range snap.Models {
			if _, ok := ids[i]; ok {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Search eagerly collects SearchStream(query).
func (idx *Index[M]) Search(query string) []M {
	return collect(idx.SearchStream(query), 0)
}

// SearchWithLimit eagerly collects SearchStream(query), stopping once
// maxSize results have been gathered (0 or negative means unbounded).
func (idx *Index[M]) SearchWithLimit(query string, maxSize int) []M {
	return collect(idx.SearchStream(query), maxSize)
}

// SearchExact eagerly collects SearchExactStream(query).
func (idx *Index[M]) SearchExact(query string) []M {
	return collect(idx.SearchExactStream(query), 0)
}

// GetHighlighted highlights value against query in text mode.
func (idx *Index[M]) GetHighlighted(value, query string) highlight.HighlightedString {
	return idx.highlighter.Highlight(value, idx.querySplitter.SplitString(query), highlight.Text)
}

// GetHighlightedHTML highlights value against query in HTML mode: a match
// is split at every simple tag inside it, so no highlighted run contains a
// tag.
func (idx *Index[M]) GetHighlightedHTML(value, query string) highlight.HighlightedString {
	return idx.highlighter.Highlight(value, idx.querySplitter.SplitString(query), highlight.HTML)
}

// prefixSortKey encodes a prefix so that ordinary string comparison
// yields ascending-length-then-lexicographic order: the zero-padded
// length sorts all shorter prefixes before longer ones, and the prefix
// itself (never containing '|', since words match [a-z0-9]+) breaks ties
// lexicographically.
func prefixSortKey(p string) string {
	return fmt.Sprintf("%08d|%s", len(p), p)
}

func prefixFromSortKey(key string) string {
	_, p, _ := strings.Cut(key, "|")
	return p
}

func collect[M any](seq iter.Seq[M], maxSize int) []M {
	var out []M
	for v := range seq {
		out = append(out, v)
		if maxSize > 0 && len(out) >= maxSize {
			break
		}
	}
	return out
}

func queryWordIDs[M any](snap *IndexSnapshot[M], word string, usePrefix bool) map[int]struct{} {
	ids := make(map[int]struct{})
	if !usePrefix {
		for id := range snap.Inverted[word] {
			ids[id] = struct{}{}
		}
		return ids
	}
	words, ok := snap.Trie.GetData(word)
	if !ok {
		return ids
	}
	for w := range words {
		for id := range snap.Inverted[w] {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// intersectIDs intersects id sets across query words; order is
// unobservable since intersection is commutative, so the first set seeds
// the result.
func intersectIDs(sets []map[int]struct{}) map[int]struct{} {
	if len(sets) == 0 {
		return nil
	}
	result := sets[0]
	for _, s := range sets[1:] {
		next := make(map[int]struct{}, len(result))
		for id := range result {
			if _, ok := s[id]; ok {
				next[id] = struct{}{}
			}
		}
		result = next
		if len(result) == 0 {
			break
		}
	}
	return result
}
