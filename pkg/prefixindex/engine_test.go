package prefixindex

import (
	"context"
	"reflect"
	"testing"

	"prefixdex/internal/metrics"
	"prefixdex/internal/wordsplit"
)

// catalog mirrors the spec's worked scenario verbatim (1-indexed titles
// mapped to 0-indexed slice positions).
var catalog = []string{
	"Der Herr der Ringe - Die Gefährten / J. R. R. Tolkien",
	"Der Herr der Ringe - Die Zwei Türme / J. R. R. Tolkien",
	"Der Herr der Ringe - Die Rückkehr des Königs / J. R. R. Tolkien",
	"Der kleine Hobbit / J. R. R. Tolkien",
	"Zwei außer Rand und Band / Bud Spencer / Terence Hill",
	"Vier Fäuste für ein Halleluja / Bud Spencer / Terence Hill",
	"Buddy / Bully Herbig",
}

func buildCatalogIndex(t *testing.T) *Index[string] {
	t.Helper()
	splitter := wordsplit.NewString()
	idx := NewIndex[string](splitter)
	if err := idx.CreateIndex(context.Background(), catalog); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	return idx
}

func titlesOf(results []string) []string {
	out := make([]string, len(results))
	copy(out, results)
	return out
}

func TestEngineExactAndPrefixScenarios(t *testing.T) {
	idx := buildCatalogIndex(t)

	cases := []struct {
		query string
		exact bool
		want  []int // 1-indexed ids from the spec table
	}{
		{"ringe", true, []int{1, 2, 3}},
		{"TOLKIEN", true, []int{1, 2, 3, 4}},
		{"Turme", true, []int{2}},
		{"bud", false, []int{5, 6, 7}},
		{"GEFAHR", false, []int{1}},
		{"bud ter", false, []int{5, 6}},
		{"hobbit asdf", false, nil},
	}

	for _, c := range cases {
		var got []string
		if c.exact {
			got = idx.SearchExact(c.query)
		} else {
			got = idx.Search(c.query)
		}
		want := []string{}
		for _, id := range c.want {
			want = append(want, catalog[id-1])
		}
		if !reflect.DeepEqual(titlesOf(got), want) {
			t.Errorf("query %q (exact=%v): got %v, want ids %v", c.query, c.exact, got, c.want)
		}
	}
}

func TestEngineGetAllPreservesInsertionOrder(t *testing.T) {
	idx := buildCatalogIndex(t)
	var got []string
	for m := range idx.GetAll() {
		got = append(got, m)
	}
	if !reflect.DeepEqual(got, catalog) {
		t.Fatalf("GetAll() = %v, want %v", got, catalog)
	}
}

func TestEngineQueryNormalizationCaseAndDiacritic(t *testing.T) {
	idx := NewIndex[string](wordsplit.NewString())
	if err := idx.CreateIndex(context.Background(), []string{"John Doe"}); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	for _, q := range []string{"DOE", "doe", "dóe"} {
		got := idx.Search(q)
		if len(got) != 1 || got[0] != "John Doe" {
			t.Errorf("Search(%q) = %v, want [\"John Doe\"]", q, got)
		}
	}
}

func TestEngineSearchWithLimit(t *testing.T) {
	idx := buildCatalogIndex(t)
	got := idx.SearchWithLimit("tolkien", 2)
	if len(got) != 2 {
		t.Fatalf("len(SearchWithLimit) = %d, want 2", len(got))
	}
}

func TestEngineEmptyQueryMatchesAll(t *testing.T) {
	idx := buildCatalogIndex(t)
	got := idx.Search("")
	if !reflect.DeepEqual(got, catalog) {
		t.Fatalf("Search(\"\") = %v, want all models", got)
	}
}

func TestEngineHighlighting(t *testing.T) {
	idx := buildCatalogIndex(t)
	hs := idx.GetHighlighted("García Coruña", "garcia cöruná")
	var rebuilt string
	allHighlighted := true
	for _, s := range hs.Segments() {
		rebuilt += s.Text
		if s.Text != " " && !s.Highlighted {
			allHighlighted = false
		}
	}
	if rebuilt != "García Coruña" {
		t.Fatalf("segments do not round-trip: %q", rebuilt)
	}
	if !allHighlighted {
		t.Fatalf("expected both words highlighted")
	}
}

func TestEngineSnapshotIsolationDuringRebuild(t *testing.T) {
	idx := buildCatalogIndex(t)
	snapBefore := idx.Snapshot()

	if err := idx.CreateIndex(context.Background(), []string{"Only One"}); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	if !reflect.DeepEqual(snapBefore.Models, catalog) {
		t.Fatalf("prior snapshot's model list was mutated by rebuild")
	}
	if got := idx.Search("one"); len(got) != 1 || got[0] != "Only One" {
		t.Fatalf("Search(\"one\") after rebuild = %v, want [\"Only One\"]", got)
	}
}

func TestEngineRecordsBuildMetrics(t *testing.T) {
	build := &metrics.Build{}
	idx := NewIndex[string](wordsplit.NewString(), WithBuildMetrics[string](build))
	if err := idx.CreateIndex(context.Background(), catalog); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if build.TotalEntries() != len(catalog) {
		t.Fatalf("TotalEntries() = %d, want %d", build.TotalEntries(), len(catalog))
	}
}
