package prefixindex

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"prefixdex/internal/wordsplit"
)

func TestFilterViewComposesAsConjunction(t *testing.T) {
	idx := buildCatalogIndex(t)

	byTolkien := Filter[string](idx, func(s string) bool {
		return strings.Contains(s, "Tolkien")
	})
	var got []string
	for m := range byTolkien.SearchStream("ringe") {
		got = append(got, m)
	}
	want := []string{catalog[0], catalog[1], catalog[2]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filtered SearchStream = %v, want %v", got, want)
	}

	onlyHobbit := Filter[string](byTolkien, func(s string) bool {
		return strings.Contains(s, "Hobbit")
	})
	var none []string
	for m := range onlyHobbit.SearchStream("ringe") {
		none = append(none, m)
	}
	if len(none) != 0 {
		t.Fatalf("filtered SearchStream = %v, want empty", none)
	}
}

func TestFilterViewPreservesSnapshot(t *testing.T) {
	idx := buildCatalogIndex(t)
	snapBefore := idx.Snapshot()

	view := Filter[string](idx, func(string) bool { return true })
	var got []string
	for m := range view.GetAll() {
		got = append(got, m)
	}
	if !reflect.DeepEqual(got, catalog) {
		t.Fatalf("GetAll() through filter view = %v, want %v", got, catalog)
	}
	if idx.Snapshot() != snapBefore {
		t.Fatalf("filter view mutated the base index's snapshot pointer")
	}
}

func TestMapViewProjects(t *testing.T) {
	idx := buildCatalogIndex(t)
	lengths := Map[string, int](idx, func(s string) int { return len(s) })

	var got []int
	for n := range lengths.SearchExactStream("tolkien") {
		got = append(got, n)
	}
	var want []int
	for _, s := range []string{catalog[0], catalog[1], catalog[2], catalog[3]} {
		want = append(want, len(s))
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mapped SearchExactStream = %v, want %v", got, want)
	}
}

func TestMapViewGetAllProjectsEveryModel(t *testing.T) {
	idx := NewIndex[string](wordsplit.NewString())
	if err := idx.CreateIndex(context.Background(), catalog); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	upper := Map[string, string](idx, strings.ToUpper)
	var got []string
	for m := range upper.GetAll() {
		got = append(got, m)
	}
	if len(got) != len(catalog) || got[0] != strings.ToUpper(catalog[0]) {
		t.Fatalf("mapped GetAll = %v", got)
	}
}
