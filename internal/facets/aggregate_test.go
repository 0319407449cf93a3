package facets

import (
	"math"
	"testing"

	"github.com/zht7063/iblog/internal/corpus"
)

func member(identity, date string) *corpus.Document {
	return &corpus.Document{Identity: identity, Title: identity, Date: date}
}

func bucket(name string, members ...*corpus.Document) corpus.FacetBucket {
	return corpus.FacetBucket{Name: name, Members: members, Count: len(members)}
}

func TestAggregateOrdersByCountDesc(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("small", member("a", "2024-01-01")),
		bucket("big", member("b", "2024-01-01"), member("c", "2024-02-01"), member("d", "2024-03-01")),
		bucket("medium", member("e", "2024-01-01"), member("f", "2024-02-01")),
	}, false)

	want := []string{"big", "medium", "small"}
	for i, summary := range summaries {
		if summary.Name != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], summary.Name)
		}
	}
}

func TestAggregateTiesKeepInsertionOrder(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("first", member("a", "2024-01-01")),
		bucket("second", member("b", "2024-01-01")),
		bucket("third", member("c", "2024-01-01")),
	}, false)

	want := []string{"first", "second", "third"}
	for i, summary := range summaries {
		if summary.Name != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], summary.Name)
		}
	}
}

func TestAggregateRepresentativeIsLatestDated(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("go", member("old", "2023-01-01"), member("new", "2025-01-01"), member("mid", "2024-01-01")),
	}, false)

	if summaries[0].Representative.Identity != "new" {
		t.Fatalf("expected latest member, got %q", summaries[0].Representative.Identity)
	}
}

func TestAggregateRepresentativeUndatedMembers(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("notes", member("first", ""), member("second", "")),
	}, false)

	// The empty date sorts lowest, so the first member wins deterministically.
	if summaries[0].Representative.Identity != "first" {
		t.Fatalf("expected first member, got %q", summaries[0].Representative.Identity)
	}
}

func TestAggregateRepresentativeMixedDates(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("mixed", member("undated", ""), member("dated", "2020-01-01")),
	}, false)

	if summaries[0].Representative.Identity != "dated" {
		t.Fatalf("any date beats the empty sentinel, got %q", summaries[0].Representative.Identity)
	}
}

func TestAggregateDisplayWeightScaling(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("big", member("a", ""), member("b", ""), member("c", ""), member("d", "")),
		bucket("half", member("e", ""), member("f", "")),
	}, true)

	if got := summaries[0].DisplayWeight; math.Abs(got-1.7) > 1e-9 {
		t.Fatalf("largest bucket: expected 1.7, got %v", got)
	}
	if got := summaries[1].DisplayWeight; math.Abs(got-1.3) > 1e-9 {
		t.Fatalf("half-size bucket: expected 1.3, got %v", got)
	}
}

func TestAggregateDisplayWeightNeutralWhenUniform(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("a", member("x", "")),
		bucket("b", member("y", "")),
	}, true)

	for _, summary := range summaries {
		if summary.DisplayWeight != neutralWeight {
			t.Fatalf("expected neutral weight for %q, got %v", summary.Name, summary.DisplayWeight)
		}
	}
}

func TestAggregateWithoutWeights(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("a", member("x", "")),
	}, false)

	if summaries[0].DisplayWeight != 0 {
		t.Fatalf("weights should be zero when disabled, got %v", summaries[0].DisplayWeight)
	}
}

func TestAggregateSlugs(t *testing.T) {
	summaries := Aggregate([]corpus.FacetBucket{
		bucket("Go Tips", member("a", "")),
	}, false)

	if summaries[0].Slug == "" {
		t.Fatalf("expected non-empty slug")
	}
	if summaries[0].Slug == summaries[0].Name {
		t.Fatalf("expected normalized slug, got raw name %q", summaries[0].Slug)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if got := Aggregate(nil, true); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}
