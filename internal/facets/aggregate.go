package facets

import (
	"sort"

	slug "github.com/goliatone/go-slug"

	"github.com/zht7063/iblog/internal/corpus"
)

// Display weight bounds for tag clouds. Buckets scale linearly between the
// minimum and maximum based on their share of the largest bucket.
const (
	minWeight     = 0.9
	weightRange   = 0.8
	neutralWeight = 1.2
)

// Summary is the aggregated view of one facet bucket handed to listing pages.
type Summary struct {
	Name string
	// Slug is the URL-safe form of Name used for facet page filenames.
	Slug  string
	Count int
	// Representative is the latest-dated member (lexicographic on the
	// published date; undated members sort lowest). Nil only for an empty
	// bucket, which grouping never produces.
	Representative *corpus.Document
	// DisplayWeight is populated for tag buckets only.
	DisplayWeight float64
}

// Aggregate derives per-bucket statistics and orders buckets by count
// descending. Ties retain bucket-insertion order (stable sort). When
// withWeights is set, each summary carries a display weight interpolated from
// its count relative to the largest bucket; when every bucket has the same
// effective maximum the weight is fixed at the neutral midpoint.
func Aggregate(buckets []corpus.FacetBucket, withWeights bool) []Summary {
	maxCount := 0
	for _, bucket := range buckets {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
	}

	summaries := make([]Summary, 0, len(buckets))
	for _, bucket := range buckets {
		summary := Summary{
			Name:           bucket.Name,
			Slug:           facetSlug(bucket.Name),
			Count:          bucket.Count,
			Representative: representative(bucket.Members),
		}
		if withWeights {
			summary.DisplayWeight = displayWeight(bucket.Count, maxCount)
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].Count > summaries[b].Count
	})

	return summaries
}

// representative picks the member with the maximum published date. The empty
// sentinel sorts lowest, so a bucket of undated documents still returns a
// deterministic member (the first one).
func representative(members []*corpus.Document) *corpus.Document {
	var latest *corpus.Document
	for _, member := range members {
		if latest == nil || member.Date > latest.Date {
			latest = member
		}
	}
	return latest
}

func displayWeight(count, maxCount int) float64 {
	if maxCount <= 1 {
		return neutralWeight
	}
	return minWeight + float64(count)/float64(maxCount)*weightRange
}

// facetSlug normalizes a facet name for use in output filenames. Names that
// normalize to nothing (e.g. entirely non-Latin) keep their original form so
// the page remains addressable.
func facetSlug(name string) string {
	normalized, err := slug.Normalize(name)
	if err != nil || normalized == "" {
		return name
	}
	return normalized
}
