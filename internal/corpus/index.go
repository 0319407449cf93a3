package corpus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownSortKey indicates a sort key outside date|updated|title.
	ErrUnknownSortKey = errors.New("corpus: unknown sort key")
	// ErrUnknownSortOrder indicates a sort order outside asc|desc.
	ErrUnknownSortOrder = errors.New("corpus: unknown sort order")
)

// SortKey selects the primary sort field for SortedBy.
type SortKey string

const (
	SortByDate    SortKey = "date"
	SortByUpdated SortKey = "updated"
	SortByTitle   SortKey = "title"
)

// SortOrder selects the sort direction for SortedBy.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey validates a configured sort key. Unknown values are fatal at
// startup; they are never silently defaulted.
func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(strings.TrimSpace(value)) {
	case SortByDate:
		return SortByDate, nil
	case SortByUpdated:
		return SortByUpdated, nil
	case SortByTitle:
		return SortByTitle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, value)
	}
}

// ParseSortOrder validates a configured sort direction.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.TrimSpace(value)) {
	case OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortOrder, value)
	}
}

// Index exposes sorting and grouping views over a Snapshot. It never mutates
// the snapshot; every view returns fresh slices holding shared Document refs.
type Index struct {
	snapshot *Snapshot
}

// NewIndex wraps the supplied snapshot.
func NewIndex(snapshot *Snapshot) *Index {
	return &Index{snapshot: snapshot}
}

// Snapshot returns the underlying snapshot.
func (i *Index) Snapshot() *Snapshot {
	return i.snapshot
}

// SortedBy returns the documents ordered by the configured key and direction.
// Sorting happens in two stable passes: pass one orders by the key, pass two
// re-sorts pinned documents to the front. The separation keeps the pinned
// tie-break rule independent of the key comparison; within each
// pinned/unpinned partition the pass-one order is fully preserved.
func (i *Index) SortedBy(key SortKey, order SortOrder, pinnedFirst bool) []*Document {
	docs := i.snapshot.Documents()

	sort.SliceStable(docs, func(a, b int) bool {
		left := sortValue(docs[a], key)
		right := sortValue(docs[b], key)
		if order == OrderDesc {
			return left > right
		}
		return left < right
	})

	if pinnedFirst {
		sort.SliceStable(docs, func(a, b int) bool {
			return docs[a].Pinned && !docs[b].Pinned
		})
	}

	return docs
}

// GroupByCategory buckets every document under exactly one category. Buckets
// appear in first-seen-category order. An empty corpus yields no buckets.
func (i *Index) GroupByCategory() []FacetBucket {
	var order []string
	members := map[string][]*Document{}

	for _, doc := range i.snapshot.Documents() {
		if _, seen := members[doc.Category]; !seen {
			order = append(order, doc.Category)
		}
		members[doc.Category] = append(members[doc.Category], doc)
	}

	return buildBuckets(order, members)
}

// GroupByTags buckets documents under each of their tags; a document with N
// distinct tags contributes to N buckets, and a document with no tags appears
// nowhere. Duplicate tags within a single document are collapsed so bucket
// counts reflect distinct contributing documents.
func (i *Index) GroupByTags() []FacetBucket {
	var order []string
	members := map[string][]*Document{}

	for _, doc := range i.snapshot.Documents() {
		seenInDoc := map[string]struct{}{}
		for _, tag := range doc.Tags {
			if _, dup := seenInDoc[tag]; dup {
				continue
			}
			seenInDoc[tag] = struct{}{}

			if _, seen := members[tag]; !seen {
				order = append(order, tag)
			}
			members[tag] = append(members[tag], doc)
		}
	}

	return buildBuckets(order, members)
}

func buildBuckets(order []string, members map[string][]*Document) []FacetBucket {
	buckets := make([]FacetBucket, 0, len(order))
	for _, name := range order {
		buckets = append(buckets, FacetBucket{
			Name:    name,
			Members: members[name],
			Count:   len(members[name]),
		})
	}
	return buckets
}

// sortValue resolves the comparison string for a document under the given
// key. The updated key falls back to the published date when unset so
// never-updated documents still sort chronologically.
func sortValue(doc *Document, key SortKey) string {
	switch key {
	case SortByUpdated:
		if doc.Updated == "" {
			return doc.Date
		}
		return doc.Updated
	case SortByTitle:
		return doc.Title
	default:
		return doc.Date
	}
}
