package corpus

// Document is one source file's normalized state. Every field is populated by
// the metadata normalizer before a Document enters a Snapshot; downstream
// consumers never observe an absent or nil field.
type Document struct {
	// Identity is the stable key derived from the source filename stem. It is
	// unique across the corpus and used by facet views to reference back into
	// the snapshot.
	Identity string
	Title    string
	// Date and Updated hold YYYY-MM-DD strings, or "" when unset. The fixed
	// zero-padded width is what makes lexicographic comparison equivalent to
	// chronological comparison.
	Date     string
	Updated  string
	Category string
	Tags     []string
	Author   string
	Pinned   bool
	// Body is the raw markup source, owned exclusively by the Document.
	Body string
}

// Snapshot is an immutable ordered sequence of Documents produced once per
// build. It is read-only after construction and safe for concurrent reads.
type Snapshot struct {
	docs []*Document
}

// NewSnapshot builds a Snapshot from the supplied documents. The slice is
// copied so later mutation of the caller's slice cannot alter the snapshot.
func NewSnapshot(docs []*Document) *Snapshot {
	copied := make([]*Document, len(docs))
	copy(copied, docs)
	return &Snapshot{docs: copied}
}

// Len reports the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Documents returns the snapshot's documents in input order. The returned
// slice is a fresh copy; the referenced Documents are shared and read-only.
func (s *Snapshot) Documents() []*Document {
	if s == nil {
		return nil
	}
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// FacetBucket is one entry in a grouping view. Members hold non-owning
// references into the snapshot; a bucket never copies Document state.
type FacetBucket struct {
	Name    string
	Members []*Document
	Count   int
}
