package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/zht7063/iblog/internal/corpus"
)

// DefaultTitle is the placeholder assigned when front matter carries no title.
const DefaultTitle = "Untitled"

// dateLayout is the fixed textual form stored for date fields. Downstream
// comparisons are lexicographic, which only works because the layout is
// zero-padded and fixed-width.
const dateLayout = "2006-01-02"

// Defaults carries the per-post fallback values resolved from configuration.
// SiteAuthor backs Author one level up: when the per-post default author is
// empty, the site-wide author is used instead.
type Defaults struct {
	Category   string
	Tags       []string
	Author     string
	SiteAuthor string
}

// author resolves the effective fallback author.
func (d Defaults) author() string {
	if d.Author != "" {
		return d.Author
	}
	return d.SiteAuthor
}

// Fields is the normalized metadata shape shared by every document. All seven
// values are always populated; no dynamic typing survives past Normalize.
type Fields struct {
	Title    string
	Date     string
	Updated  string
	Category string
	Tags     []string
	Author   string
	Pinned   bool
}

// Normalize converts raw front-matter fields into strictly typed metadata,
// applying deterministic defaults. Field rules are independent of each other;
// calling Normalize twice on identical input yields identical Fields.
func Normalize(raw map[string]any, defaults Defaults) Fields {
	return Fields{
		Title:    normalizeTitle(raw["title"]),
		Date:     normalizeDate(raw["date"]),
		Updated:  normalizeDate(raw["updated"]),
		Category: normalizeCategory(raw["category"], defaults.Category),
		Tags:     normalizeTags(raw, defaults.Tags),
		Author:   normalizeAuthor(raw["author"], defaults.author()),
		Pinned:   normalizePinned(raw["pinned"]),
	}
}

// BuildDocument assembles a corpus.Document from a source identity, raw
// front-matter fields, and body text.
func BuildDocument(identity string, raw map[string]any, body string, defaults Defaults) *corpus.Document {
	fields := Normalize(raw, defaults)
	return &corpus.Document{
		Identity: identity,
		Title:    fields.Title,
		Date:     fields.Date,
		Updated:  fields.Updated,
		Category: fields.Category,
		Tags:     fields.Tags,
		Author:   fields.Author,
		Pinned:   fields.Pinned,
		Body:     body,
	}
}

func normalizeTitle(value any) string {
	if value == nil {
		return DefaultTitle
	}
	return stringify(value)
}

func normalizeCategory(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	return stringify(value)
}

func normalizeAuthor(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	return stringify(value)
}

// normalizeTags accepts a list, a comma-separated string, or any scalar. The
// configured default is copied defensively so normalization can never mutate
// the caller's default slice.
func normalizeTags(raw map[string]any, defaultTags []string) []string {
	value, ok := raw["tags"]
	if !ok || value == nil {
		return append([]string(nil), defaultTags...)
	}

	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...)
	case []any:
		tags := make([]string, 0, len(typed))
		for _, item := range typed {
			tags = append(tags, stringify(item))
		}
		return tags
	case string:
		pieces := strings.Split(typed, ",")
		tags := make([]string, 0, len(pieces))
		for _, piece := range pieces {
			tags = append(tags, strings.TrimSpace(piece))
		}
		return tags
	default:
		return []string{stringify(value)}
	}
}

// normalizeDate stores structured timestamps in the fixed YYYY-MM-DD form and
// passes strings through untouched. Absent values become the empty sentinel.
func normalizeDate(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case time.Time:
		return typed.Format(dateLayout)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return typed.Format(dateLayout)
	default:
		return stringify(value)
	}
}

// falseStrings enumerates string literals coerced to false. Naive truthiness
// would turn "false" into true, which is never what a front-matter author
// meant.
var falseStrings = map[string]struct{}{
	"":      {},
	"false": {},
	"no":    {},
	"0":     {},
	"off":   {},
}

func normalizePinned(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		_, falsy := falseStrings[strings.ToLower(strings.TrimSpace(typed))]
		return !falsy
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case uint64:
		return typed != 0
	case float64:
		return typed != 0
	default:
		return true
	}
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
