package toc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// fallbackSlug is assigned when a heading's text normalizes to nothing.
const fallbackSlug = "heading"

// HeadingEntry is one table-of-contents row for a rendered document.
type HeadingEntry struct {
	Level    int
	Text     string
	AnchorID string
}

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_]+`)
)

// Extract walks the rendered markup once, collecting h1-h6 headings in
// document order and returning the markup with a unique anchor ID injected
// into each collected heading. Anchor collisions are resolved with a registry
// scoped to this single call, so heading IDs never leak between documents.
//
// Injection consumes headings positionally: each physical heading occurrence
// receives exactly one substitution, so duplicate-titled headings get distinct
// IDs rather than all matching the first. Malformed markup degrades
// gracefully; a heading missing its closing tag is copied through untouched
// and emits no entry.
func Extract(markup string) ([]HeadingEntry, string) {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	registry := map[string]int{}

	var entries []HeadingEntry
	var out strings.Builder
	out.Grow(len(markup))

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}

		raw := string(tokenizer.Raw())

		if tokenType == html.StartTagToken {
			token := tokenizer.Token()
			if level, ok := headingLevel(token.Data); ok {
				entry, segment, emitted := consumeHeading(tokenizer, token, raw, level, registry)
				out.WriteString(segment)
				if emitted {
					entries = append(entries, entry)
				}
				continue
			}
		}

		out.WriteString(raw)
	}

	return entries, out.String()
}

// consumeHeading buffers tokens from a heading start tag to its matching end
// tag, accumulating inner text while nested markup passes through unchanged.
// Reaching end of input before the closing tag returns the buffered segment
// as-is with no entry.
func consumeHeading(tokenizer *html.Tokenizer, start html.Token, startRaw string, level int, registry map[string]int) (HeadingEntry, string, bool) {
	var inner strings.Builder
	var text strings.Builder
	closed := false

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}

		raw := string(tokenizer.Raw())

		if tokenType == html.EndTagToken {
			name, _ := tokenizer.TagName()
			if string(name) == start.Data {
				closed = true
				break
			}
		}
		if tokenType == html.TextToken {
			text.WriteString(string(tokenizer.Text()))
		}
		inner.WriteString(raw)
	}

	if !closed {
		return HeadingEntry{}, startRaw + inner.String(), false
	}

	trimmed := strings.TrimSpace(text.String())
	closing := fmt.Sprintf("</%s>", start.Data)
	if trimmed == "" {
		return HeadingEntry{}, startRaw + inner.String() + closing, false
	}

	anchor := anchorID(registry, Slugify(trimmed))
	entry := HeadingEntry{Level: level, Text: trimmed, AnchorID: anchor}
	return entry, openTagWithID(start, anchor) + inner.String() + closing, true
}

// openTagWithID rebuilds a heading start tag with the computed anchor as its
// id attribute, replacing any id already present.
func openTagWithID(start html.Token, anchor string) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(start.Data)
	b.WriteString(` id="`)
	b.WriteString(html.EscapeString(anchor))
	b.WriteByte('"')
	for _, attr := range start.Attr {
		if attr.Key == "id" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// Slugify derives an anchor-safe base slug: lowercase, keep letters, digits,
// underscores, hyphens, and spaces, collapse whitespace/underscore runs into a
// single hyphen, and trim hyphens at both ends.
func Slugify(text string) string {
	base := strings.ToLower(text)
	base = slugStrip.ReplaceAllString(base, "")
	base = slugCollapse.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return fallbackSlug
	}
	return base
}

// anchorID resolves collisions against the per-call registry. The first
// occurrence of a slug keeps the bare slug; the Nth repeat gets -N appended,
// counting from the second physical occurrence.
func anchorID(registry map[string]int, base string) string {
	count, seen := registry[base]
	if !seen {
		registry[base] = 0
		return base
	}
	registry[base] = count + 1
	return fmt.Sprintf("%s-%d", base, count+1)
}

func headingLevel(tag string) (int, bool) {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0, false
	}
	if tag[1] < '1' || tag[1] > '6' {
		return 0, false
	}
	return int(tag[1] - '0'), true
}
