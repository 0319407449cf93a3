package generator

import (
	"path"
	"strings"
)

// pageDepth is the directory depth of a generated page relative to the output
// root; link helpers use it to build the ../ prefix back to the root.
type pageDepth int

const (
	depthRoot    pageDepth = 0
	depthSection pageDepth = 1
)

func relPrefix(depth pageDepth) string {
	return strings.Repeat("../", int(depth))
}

// navLinks builds the top-navigation targets for a page at the given depth.
func navLinks(depth pageDepth, out outputLayout) map[string]string {
	prefix := relPrefix(depth)
	return map[string]string{
		"home":       prefix + "index.html",
		"categories": prefix + path.Join(out.Categories, "index.html"),
		"tags":       prefix + path.Join(out.Tags, "index.html"),
		"about":      prefix + path.Join(out.About, "index.html"),
	}
}

// outputLayout names the output subdirectories, normalized from configuration.
type outputLayout struct {
	Posts      string
	Categories string
	Tags       string
	About      string
	Assets     string
}

func (o outputLayout) postPage(identity string) string {
	return path.Join(o.Posts, identity+".html")
}

func (o outputLayout) categoryIndex() string {
	return path.Join(o.Categories, "index.html")
}

func (o outputLayout) categoryPage(slug string) string {
	return path.Join(o.Categories, slug+".html")
}

func (o outputLayout) tagIndex() string {
	return path.Join(o.Tags, "index.html")
}

func (o outputLayout) tagPage(slug string) string {
	return path.Join(o.Tags, slug+".html")
}

func (o outputLayout) aboutPage() string {
	return path.Join(o.About, "index.html")
}

func normalizeSegment(value, fallback string) string {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
