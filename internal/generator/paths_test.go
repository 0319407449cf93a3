package generator

import "testing"

func TestNavLinksDepth(t *testing.T) {
	out := outputLayout{Posts: "blogs", Categories: "categories", Tags: "tags", About: "about"}

	root := navLinks(depthRoot, out)
	if root["home"] != "index.html" || root["categories"] != "categories/index.html" {
		t.Fatalf("unexpected root links: %v", root)
	}

	section := navLinks(depthSection, out)
	if section["home"] != "../index.html" || section["tags"] != "../tags/index.html" {
		t.Fatalf("unexpected section links: %v", section)
	}
}

func TestOutputLayoutPages(t *testing.T) {
	out := outputLayout{Posts: "blogs", Categories: "categories", Tags: "tags", About: "about"}

	if got := out.postPage("hello"); got != "blogs/hello.html" {
		t.Fatalf("unexpected post page: %q", got)
	}
	if got := out.categoryPage("go"); got != "categories/go.html" {
		t.Fatalf("unexpected category page: %q", got)
	}
	if got := out.tagPage("tips"); got != "tags/tips.html" {
		t.Fatalf("unexpected tag page: %q", got)
	}
	if got := out.aboutPage(); got != "about/index.html" {
		t.Fatalf("unexpected about page: %q", got)
	}
}

func TestNormalizeSegment(t *testing.T) {
	if got := normalizeSegment(" /posts/ ", "blogs"); got != "posts" {
		t.Fatalf("expected trimmed segment, got %q", got)
	}
	if got := normalizeSegment("", "blogs"); got != "blogs" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
