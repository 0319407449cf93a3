package markdown

import (
	"strings"
	"testing"

	"github.com/zht7063/iblog/pkg/interfaces"
)

func TestParseRendersHeadingsWithoutIDs(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("# Title\n\nbody text\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<h1>Title</h1>") {
		t.Fatalf("expected plain heading, got %q", html)
	}
	if strings.Contains(html, "id=") {
		t.Fatalf("parser must not assign heading ids: %q", html)
	}
}

func TestParseGFMTable(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Fatalf("GFM tables should render by default, got %q", out)
	}
}

func TestParseRawHTMLPassthrough(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.Parse([]byte("before\n\n<div class=\"x\">raw</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(out), `<div class="x">raw</div>`) {
		t.Fatalf("raw HTML should pass through by default, got %q", out)
	}
}

func TestParseSafeModeEscapesRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	out, err := parser.Parse([]byte("<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("safe mode leaked raw HTML: %q", out)
	}
}

func TestParseWithOptionsExtensionFilter(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	out, err := parser.ParseWithOptions(
		[]byte("~~gone~~\n"),
		interfaces.ParseOptions{Extensions: []string{"table"}},
	)
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(out), "<del>") {
		t.Fatalf("strikethrough should be off when not requested: %q", out)
	}

	out, err = parser.ParseWithOptions(
		[]byte("~~gone~~\n"),
		interfaces.ParseOptions{Extensions: []string{"strikethrough"}},
	)
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(out), "<del>") {
		t.Fatalf("strikethrough extension not applied: %q", out)
	}
}
