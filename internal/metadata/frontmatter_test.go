package metadata

import "testing"

func TestParseFrontMatterExtractsFields(t *testing.T) {
	source := []byte("---\ntitle: Hello\npinned: true\n---\n# Body\n")

	raw, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw["title"] != "Hello" {
		t.Fatalf("expected title field, got %v", raw)
	}
	if string(body) != "# Body\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestParseFrontMatterWithoutHeader(t *testing.T) {
	source := []byte("# Just a body\n")

	raw, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected no fields, got %v", raw)
	}
	if string(body) != string(source) {
		t.Fatalf("body should be the full source, got %q", body)
	}
}

func TestParseFrontMatterMalformedDegrades(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\n# Body\n")

	raw, body, err := ParseFrontMatter(source)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty fields on failure, got %v", raw)
	}
	if string(body) != string(source) {
		t.Fatalf("expected full source as body, got %q", body)
	}
}
