package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write template %s: %v", name, err)
	}
}

func TestNewPongo2RendererRequiresDir(t *testing.T) {
	if _, err := NewPongo2Renderer(""); !errors.Is(err, ErrTemplateDirRequired) {
		t.Fatalf("expected ErrTemplateDirRequired, got %v", err)
	}
}

func TestRenderNamedTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "page.html", "<h1>{{ title }}</h1>")

	r, err := NewPongo2Renderer(dir)
	if err != nil {
		t.Fatalf("NewPongo2Renderer: %v", err)
	}

	out, err := r.Render("page.html", map[string]any{"title": "Hello"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "<h1>Hello</h1>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderTemplateInheritance(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "base.html", "<main>{% block content %}{% endblock %}</main>")
	writeTemplate(t, dir, "child.html", `{% extends "base.html" %}{% block content %}{{ body }}{% endblock %}`)

	r, err := NewPongo2Renderer(dir)
	if err != nil {
		t.Fatalf("NewPongo2Renderer: %v", err)
	}

	out, err := r.Render("child.html", map[string]any{"body": "inner"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "<main>inner</main>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	r, err := NewPongo2Renderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewPongo2Renderer: %v", err)
	}

	if _, err := r.Render("absent.html", nil); err == nil {
		t.Fatal("expected load error for missing template")
	}
}

func TestRenderString(t *testing.T) {
	r, err := NewPongo2Renderer(t.TempDir())
	if err != nil {
		t.Fatalf("NewPongo2Renderer: %v", err)
	}

	out, err := r.RenderString("{% for t in tags %}[{{ t }}]{% endfor %}", map[string]any{"tags": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.Contains(out, "[a][b]") {
		t.Fatalf("unexpected output: %q", out)
	}
}
