package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zht7063/iblog/internal/corpus"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if cfg.Posts.Sort.By != "date" || cfg.Posts.Sort.Order != "desc" {
		t.Fatalf("unexpected default sort: %s %s", cfg.Posts.Sort.By, cfg.Posts.Sort.Order)
	}
	if cfg.Posts.Defaults.Category != "uncategorized" {
		t.Fatalf("unexpected default category: %q", cfg.Posts.Defaults.Category)
	}
	if cfg.Paths.Output.Posts != "blogs" {
		t.Fatalf("unexpected posts output dir: %q", cfg.Paths.Output.Posts)
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  title: My Blog\nposts:\n  sort:\n    by: title\n    order: asc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Site.Title != "My Blog" {
		t.Fatalf("unexpected title: %q", cfg.Site.Title)
	}
	if cfg.Posts.Sort.By != "title" || cfg.Posts.Sort.Order != "asc" {
		t.Fatalf("sort not merged: %s %s", cfg.Posts.Sort.By, cfg.Posts.Sort.Order)
	}
	// Untouched sections keep their defaults.
	if !cfg.Features.Generators.Posts {
		t.Fatalf("generator defaults lost")
	}
	if cfg.Templates.Dir != "templates" {
		t.Fatalf("template dir default lost: %q", cfg.Templates.Dir)
	}
}

func TestParseRejectsUnknownSortKey(t *testing.T) {
	_, err := Parse([]byte("posts:\n  sort:\n    by: views\n"))
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestParseRejectsUnknownLoggingFormat(t *testing.T) {
	_, err := Parse([]byte("logging:\n  format: xml\n"))
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("site: [unclosed\n")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("site:\n  title: From Disk\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Site.Title != "From Disk" {
		t.Fatalf("unexpected title: %q", cfg.Site.Title)
	}
}

func TestSortSpec(t *testing.T) {
	cfg := DefaultConfig()
	key, order, err := cfg.SortSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != corpus.SortByDate || order != corpus.OrderDesc {
		t.Fatalf("unexpected spec: %s %s", key, order)
	}

	cfg.Posts.Sort.By = "nope"
	if _, _, err := cfg.SortSpec(); !errors.Is(err, corpus.ErrUnknownSortKey) {
		t.Fatalf("expected ErrUnknownSortKey, got %v", err)
	}
}

func TestMetadataDefaultsCopiesTags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Posts.Defaults.Tags = []string{"general"}
	cfg.Site.Author = "site-owner"

	defaults := cfg.MetadataDefaults()
	defaults.Tags[0] = "mutated"

	if cfg.Posts.Defaults.Tags[0] != "general" {
		t.Fatalf("config tag slice aliased by metadata defaults")
	}
	if defaults.SiteAuthor != "site-owner" {
		t.Fatalf("site author not carried: %q", defaults.SiteAuthor)
	}
}
