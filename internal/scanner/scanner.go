package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zht7063/iblog/internal/corpus"
	"github.com/zht7063/iblog/internal/logging"
	"github.com/zht7063/iblog/internal/metadata"
	"github.com/zht7063/iblog/pkg/interfaces"
)

// DefaultAboutFile is the filename treated as the about page rather than a post.
const DefaultAboutFile = "about.md"

// Config controls how source documents are discovered.
type Config struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Exclude lists glob patterns (doublestar syntax) matched against paths
	// relative to the scanned directory.
	Exclude []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// AboutFile names the special page captured separately from posts
	// (defaults to DefaultAboutFile).
	AboutFile string
}

// Result carries everything one scan discovered. Documents preserve directory
// walk order; downstream sorting is the Index's concern.
type Result struct {
	Documents []*corpus.Document
	// About is the parsed about page, nil when the directory has none.
	About *corpus.Document
	// Skipped counts files that failed to read; front-matter failures do not
	// skip a file, they degrade it to a bodyless-metadata document.
	Skipped int
}

// Scanner discovers Markdown sources and turns them into normalized documents.
type Scanner struct {
	fs        fs.FS
	pattern   string
	exclude   []string
	recursive bool
	aboutFile string
	defaults  metadata.Defaults
	logger    interfaces.Logger
}

// New constructs a Scanner over the provided filesystem.
func New(filesystem fs.FS, cfg Config, defaults metadata.Defaults, logger interfaces.Logger) *Scanner {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	aboutFile := cfg.AboutFile
	if strings.TrimSpace(aboutFile) == "" {
		aboutFile = DefaultAboutFile
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Scanner{
		fs:        filesystem,
		pattern:   pattern,
		exclude:   append([]string(nil), cfg.Exclude...),
		recursive: cfg.Recursive,
		aboutFile: aboutFile,
		defaults:  defaults,
		logger:    logger,
	}
}

// Scan walks dir and returns every post it could read, plus the about page
// when present. A file that cannot be read is logged and skipped; malformed
// front matter is logged and degraded to full-body content. Neither aborts
// the batch.
func (s *Scanner) Scan(ctx context.Context, dir string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(dir)
	if root == "" {
		root = "."
	}

	result := &Result{}

	walkErr := fs.WalkDir(s.fs, root, func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if entryPath == root {
				return nil
			}
			if !s.recursive || s.excluded(s.relative(root, entryPath)) {
				return fs.SkipDir
			}
			return nil
		}

		rel := s.relative(root, entryPath)
		if matched, _ := doublestar.Match(s.pattern, path.Base(entryPath)); !matched {
			return nil
		}
		if s.excluded(rel) {
			s.logger.Debug("scan.exclude", "path", entryPath)
			return nil
		}

		doc, ok := s.loadDocument(entryPath)
		if !ok {
			result.Skipped++
			return nil
		}

		if path.Base(entryPath) == s.aboutFile {
			result.About = doc
			return nil
		}

		result.Documents = append(result.Documents, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scanner: walk %s: %w", root, walkErr)
	}

	s.logger.Info("scan.complete", "documents", len(result.Documents), "skipped", result.Skipped)
	return result, nil
}

func (s *Scanner) loadDocument(entryPath string) (*corpus.Document, bool) {
	data, err := fs.ReadFile(s.fs, entryPath)
	if err != nil {
		s.logger.Warn("scan.read_failed", "path", entryPath, "error", err)
		return nil, false
	}

	raw, body, err := metadata.ParseFrontMatter(data)
	if err != nil {
		// Degrade: no metadata, the whole file is body text.
		s.logger.Warn("scan.frontmatter_malformed", "path", entryPath, "error", err)
	}

	identity := identityFromPath(entryPath)
	doc := metadata.BuildDocument(identity, raw, string(body), s.defaults)

	s.logger.Debug("scan.document", "path", entryPath, "identity", identity, "title", doc.Title)
	return doc, true
}

func (s *Scanner) relative(root, entryPath string) string {
	if root == "." {
		return entryPath
	}
	return strings.TrimPrefix(entryPath, root+"/")
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, path.Base(rel)); matched {
			return true
		}
	}
	return false
}

// identityFromPath derives the stable document key from the filename stem.
func identityFromPath(entryPath string) string {
	base := path.Base(entryPath)
	return strings.TrimSuffix(base, path.Ext(base))
}
