package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactWriter abstracts filesystem specifics for generator outputs, so
// builds can be redirected or discarded (dry runs) without touching the
// rendering path.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content []byte) error
	RemoveAll(ctx context.Context, path string) error
}

// NewOSWriter returns an ArtifactWriter rooted at baseDir on the local
// filesystem.
func NewOSWriter(baseDir string) ArtifactWriter {
	return &osWriter{base: filepath.Clean(baseDir)}
}

type osWriter struct {
	base string
}

func (w *osWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" || path == "." {
		return os.MkdirAll(w.base, 0o755)
	}
	return os.MkdirAll(filepath.Join(w.base, filepath.FromSlash(path)), 0o755)
}

func (w *osWriter) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: write requires path")
	}
	target := filepath.Join(w.base, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, content, 0o644)
}

func (w *osWriter) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := w.base
	if strings.TrimSpace(path) != "" && path != "." {
		target = filepath.Join(w.base, filepath.FromSlash(path))
	}
	return os.RemoveAll(target)
}

// NewDiscardWriter returns an ArtifactWriter that accepts every operation and
// writes nothing. Dry-run builds use it so rendering is still exercised.
func NewDiscardWriter() ArtifactWriter {
	return discardWriter{}
}

type discardWriter struct{}

func (discardWriter) EnsureDir(context.Context, string) error         { return nil }
func (discardWriter) WriteFile(context.Context, string, []byte) error { return nil }
func (discardWriter) RemoveAll(context.Context, string) error         { return nil }
