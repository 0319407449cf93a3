package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/zht7063/iblog/internal/logging"
	"github.com/zht7063/iblog/pkg/interfaces"
)

const defaultDebounce = 300 * time.Millisecond

// ErrRebuildRequired indicates the watcher was constructed without a rebuild
// callback.
var ErrRebuildRequired = errors.New("watcher: rebuild callback is required")

// RebuildFunc triggers a site rebuild after the debounce window settles.
type RebuildFunc func(ctx context.Context) error

// Config controls which filesystem changes trigger rebuilds.
type Config struct {
	Dir       string
	Pattern   string
	Exclude   []string
	Recursive bool
	// Debounce is the quiet period after the last event before a rebuild
	// fires. Zero uses the default.
	Debounce time.Duration
}

// Watcher triggers rebuilds when source documents change on disk. Bursts of
// events (editor save storms, bulk copies) collapse into a single rebuild.
type Watcher struct {
	cfg     Config
	rebuild RebuildFunc
	logger  interfaces.Logger
}

// New constructs a watcher over the configured content directory.
func New(cfg Config, rebuild RebuildFunc, logger interfaces.Logger) (*Watcher, error) {
	if rebuild == nil {
		return nil, ErrRebuildRequired
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "*.md"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Watcher{cfg: cfg, rebuild: rebuild, logger: logger}, nil
}

// Run blocks until the context is cancelled, rebuilding whenever a matching
// document changes. New subdirectories are added to the watch set as they
// appear when recursive watching is enabled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	defer fsw.Close()

	if err := w.addDirs(fsw); err != nil {
		return err
	}

	w.logger.Info("watch.start", "dir", w.cfg.Dir, "debounce", w.cfg.Debounce.String())

	// Timer starts drained; the first matching event arms it.
	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stop")
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return errors.New("watcher: events channel closed")
			}
			if w.cfg.Recursive && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fsw.Add(event.Name); err != nil {
						w.logger.Warn("watch.add_failed", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("watch.change", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("watcher: errors channel closed")
			}
			w.logger.Error("watch.error", "error", err)

		case <-timer.C:
			if err := w.rebuild(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				w.logger.Error("watch.rebuild_failed", "error", err)
			}
		}
	}
}

func (w *Watcher) addDirs(fsw *fsnotify.Watcher) error {
	if !w.cfg.Recursive {
		if err := fsw.Add(w.cfg.Dir); err != nil {
			return fmt.Errorf("watcher: watch %s: %w", w.cfg.Dir, err)
		}
		return nil
	}
	return filepath.WalkDir(w.cfg.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if w.excluded(filepath.Base(path)) && path != w.cfg.Dir {
			return fs.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watcher: watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether the event touches a document that would be picked
// up by the next scan.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if w.excluded(name) {
		return false
	}
	matched, err := doublestar.Match(w.cfg.Pattern, name)
	if err != nil {
		return false
	}
	return matched
}

func (w *Watcher) excluded(name string) bool {
	for _, pattern := range w.cfg.Exclude {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
