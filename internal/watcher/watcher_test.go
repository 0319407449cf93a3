package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewRequiresRebuild(t *testing.T) {
	if _, err := New(Config{Dir: "."}, nil, nil); err != ErrRebuildRequired {
		t.Fatalf("expected ErrRebuildRequired, got %v", err)
	}
}

func TestRelevantFiltersByPatternAndExclude(t *testing.T) {
	w, err := New(Config{
		Dir:     ".",
		Pattern: "*.md",
		Exclude: []string{"_*", "*.draft"},
	}, func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"post.md", fsnotify.Write, true},
		{"post.md", fsnotify.Create, true},
		{"post.md", fsnotify.Remove, true},
		{"post.md", fsnotify.Chmod, false},
		{"notes.txt", fsnotify.Write, false},
		{"_draft.md", fsnotify.Write, false},
		{"wip.draft", fsnotify.Write, false},
	}
	for _, tc := range cases {
		event := fsnotify.Event{Name: filepath.Join("content", tc.name), Op: tc.op}
		if got := w.relevant(event); got != tc.want {
			t.Fatalf("relevant(%s %v): expected %v, got %v", tc.name, tc.op, tc.want, got)
		}
	}
}

func TestRunDebouncesBurstsIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()

	var rebuilds atomic.Int32
	w, err := New(Config{
		Dir:      dir,
		Debounce: 50 * time.Millisecond,
	}, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher register before touching files.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, "post.md")
		if err := os.WriteFile(path, []byte("change"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for rebuilds.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("rebuild never fired")
		case <-time.After(20 * time.Millisecond):
		}
	}

	// Allow any stray timer to fire, then confirm the burst collapsed.
	time.Sleep(150 * time.Millisecond)
	if got := rebuilds.Load(); got != 1 {
		t.Fatalf("expected one debounced rebuild, got %d", got)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w, err := New(Config{Dir: t.TempDir()}, func(context.Context) error { return nil }, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
