// Package watch reports changes to feature documents under a directory tree,
// coalesced over a debounce window.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

type Config struct {
	// Root is the directory watched recursively.
	Root string
	// Extension selects the documents reported, including the dot.
	Extension string
	// Debounce is how long changes collect before a batch is delivered.
	Debounce time.Duration
	Logger   *slog.Logger
}

type Op string

const (
	OpChange Op = "change"
	OpRemove Op = "remove"
)

type Event struct {
	Path string
	Op   Op
}

// Watcher delivers batches of document events to a handler.
type Watcher struct {
	cfg     Config
	pattern string
	fsw     *fsnotify.Watcher
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[string]Op
}

func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		cfg:     cfg,
		pattern: "**/*" + cfg.Extension,
		fsw:     fsw,
		logger:  logger,
		pending: make(map[string]Op),
	}
	if err := w.addRecursive(cfg.Root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run blocks until ctx is done or handle fails, calling handle with each
// non-empty batch in path order.
func (w *Watcher) Run(ctx context.Context, handle func([]Event) error) error {
	ticker := time.NewTicker(w.cfg.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			if batch := w.drain(); len(batch) > 0 {
				if err := handle(batch); err != nil {
					return err
				}
			}
		}
	}
}

// Matches reports whether path is a document under root.
func Matches(root, extension, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	ok, err := doublestar.Match("**/*"+extension, filepath.ToSlash(rel))
	return err == nil && ok
}

func (w *Watcher) record(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if !Matches(w.cfg.Root, w.cfg.Extension, event.Name) {
		return
	}

	op := OpChange
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		op = OpRemove
	}
	w.mu.Lock()
	w.pending[event.Name] = op
	w.mu.Unlock()

	w.logger.Debug("document event", "path", event.Name, "op", event.Op.String())
}

func (w *Watcher) drain() []Event {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]Op)
	w.mu.Unlock()

	batch := make([]Event, 0, len(pending))
	for path, op := range pending {
		// A rename can be followed by a write at the same path.
		if op == OpRemove {
			if _, err := os.Stat(path); err == nil {
				op = OpChange
			}
		}
		batch = append(batch, Event{Path: path, Op: op})
	}
	slices.SortFunc(batch, func(a, b Event) int { return strings.Compare(a.Path, b.Path) })
	return batch
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}
