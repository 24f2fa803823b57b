// Package watch monitors an inbox directory and hands finished files to a
// handler. Files are considered finished once their size stops changing,
// since copies into the inbox arrive incrementally.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/audiobooksmith/chapterize/internal/extract"
)

// DefaultSettleInterval is how long a file's size must hold steady before
// it is handed to the handler.
const DefaultSettleInterval = 500 * time.Millisecond

const settleTimeout = 2 * time.Minute

// Handler processes one settled inbox file.
type Handler func(ctx context.Context, path string) error

// Watcher watches a single inbox directory.
type Watcher struct {
	dir            string
	handler        Handler
	settleInterval time.Duration
	log            *slog.Logger
}

// Config configures a Watcher.
type Config struct {
	// Dir is the inbox directory. It must exist.
	Dir string

	// Handler receives each settled file. Required.
	Handler Handler

	// SettleInterval overrides DefaultSettleInterval.
	SettleInterval time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a Watcher for cfg.Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.Handler == nil {
		return nil, fmt.Errorf("watcher requires a handler")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("inbox directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox path %s is not a directory", cfg.Dir)
	}

	if cfg.SettleInterval <= 0 {
		cfg.SettleInterval = DefaultSettleInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Watcher{
		dir:            cfg.Dir,
		handler:        cfg.Handler,
		settleInterval: cfg.SettleInterval,
		log:            cfg.Logger,
	}, nil
}

// Run watches until ctx is cancelled. Files already present in the inbox
// when Run starts are processed first.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.log.Info("watching inbox", "dir", w.dir)

	if err := w.processExisting(ctx); err != nil {
		return err
	}

	// Write events repeat while a copy is in flight; seen dedupes them
	// so each file settles once.
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if seen[path] || !extract.Supported(path) {
				continue
			}
			seen[path] = true
			w.handle(ctx, path)
			delete(seen, path)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) processExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read inbox: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !extract.Supported(path) {
			continue
		}
		w.handle(ctx, path)
	}
	return nil
}

func (w *Watcher) handle(ctx context.Context, path string) {
	if err := w.waitSettled(ctx, path); err != nil {
		w.log.Warn("file never settled", "path", path, "error", err)
		return
	}
	w.log.Info("processing inbox file", "path", path)
	if err := w.handler(ctx, path); err != nil {
		w.log.Error("inbox file failed", "path", path, "error", err)
	}
}

// waitSettled blocks until two consecutive size checks agree.
func (w *Watcher) waitSettled(ctx context.Context, path string) error {
	deadline := time.Now().Add(settleTimeout)
	var lastSize int64 = -1

	for {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.Size() == lastSize {
			return nil
		}
		lastSize = info.Size()

		if time.Now().After(deadline) {
			return fmt.Errorf("size still changing after %s", settleTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.settleInterval):
		}
	}
}
