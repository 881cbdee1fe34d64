package inkpress

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors the content directory and triggers a reload after a burst
// of changes settles. The index is global (the prev/next chain spans every
// post), so any change reloads the whole site rather than a single file.
type Watcher struct {
	root          string
	debounceDelay time.Duration
	onChange      func() error
	logger        *zap.Logger

	fsWatcher *fsnotify.Watcher
	mu        sync.Mutex
	dirty     time.Time // zero when nothing is pending
}

// WatcherConfig holds configuration options for the Watcher.
type WatcherConfig struct {
	Root          string
	DebounceDelay time.Duration // Default: 200ms
	OnChange      func() error
	Logger        *zap.Logger
}

// NewWatcher creates a Watcher with the given configuration.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("inkpress: watcher root is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("inkpress: watcher OnChange is required")
	}
	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 200 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		root:          cfg.Root,
		debounceDelay: debounce,
		onChange:      cfg.OnChange,
		logger:        logger,
	}, nil
}

// Start watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("inkpress: create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("inkpress: watch %s: %w", w.root, err)
	}
	w.logger.Info("watching content", zap.String("root", w.root))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.processDebounced(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchRecursive(event.Name); err != nil {
				w.logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			w.markDirty()
			return
		}
	}
	if !IsContentFile(event.Name) || w.shouldIgnore(filepath.Dir(event.Name)) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.logger.Debug("content changed", zap.String("op", event.Op.String()), zap.String("path", event.Name))
	w.markDirty()
}

func (w *Watcher) markDirty() {
	w.mu.Lock()
	w.dirty = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	interval := w.debounceDelay / 4
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	ready := !w.dirty.IsZero() && time.Since(w.dirty) >= w.debounceDelay
	if ready {
		w.dirty = time.Time{}
	}
	w.mu.Unlock()
	if !ready {
		return
	}
	if err := w.onChange(); err != nil {
		w.logger.Error("reload failed", zap.Error(err))
		return
	}
	w.logger.Info("content reloaded")
}

func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(p)
	})
}

// shouldIgnore mirrors the loader: hidden and underscore-prefixed
// directories are not content.
func (w *Watcher) shouldIgnore(p string) bool {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") || strings.HasPrefix(part, "_") {
			return true
		}
	}
	return false
}
