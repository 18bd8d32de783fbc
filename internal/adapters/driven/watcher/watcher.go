// Package watcher implements driven.SettingsWatcher on top of fsnotify.
//
// The parent directory of a settings file is watched rather than the file
// itself, because atomic writes replace the file by renaming a temporary
// sibling over it and a watch on the old inode would go silent.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/modsettings/internal/core/domain"
	"github.com/custodia-labs/modsettings/internal/core/ports/driven"
	"github.com/custodia-labs/modsettings/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.SettingsWatcher = (*Watcher)(nil)

// Watcher watches settings files for changes.
type Watcher struct {
	mu       sync.Mutex
	closed   bool
	watchers map[*fsnotify.Watcher]struct{}
}

// New creates a settings watcher.
func New() *Watcher {
	return &Watcher{
		watchers: make(map[*fsnotify.Watcher]struct{}),
	}
}

// Watch emits a change whenever the file at path is created, rewritten or
// removed. The channel is closed when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan domain.SettingsChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, domain.ErrWatcherClosed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	w.watchers[fsw] = struct{}{}

	_, statErr := os.Stat(target)
	changes := make(chan domain.SettingsChange, 16)
	go w.run(ctx, fsw, target, statErr == nil, changes)

	return changes, nil
}

// run tracks whether target exists so that a rename over an existing file
// is reported as an update rather than a creation.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, target string, exists bool, changes chan<- domain.SettingsChange) {
	defer close(changes)
	defer w.release(fsw)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			change, ok := toChange(event, target, exists)
			if !ok {
				continue
			}
			exists = change.Type != domain.ChangeDeleted
			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("settings watcher error for %s: %v", target, err)
		}
	}
}

// release closes fsw unless Close already did.
func (w *Watcher) release(fsw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watchers[fsw]; ok {
		delete(w.watchers, fsw)
		fsw.Close()
	}
}

// Close stops every active watch.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	var firstErr error
	for fsw := range w.watchers {
		if err := fsw.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(w.watchers, fsw)
	}
	return firstErr
}

// toChange maps an fsnotify event on target to a settings change. A create
// on a target that already existed is an atomic replace and counts as an
// update. Events on other files and permission changes are ignored.
func toChange(event fsnotify.Event, target string, existed bool) (domain.SettingsChange, bool) {
	if filepath.Clean(event.Name) != target {
		return domain.SettingsChange{}, false
	}

	change := domain.SettingsChange{Path: target, At: time.Now()}
	switch {
	case event.Has(fsnotify.Create) && existed:
		change.Type = domain.ChangeUpdated
	case event.Has(fsnotify.Create):
		change.Type = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		change.Type = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		change.Type = domain.ChangeDeleted
	default:
		return domain.SettingsChange{}, false
	}
	return change, true
}
