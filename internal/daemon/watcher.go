//go:build unix

package daemon

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/paths"
)

// watchDebounce coalesces the burst of writes an IDE makes when it saves
// its options into a single cache invalidation.
const watchDebounce = 500 * time.Millisecond

// Watcher invalidates the installation cache when the JetBrains config
// trees change: a new IDE version appearing, or a recent-projects record
// being rewritten.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	catalog   *catalog.Catalog
	logger    *slog.Logger
	done      chan struct{}
}

func NewWatcher(cat *catalog.Catalog, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		catalog:   cat,
		logger:    logger,
		done:      make(chan struct{}),
	}
	w.addWatches()
	return w, nil
}

// addWatches registers the config roots (catches new version directories)
// and each current installation's options dir (catches record rewrites).
// Directories that cannot be watched are skipped; the TTL still refreshes.
func (w *Watcher) addWatches() {
	for _, root := range paths.JetBrainsConfigRoots() {
		if err := w.fsWatcher.Add(root); err != nil {
			w.logger.Debug("not watching config root", "root", root, "error", err)
		}
	}
	for _, inst := range w.catalog.Installations() {
		dir := filepath.Join(inst.ConfigDir, "options")
		if err := w.fsWatcher.Add(dir); err != nil {
			w.logger.Debug("not watching options dir", "dir", dir, "error", err)
		}
	}
}

// Run listens for events until Close. Call in a goroutine.
func (w *Watcher) Run() {
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				w.logger.Debug("config change detected, dropping installation cache", "path", event.Name)
				w.catalog.Invalidate()
				w.addWatches()
			})
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() {
	close(w.done)
	_ = w.fsWatcher.Close()
}
