package docs

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates the store's folder cache when the docs tree changes on
// disk. Newly created directories are added to the watch set as they appear.
type Watcher struct {
	store *Store
	fsw   *fsnotify.Watcher
	done  chan struct{}
}

// Watch starts watching the store's root and all current subdirectories.
func Watch(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{store: store, fsw: fsw, done: make(chan struct{})}
	if err := w.addRecursive(store.Root()); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.store.Invalidate()
			if ev.Op.Has(fsnotify.Create) {
				// Best effort; the path may already be gone.
				_ = w.addRecursive(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("docs watcher error", "error", err)
		}
	}
}

// addRecursive registers path and every directory below it. Non-directories
// are ignored.
func (w *Watcher) addRecursive(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if matchAny(w.store.excludeFolders, d.Name()) && p != w.store.Root() {
			return filepath.SkipDir
		}
		_ = w.fsw.Add(p)
		return nil
	})
}
