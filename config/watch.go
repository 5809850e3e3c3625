// =======================
// config/watch.go
// =======================

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors replacing the file by rename are still seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	return &Watcher{path: abs, fs: fw}, nil
}

// Run delivers every successfully reloaded config to onChange and every
// failed reload to onError until ctx is done. A failed reload keeps the
// previous config in effect.
func (w *Watcher) Run(ctx context.Context, onChange func(Config), onError func(error)) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			// truncated and not yet rewritten
			if st, err := os.Stat(w.path); err != nil || st.Size() == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(fmt.Errorf("watch %s: %w", w.path, err))
			}
		}
	}
}
