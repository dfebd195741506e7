package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk. Parsed configs are
// delivered through the callback; malformed documents are logged and dropped
// so the consumer keeps running on the previous config.
type Watcher struct {
	path   string
	logger *slog.Logger
	notify func(*Config)
}

// NewWatcher creates a watcher for path. notify is called with each
// successfully parsed config; it must not block.
func NewWatcher(path string, logger *slog.Logger, notify func(*Config)) *Watcher {
	return &Watcher{path: path, logger: logger, notify: notify}
}

// Run watches until ctx is cancelled. Editors replace config files by rename,
// so the parent directory is watched rather than the file itself.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	// Debounce: editors emit several write events per save.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-pending:
			pending = nil
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				w.logger.Error("config reload rejected, keeping previous config",
					"path", w.path,
					"error", err)
				continue
			}
			w.logger.Info("config reloaded", "path", w.path)
			w.notify(cfg)
		}
	}
}
