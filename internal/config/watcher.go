package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kmikiy/keycast/internal/log"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 200 * time.Millisecond

// Watcher reloads the configuration when the file changes on disk.
type Watcher struct {
	path     string
	onChange func()
	fsw      *fsnotify.Watcher
	logger   *log.Logger
}

// NewWatcher watches path and calls onChange after each modification.
// The parent directory is watched rather than the file itself so that
// rename-over saves keep working.
func NewWatcher(path string, onChange func(), logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Null
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		onChange: onChange,
		fsw:      fsw,
		logger:   logger,
	}, nil
}

// Run processes events until the context is cancelled or the watcher is
// closed. It is meant to run on its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher: %v", err)
		case <-fire:
			timer = nil
			fire = nil
			w.logger.Info("config file changed, reloading")
			w.onChange()
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
