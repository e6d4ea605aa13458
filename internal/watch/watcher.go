// Package watch reloads the skill registry when the corpus on disk
// changes, so a long-running server picks up edits without a restart.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounce batches rapid editor write bursts into one reload.
const debounce = 500 * time.Millisecond

// Watcher observes a skills directory tree and invokes a reload callback
// after changes settle.
type Watcher struct {
	root   string
	reload func() error
	fsw    *fsnotify.Watcher
}

// New creates a watcher over root. reload is called after each settled
// burst of filesystem events; its error is logged, not fatal, because a
// bad corpus state must not kill the server (the registry keeps serving
// the previous generation).
func New(root string, reload func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create watcher: %w", err)
	}
	w := &Watcher{root: root, reload: reload, fsw: fsw}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled, dispatching debounced reloads.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			// New subdirectories must be tracked before their files
			// produce events.
			if ev.Op.Has(fsnotify.Create) {
				_ = w.addTree(ev.Name)
			}
			logrus.WithField("event", ev.String()).Debug("corpus change detected")
			// The timer is recreated rather than Reset: a Reset on a
			// timer that already fired leaves a stale tick in the old
			// channel, causing one premature reload and a dropped one.
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watcher error")
		case <-fire:
			timer = nil
			fire = nil
			if err := w.reload(); err != nil {
				logrus.WithError(err).Warn("corpus reload failed, previous index stays active")
			}
		}
	}
}

// addTree registers root and every directory below it. Non-directories
// are ignored; fsnotify watches whole directories.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		return nil
	})
}
