// Package watch rebuilds the crontab whenever the snippet store changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/logger"
)

// RebuildFunc is called once at start and after every debounced burst of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher observes a snippet store directory.
type Watcher struct {
	dir      string
	debounce time.Duration
	rebuild  RebuildFunc
	logger   *logger.Logger
}

// New creates a Watcher. A non-positive debounce uses the default.
func New(dir string, debounce time.Duration, rebuild RebuildFunc, log *logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = constants.DefaultWatchDebounce
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		rebuild:  rebuild,
		logger:   log.With(logger.Field{Key: "dir", Value: dir}),
	}
}

// Run rebuilds once, then keeps rebuilding on changes until ctx is done.
// Rebuild errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.runRebuild(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher for %s closed", w.dir)
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("store changed",
				logger.Field{Key: "file", Value: ev.Name},
				logger.Field{Key: "op", Value: ev.Op.String()})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher for %s closed", w.dir)
			}
			// Overflow means events were dropped; rebuild to catch up.
			w.logger.Warn("watch error, forcing rebuild", logger.Field{Key: "error", Value: err})
			w.runRebuild(ctx)

		case <-fire:
			fire = nil
			w.runRebuild(ctx)
		}
	}
}

func (w *Watcher) runRebuild(ctx context.Context) {
	if err := w.rebuild(ctx); err != nil {
		w.logger.Error("rebuild failed", err)
	}
}

// relevant filters out hidden files (editor swap files, the lock file) and
// the backup directory.
func relevant(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || name == constants.BackupDirName {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
