// Package crondir ties the snippet store, the crontab accessor, the backup
// writer and the merge engine together into the operations exposed by the
// command line.
package crondir

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aatumaykin/crondir/internal/backup"
	"github.com/aatumaykin/crondir/internal/cleanup"
	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/crontab"
	"github.com/aatumaykin/crondir/internal/lock"
	"github.com/aatumaykin/crondir/internal/logger"
	"github.com/aatumaykin/crondir/internal/merge"
	"github.com/aatumaykin/crondir/internal/metrics"
	"github.com/aatumaykin/crondir/internal/snippet"
)

// Options configures a Crondir.
type Options struct {
	CronDir   string         // snippet store directory
	BackupDir string         // backup directory used when none is given per call
	Scheduler string         // host scheduler binary, "crontab" when empty
	Runner    crontab.Runner // nil runs the scheduler as a subprocess
	Logger    *logger.Logger

	// Lock takes an advisory lock in the store directory around Update.
	Lock bool

	// Metrics, when set, records builds and backups.
	Metrics *metrics.Metrics

	// Retention prunes the backup directory after every backup Update writes.
	Retention cleanup.Config
}

// BuildOptions controls Update.
type BuildOptions struct {
	NoBackup   bool
	BackupPath string
	DryRun     bool

	// Refresh drops the cached crontab so that edits made since the last
	// read are picked up. The read happens under the lock.
	Refresh bool
}

// Result describes a finished Update.
type Result struct {
	Crontab    string
	Snippets   int
	BackupPath string
	Installed  bool
}

// Crondir manages one snippet store and the crontab it is merged into.
type Crondir struct {
	store   *snippet.Store
	crontab *crontab.Accessor
	backup  *backup.Writer
	logger  *logger.Logger
	lock    bool
	metrics *metrics.Metrics
	cleanup *cleanup.Runner
}

// New creates a Crondir. Nothing is read or created on disk.
func New(opts Options) *Crondir {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	backupDir := opts.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(opts.CronDir, constants.BackupDirName)
	}

	accessor := crontab.New(opts.Scheduler, opts.Runner, log)
	return &Crondir{
		store:   snippet.NewStore(opts.CronDir, log),
		crontab: accessor,
		backup:  backup.NewWriter(accessor, backupDir, log),
		logger:  log,
		lock:    opts.Lock,
		metrics: opts.Metrics,
		cleanup: cleanup.NewRunner(opts.Retention),
	}
}

// Path returns the snippet store directory.
func (c *Crondir) Path() string {
	return c.store.Path()
}

// Crontab returns the accessor used for reads and installs.
func (c *Crondir) Crontab() *crontab.Accessor {
	return c.crontab
}

// Backup snapshots the current crontab into dest or the default backup
// directory. It returns the written file, or "" for an empty crontab.
func (c *Crondir) Backup(ctx context.Context, dest string) (string, error) {
	path, err := c.backup.Backup(ctx, dest)
	if err == nil && path != "" && c.metrics != nil {
		c.metrics.RecordBackup()
	}
	return path, err
}

// Preview computes the crontab Build would install without installing it.
func (c *Crondir) Preview(ctx context.Context) (string, error) {
	text, _, err := c.compute(ctx)
	return text, err
}

// Build merges the snippets into the crontab and installs the result.
func (c *Crondir) Build(ctx context.Context) (string, error) {
	text, _, err := c.build(ctx)
	return text, err
}

func (c *Crondir) build(ctx context.Context) (string, int, error) {
	started := time.Now()

	text, count, err := c.compute(ctx)
	if err == nil {
		err = c.crontab.Install(ctx, text)
	}

	if c.metrics != nil {
		c.metrics.RecordBuild(count, len(text), started, err)
	}
	if err != nil {
		return "", 0, err
	}

	c.logger.Info("crontab built",
		logger.Field{Key: "dir", Value: c.store.Path()},
		logger.Field{Key: "snippets", Value: count})
	return text, count, nil
}

// Update runs the whole build command: lock, backup, prune, merge and install.
// The store directory is checked before anything else touches the crontab
// or the filesystem.
func (c *Crondir) Update(ctx context.Context, opts BuildOptions) (Result, error) {
	if !c.store.Exists() {
		return Result{}, c.sourceMissing()
	}

	if c.lock {
		l, err := lock.Acquire(filepath.Join(c.store.Path(), constants.LockFileName))
		if err != nil {
			return Result{}, err
		}
		defer func() {
			if err := l.Release(); err != nil {
				c.logger.Warn("failed to release lock",
					logger.Field{Key: "file", Value: l.Path()},
					logger.Field{Key: "error", Value: err})
			}
		}()
	}

	if opts.Refresh {
		if _, err := c.crontab.Read(ctx, true, false); err != nil {
			return Result{}, err
		}
	}

	var result Result
	if opts.DryRun {
		text, count, err := c.compute(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Crontab: text, Snippets: count}, nil
	}

	if !opts.NoBackup {
		path, err := c.Backup(ctx, opts.BackupPath)
		if err != nil {
			return Result{}, err
		}
		result.BackupPath = path
		if path != "" {
			c.pruneBackups(filepath.Dir(path))
		}
	}

	text, count, err := c.build(ctx)
	if err != nil {
		return result, err
	}

	result.Crontab = text
	result.Snippets = count
	result.Installed = true
	return result, nil
}

// pruneBackups applies the retention policy. Failures are logged only:
// a full backup directory must not block the build.
func (c *Crondir) pruneBackups(dir string) {
	stats, err := c.cleanup.Run(dir, c.logger)
	if err != nil {
		c.logger.Warn("failed to prune backups",
			logger.Field{Key: "dir", Value: dir},
			logger.Field{Key: "error", Value: err})
		return
	}
	if stats.Deleted > 0 {
		c.logger.Info("pruned backups",
			logger.Field{Key: "dir", Value: dir},
			logger.Field{Key: "deleted", Value: stats.Deleted},
			logger.Field{Key: "kept", Value: stats.Kept},
			logger.Field{Key: "bytes_freed", Value: stats.BytesFreed},
			logger.Field{Key: "duration", Value: stats.Duration})
	}
	if c.metrics != nil {
		c.metrics.RecordPrune(stats.Deleted)
	}
}

// AddFile copies source into the store, see snippet.Store.AddFile.
func (c *Crondir) AddFile(source, name string, force bool) (snippet.Snippet, error) {
	return c.store.AddFile(source, name, force)
}

// AddString stores contents as the snippet name, see snippet.Store.AddString.
func (c *Crondir) AddString(name string, force bool, contents ...string) (snippet.Snippet, error) {
	return c.store.AddString(name, force, contents...)
}

// Remove deletes the snippet name, see snippet.Store.Remove.
func (c *Crondir) Remove(name string, force bool) (bool, error) {
	return c.store.Remove(name, force)
}

// List returns the snippets sorted by name.
func (c *Crondir) List() ([]snippet.Snippet, error) {
	return c.store.List()
}

// compute reads the current crontab and the snippets and merges them.
func (c *Crondir) compute(ctx context.Context) (string, int, error) {
	if !c.store.Exists() {
		return "", 0, c.sourceMissing()
	}

	existing, err := c.crontab.Read(ctx, false, false)
	if err != nil {
		return "", 0, err
	}

	files, err := c.store.List()
	if err != nil {
		return "", 0, err
	}

	snippets := make([]merge.Snippet, 0, len(files))
	for _, f := range files {
		content, err := f.Content()
		if err != nil {
			return "", 0, err
		}
		snippets = append(snippets, merge.Snippet{
			Name:    f.Name,
			Source:  f.Path,
			Content: content,
		})
	}

	return merge.Compute(existing, snippets), len(snippets), nil
}

func (c *Crondir) sourceMissing() error {
	return fmt.Errorf("%w: %s", snippet.ErrSourceMissing, c.store.Path())
}
