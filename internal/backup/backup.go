// Package backup snapshots the installed crontab before it is replaced.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/logger"
)

// Reader provides the current crontab text.
type Reader interface {
	Read(ctx context.Context, refresh, strict bool) (string, error)
}

// Writer writes timestamped copies of the crontab into a backup directory.
// Files are named crontab.<YYYYMMDD-HHMMSS>; two backups within the same
// second overwrite each other. Rotation is left to package cleanup.
type Writer struct {
	reader     Reader
	defaultDir string
	now        func() time.Time
	logger     *logger.Logger
}

// NewWriter creates a Writer that falls back to defaultDir when Backup is
// called without a destination.
func NewWriter(reader Reader, defaultDir string, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{
		reader:     reader,
		defaultDir: defaultDir,
		now:        time.Now,
		logger:     log,
	}
}

// SetClock replaces the time source used for file names.
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

// Backup copies the current crontab into dest, or the default directory when
// dest is empty, and returns the written path. An empty crontab is not
// backed up and yields an empty path.
func (w *Writer) Backup(ctx context.Context, dest string) (string, error) {
	crontab, err := w.reader.Read(ctx, false, false)
	if err != nil {
		return "", err
	}
	if crontab == "" {
		w.logger.Debug("crontab is empty, skipping backup")
		return "", nil
	}

	if dest == "" {
		dest = w.defaultDir
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		w.logger.Error("failed to create backup directory", err,
			logger.Field{Key: "dir", Value: dest})
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(dest, constants.BackupFilePrefix+w.now().Format(constants.BackupTimeFormat))
	if err := os.WriteFile(path, []byte(crontab), 0600); err != nil {
		w.logger.Error("failed to write backup", err,
			logger.Field{Key: "file", Value: path})
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	w.logger.Info("crontab backed up",
		logger.Field{Key: "file", Value: path},
		logger.Field{Key: "bytes", Value: len(crontab)})
	return path, nil
}
