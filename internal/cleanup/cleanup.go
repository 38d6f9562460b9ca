// Package cleanup prunes old crontab backups according to a retention policy.
package cleanup

import (
	"os"
	"time"

	"github.com/aatumaykin/crondir/internal/logger"
)

// Run removes backups in dir that fall outside the retention policy.
// A missing directory is not an error.
func (r *Runner) Run(dir string, log *logger.Logger) (Stats, error) {
	startTime := time.Now()
	stats := Stats{}

	if log == nil {
		log = logger.Nop()
	}

	if !r.config.Enabled() {
		return stats, nil
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Debug("backup directory does not exist, skipping cleanup",
			logger.Field{Key: "dir", Value: dir})
		return stats, nil
	}

	backups, err := r.ListBackups(dir)
	if err != nil {
		log.Error("failed to list backups for cleanup", err,
			logger.Field{Key: "dir", Value: dir})
		return stats, err
	}

	for i, backup := range backups {
		if !r.ShouldDelete(i, backup) {
			stats.Kept++
			continue
		}

		if err := os.Remove(backup.Path); err != nil {
			log.Error("failed to delete backup", err,
				logger.Field{Key: "file", Value: backup.Path})
			stats.Kept++
			continue
		}

		stats.Deleted++
		stats.BytesFreed += backup.Size
		log.Debug("deleted backup",
			logger.Field{Key: "file", Value: backup.Path},
			logger.Field{Key: "size_bytes", Value: backup.Size})
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}
