package cleanup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aatumaykin/crondir/internal/constants"
)

// BackupInfo holds information about a backup file.
type BackupInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// ListBackups lists crontab backups in dir, newest first.
// Only files named crontab.<timestamp> are considered.
func (r *Runner) ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), constants.BackupFilePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Timestamps in the names sort lexicographically.
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})

	return backups, nil
}

// ShouldDelete reports whether the backup at position index of the
// newest-first list falls outside the retention policy.
func (r *Runner) ShouldDelete(index int, backup BackupInfo) bool {
	if r.config.Keep > 0 && index >= r.config.Keep {
		return true
	}
	if r.config.MaxAgeDays > 0 {
		cutoff := r.now().AddDate(0, 0, -int(r.config.MaxAgeDays))
		if backup.ModTime.Before(cutoff) {
			return true
		}
	}
	return false
}
