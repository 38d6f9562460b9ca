package cleanup

import "time"

// Stats holds statistics about a pruning run.
type Stats struct {
	Kept       int           // Backups left in place
	Deleted    int           // Backups removed
	BytesFreed int64         // Size of removed backups
	Duration   time.Duration // Time taken for cleanup
}

// Config holds the backup retention policy.
type Config struct {
	Keep       int   // Newest backups to keep (0 = no limit)
	MaxAgeDays int64 // Remove backups older than N days (0 = no TTL)
}

// Enabled reports whether the policy removes anything at all.
func (c Config) Enabled() bool {
	return c.Keep > 0 || c.MaxAgeDays > 0
}

// Runner prunes a backup directory.
type Runner struct {
	config Config
	now    func() time.Time
}

// NewRunner creates a new cleanup runner.
func NewRunner(config Config) *Runner {
	return &Runner{
		config: config,
		now:    time.Now,
	}
}
