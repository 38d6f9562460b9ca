package constants

// Managed block markers. Both must match byte-for-byte when parsing an
// installed crontab.
const (
	// StartMarker opens the block regenerated by crondir build.
	StartMarker = "# Managed by crondir - do not modify"

	// EndMarker closes the managed block.
	EndMarker = "# crondir end"
)

// DefaultScheduler is the host scheduler binary used to read and install the crontab.
const DefaultScheduler = "crontab"

// SchedulerListFlag makes the scheduler print the installed crontab.
const SchedulerListFlag = "-l"

// BackupFilePrefix is the filename prefix of crontab snapshots.
const BackupFilePrefix = "crontab."

// BackupTimeFormat is the second-resolution timestamp appended to BackupFilePrefix.
const BackupTimeFormat = "20060102-150405"
