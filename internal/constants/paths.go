package constants

// EnvCronDir overrides the snippet store directory.
const EnvCronDir = "CRONDIR_PATH"

// EnvBackupDir overrides the backup directory.
const EnvBackupDir = "CRONDIR_BACKUP"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "CRONDIR_CONFIG"

// DefaultCronDir is the snippet store used when nothing else is configured.
const DefaultCronDir = "~/.cron.d"

// BackupDirName is the backup subdirectory inside the store directory.
const BackupDirName = "backups"

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "~/.config/crondir/config.toml"

// LockFileName is the advisory lock file created inside the store directory.
// The leading dot keeps it out of snippet listings.
const LockFileName = ".crondir.lock"
