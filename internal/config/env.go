package config

import (
	"os"
	"path/filepath"

	"github.com/aatumaykin/crondir/internal/constants"
)

// ConfigPath возвращает путь к файлу конфигурации.
// Порядок: явный флаг, CRONDIR_CONFIG, путь по умолчанию.
func ConfigPath(flag string) string {
	if flag != "" {
		return expandHome(flag)
	}
	if env := os.Getenv(constants.EnvConfigPath); env != "" {
		return expandHome(env)
	}
	return expandHome(constants.DefaultConfigPath)
}

// CronDir resolves the snippet store directory.
// Precedence: explicit override, CRONDIR_PATH, crondir.path from the config.
func (c *Config) CronDir(override string) string {
	if override != "" {
		return expandHome(override)
	}
	if env := os.Getenv(constants.EnvCronDir); env != "" {
		return expandHome(env)
	}
	return c.Crondir.Path
}

// BackupDir resolves the backup directory for the given store directory.
// Precedence: explicit override, CRONDIR_BACKUP, crondir.backup_path from
// the config, <root>/backups.
func (c *Config) BackupDir(override, root string) string {
	if override != "" {
		return expandHome(override)
	}
	if env := os.Getenv(constants.EnvBackupDir); env != "" {
		return expandHome(env)
	}
	if c.Crondir.BackupPath != "" {
		return c.Crondir.BackupPath
	}
	return filepath.Join(root, constants.BackupDirName)
}
