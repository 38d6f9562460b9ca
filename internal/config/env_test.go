package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("default", func(t *testing.T) {
		t.Setenv("CRONDIR_PATH", "")
		assert.Equal(t, filepath.Join(home, ".cron.d"), Default().CronDir(""))
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv("CRONDIR_PATH", "/custom/cron/dir")
		assert.Equal(t, "/custom/cron/dir", Default().CronDir(""))
	})

	t.Run("override wins over env var", func(t *testing.T) {
		t.Setenv("CRONDIR_PATH", "/custom/cron/dir")
		assert.Equal(t, "/explicit", Default().CronDir("/explicit"))
	})

	t.Run("config file value", func(t *testing.T) {
		t.Setenv("CRONDIR_PATH", "")
		cfg := Default()
		cfg.Crondir.Path = "/from/config"
		assert.Equal(t, "/from/config", cfg.CronDir(""))
	})
}

func TestBackupDir(t *testing.T) {
	root := "/some/root"

	t.Run("default", func(t *testing.T) {
		t.Setenv("CRONDIR_BACKUP", "")
		assert.Equal(t, filepath.Join(root, "backups"), Default().BackupDir("", root))
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv("CRONDIR_BACKUP", "/custom/backup/dir")
		assert.Equal(t, "/custom/backup/dir", Default().BackupDir("", root))
	})

	t.Run("override wins over env var", func(t *testing.T) {
		t.Setenv("CRONDIR_BACKUP", "/custom/backup/dir")
		assert.Equal(t, "/explicit", Default().BackupDir("/explicit", root))
	})

	t.Run("config file value", func(t *testing.T) {
		t.Setenv("CRONDIR_BACKUP", "")
		cfg := Default()
		cfg.Crondir.BackupPath = "/from/config"
		assert.Equal(t, "/from/config", cfg.BackupDir("", root))
	})
}

func TestConfigPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("CRONDIR_CONFIG", "")
	assert.Equal(t, filepath.Join(home, ".config", "crondir", "config.toml"), ConfigPath(""))

	t.Setenv("CRONDIR_CONFIG", "/etc/crondir.toml")
	assert.Equal(t, "/etc/crondir.toml", ConfigPath(""))
	assert.Equal(t, "/tmp/flag.toml", ConfigPath("/tmp/flag.toml"))
}
