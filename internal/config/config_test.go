package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()

	tests := []struct {
		name string
		want string
		got  string
	}{
		{"crondir path", filepath.Join(home, ".cron.d"), cfg.Crondir.Path},
		{"scheduler", "crontab", cfg.Crondir.Scheduler},
		{"backup path", "", cfg.Crondir.BackupPath},
		{"logging level", "warn", cfg.Logging.Level},
		{"logging format", "text", cfg.Logging.Format},
		{"logging output", "stderr", cfg.Logging.Output},
		{"watch debounce", "500ms", cfg.Watch.Debounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.False(t, cfg.Lock.Enabled)
	assert.Empty(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	content := `
[crondir]
path = "/srv/cron.d"
backup_path = "${CRONDIR_TEST_BACKUP:/var/backups/crondir}"
scheduler = "fcrontab"

[logging]
level = "debug"
format = "json"

[backup]
keep = 14
max_age_days = 90

[lock]
enabled = true

[metrics]
textfile = "/var/lib/node_exporter/crondir.prom"

[watch]
debounce = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cron.d", cfg.Crondir.Path)
	assert.Equal(t, "/var/backups/crondir", cfg.Crondir.BackupPath)
	assert.Equal(t, "fcrontab", cfg.Crondir.Scheduler)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, BackupConfig{Keep: 14, MaxAgeDays: 90}, cfg.Backup)
	assert.True(t, cfg.Lock.Enabled)
	assert.Equal(t, "/var/lib/node_exporter/crondir.prom", cfg.Metrics.Textfile)
	assert.Equal(t, 2*time.Second, cfg.Watch.DebounceDuration())
	assert.Empty(t, cfg.Validate())
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CRONDIR_TEST_BACKUP", "/mnt/backups")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[crondir]
backup_path = "${CRONDIR_TEST_BACKUP:/var/backups/crondir}"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/backups", cfg.Crondir.BackupPath)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[crondir\npath = "), 0644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing path", mutate: func(c *Config) { c.Crondir.Path = "" }, wantErr: true},
		{name: "missing scheduler", mutate: func(c *Config) { c.Crondir.Scheduler = "" }, wantErr: true},
		{name: "scheduler with arguments", mutate: func(c *Config) { c.Crondir.Scheduler = "crontab -u root" }, wantErr: true},
		{name: "invalid level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: true},
		{name: "invalid format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "missing output", mutate: func(c *Config) { c.Logging.Output = "" }, wantErr: true},
		{name: "invalid debounce", mutate: func(c *Config) { c.Watch.Debounce = "soon" }, wantErr: true},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.Debounce = "-1s" }, wantErr: true},
		{name: "metrics file without .prom", mutate: func(c *Config) { c.Metrics.Textfile = "/tmp/crondir.txt" }, wantErr: true},
		{name: "negative backup keep", mutate: func(c *Config) { c.Backup.Keep = -1 }, wantErr: true},
		{name: "negative backup age", mutate: func(c *Config) { c.Backup.MaxAgeDays = -7 }, wantErr: true},
		{name: "backup retention", mutate: func(c *Config) { c.Backup = BackupConfig{Keep: 10, MaxAgeDays: 30} }},
		{name: "metrics file", mutate: func(c *Config) { c.Metrics.Textfile = "/tmp/crondir.prom" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CRONDIR_TEST_SET", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain string", "/srv/cron.d", "/srv/cron.d"},
		{"set variable", "${CRONDIR_TEST_SET}", "value"},
		{"set variable with default", "${CRONDIR_TEST_SET:other}", "value"},
		{"unset variable with default", "${CRONDIR_TEST_UNSET:fallback}", "fallback"},
		{"unset variable", "${CRONDIR_TEST_UNSET}", ""},
		{"suffix is kept", "${CRONDIR_TEST_SET}/cron.d", "value/cron.d"},
		{"unterminated", "${CRONDIR_TEST_SET", "${CRONDIR_TEST_SET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cron.d"), expandHome("~/.cron.d"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/etc/cron.d", expandHome("/etc/cron.d"))
	assert.Equal(t, "~user/cron", expandHome("~user/cron"))
}
