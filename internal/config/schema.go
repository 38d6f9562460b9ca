// Package config provides configuration loading and validation for crondir.
// It supports an optional TOML configuration file with environment variable
// expansion, default values and validation.
//
// Configuration structure:
//   - [crondir]: snippet store, backup directory and scheduler binary
//   - [logging]: logging level, format and output
//   - [backup]: backup retention
//   - [lock]: advisory locking around build
//   - [metrics]: Prometheus textfile export
//   - [watch]: automatic rebuild settings
//
// Environment variables:
// Values can reference environment variables using ${VAR} or ${VAR:default} syntax.
// CRONDIR_PATH and CRONDIR_BACKUP take precedence over the file, command line
// flags take precedence over both.
package config

import (
	"time"
)

// Config represents the main application configuration.
type Config struct {
	Crondir CrondirConfig `toml:"crondir"`
	Logging LoggingConfig `toml:"logging"`
	Backup  BackupConfig  `toml:"backup"`
	Lock    LockConfig    `toml:"lock"`
	Metrics MetricsConfig `toml:"metrics"`
	Watch   WatchConfig   `toml:"watch"`
}

// CrondirConfig представляет конфигурацию хранилища сниппетов
type CrondirConfig struct {
	Path       string `toml:"path"`
	BackupPath string `toml:"backup_path"`
	Scheduler  string `toml:"scheduler"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// BackupConfig представляет политику хранения резервных копий
type BackupConfig struct {
	Keep       int   `toml:"keep"`         // 0 = хранить все
	MaxAgeDays int64 `toml:"max_age_days"` // 0 = без ограничения по возрасту
}

// LockConfig представляет конфигурацию advisory lock
type LockConfig struct {
	Enabled bool `toml:"enabled"`
}

// MetricsConfig представляет конфигурацию экспорта метрик
type MetricsConfig struct {
	// Textfile is the node_exporter textfile collector target. Empty disables export.
	Textfile string `toml:"textfile"`
}

// WatchConfig представляет конфигурацию команды watch
type WatchConfig struct {
	Debounce string `toml:"debounce"`
}

// DebounceDuration returns the parsed debounce interval.
// Validate reports unparsable values; here they fall back to zero.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0
	}
	return d
}
