package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/logger"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandEnvVars(&cfg)

	return &cfg, nil
}

// LoadOptional загружает конфигурацию, если файл существует.
// Отсутствующий файл не является ошибкой: возвращается Default().
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	expandEnvVars(cfg)
	return cfg
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errs []error

	if c.Crondir.Path == "" {
		errs = append(errs, fmt.Errorf("crondir.path is required"))
	}

	if c.Crondir.Scheduler == "" {
		errs = append(errs, fmt.Errorf("crondir.scheduler is required"))
	} else if strings.ContainsAny(c.Crondir.Scheduler, " \t") {
		errs = append(errs, fmt.Errorf("crondir.scheduler must be a single executable, got %q", c.Crondir.Scheduler))
	}

	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	if c.Backup.Keep < 0 {
		errs = append(errs, fmt.Errorf("backup.keep cannot be negative (got %d)", c.Backup.Keep))
	}
	if c.Backup.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("backup.max_age_days cannot be negative (got %d)", c.Backup.MaxAgeDays))
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		errs = append(errs, fmt.Errorf("invalid watch.debounce: %w", err))
	} else if d < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce cannot be negative (got %s)", c.Watch.Debounce))
	}

	if c.Metrics.Textfile != "" && !strings.HasSuffix(c.Metrics.Textfile, ".prom") {
		errs = append(errs, fmt.Errorf("metrics.textfile must have a .prom extension (got %s)", c.Metrics.Textfile))
	}

	return errs
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Crondir.Path == "" {
		c.Crondir.Path = constants.DefaultCronDir
	}
	if c.Crondir.Scheduler == "" {
		c.Crondir.Scheduler = constants.DefaultScheduler
	}

	if c.Logging.Level == "" {
		c.Logging.Level = constants.DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = constants.DefaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = constants.DefaultLogOutput
	}

	if c.Watch.Debounce == "" {
		c.Watch.Debounce = constants.DefaultWatchDebounce.String()
	}
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) {
	c.Crondir.Path = expandHome(expandEnv(c.Crondir.Path))
	c.Crondir.BackupPath = expandHome(expandEnv(c.Crondir.BackupPath))
	c.Crondir.Scheduler = expandEnv(c.Crondir.Scheduler)
	c.Logging.Output = expandEnv(c.Logging.Output)
	c.Metrics.Textfile = expandHome(expandEnv(c.Metrics.Textfile))
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if key, defaultVal, ok := strings.Cut(content, ":"); ok {
		if val := os.Getenv(key); val != "" {
			return val + s[end+1:]
		}
		return defaultVal + s[end+1:]
	}

	// Без значения по умолчанию
	return os.Getenv(content) + s[end+1:]
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
