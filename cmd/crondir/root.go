package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/cleanup"
	"github.com/aatumaykin/crondir/internal/config"
	"github.com/aatumaykin/crondir/internal/crondir"
	"github.com/aatumaykin/crondir/internal/logger"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crondir",
	Short: "crondir - manage crontab entries as a directory of snippets",
	Long: `crondir keeps cron snippets as files in a directory and merges them
into the user's crontab between two marker lines. Everything outside the
markers is left alone.`,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default $CRONDIR_CONFIG or ~/.config/crondir/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig reads the optional config file and builds the logger from it.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadOptional(config.ConfigPath(configPath))
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// crondirOptions resolves the store directory (flag, env, config) and the
// rest of the Crondir wiring from the config.
func crondirOptions(cfg *config.Config, log *logger.Logger, cronDir string) crondir.Options {
	dir := cfg.CronDir(cronDir)
	return crondir.Options{
		CronDir:   dir,
		BackupDir: cfg.BackupDir("", dir),
		Scheduler: cfg.Crondir.Scheduler,
		Logger:    log,
		Lock:      cfg.Lock.Enabled,
		Retention: cleanup.Config{
			Keep:       cfg.Backup.Keep,
			MaxAgeDays: cfg.Backup.MaxAgeDays,
		},
	}
}

// newCrondir is crondirOptions for commands that need no extra wiring.
func newCrondir(cfg *config.Config, log *logger.Logger, cronDir string) *crondir.Crondir {
	return crondir.New(crondirOptions(cfg, log, cronDir))
}
