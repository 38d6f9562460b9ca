package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/crondir"
	"github.com/aatumaykin/crondir/internal/logger"
	"github.com/aatumaykin/crondir/internal/metrics"
)

var (
	buildCronDir     string
	buildNoBackup    bool
	buildBackupPath  string
	buildDryRun      bool
	buildLock        bool
	buildMetricsFile string
	buildKeepBackups int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Merge the snippets into the crontab and install it",
	Long: `Back up the current crontab, replace the managed block with the
snippets from the store directory and install the result.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildCronDir, "cron-dir", "", "snippet directory (default $CRONDIR_PATH or ~/.cron.d)")
	buildCmd.Flags().BoolVar(&buildNoBackup, "no-backup", false, "do not back up the current crontab")
	buildCmd.Flags().StringVar(&buildBackupPath, "backup-path", "", "backup directory (default $CRONDIR_BACKUP or <cron-dir>/backups)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the resulting crontab without installing it")
	buildCmd.Flags().BoolVar(&buildLock, "lock", false, "hold a lock file in the snippet directory while building")
	buildCmd.Flags().StringVar(&buildMetricsFile, "metrics-file", "", "write Prometheus metrics to this .prom file")
	buildCmd.Flags().IntVar(&buildKeepBackups, "keep-backups", 0, "keep only the N newest backups (default backup.keep from config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	metricsFile := buildMetricsFile
	if metricsFile == "" {
		metricsFile = cfg.Metrics.Textfile
	}
	var m *metrics.Metrics
	if metricsFile != "" && !buildDryRun {
		m = metrics.New()
	}

	opts := crondirOptions(cfg, log, buildCronDir)
	opts.Lock = opts.Lock || buildLock
	opts.Metrics = m
	if buildKeepBackups > 0 {
		opts.Retention.Keep = buildKeepBackups
	}
	c := crondir.New(opts)
	result, err := c.Update(cmd.Context(), crondir.BuildOptions{
		NoBackup:   buildNoBackup,
		BackupPath: buildBackupPath,
		DryRun:     buildDryRun,
	})

	// Failed builds are exported too.
	if m != nil {
		if werr := m.WriteTextfile(metricsFile); werr != nil {
			log.Warn("failed to write metrics", logger.Field{Key: "file", Value: metricsFile}, logger.Field{Key: "error", Value: werr})
		}
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if buildDryRun {
		fmt.Fprint(out, result.Crontab)
		return nil
	}

	switch {
	case result.BackupPath != "":
		fmt.Fprintf(cmd.ErrOrStderr(), constants.MsgBackupWritten, result.BackupPath)
	case !buildNoBackup:
		fmt.Fprint(cmd.ErrOrStderr(), constants.MsgBackupSkipped)
	}
	fmt.Fprintf(out, constants.MsgBuildDone, c.Path())
	return nil
}
