package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/crondir"
	"github.com/aatumaykin/crondir/internal/watch"
)

var (
	watchCronDir  string
	watchNoBackup bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the crontab whenever the snippet directory changes",
	Long: `Build once, then watch the snippet directory and rebuild after every
change until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchCronDir, "cron-dir", "", "snippet directory (default $CRONDIR_PATH or ~/.cron.d)")
	watchCmd.Flags().BoolVar(&watchNoBackup, "no-backup", false, "do not back up the crontab before each rebuild")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before rebuilding (default watch.debounce from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	c := newCrondir(cfg, log, watchCronDir)

	// The directory must exist before it can be watched.
	if _, err := c.List(); err != nil {
		return err
	}

	debounce := watchDebounce
	if debounce <= 0 {
		debounce = cfg.Watch.DebounceDuration()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	rebuild := func(ctx context.Context) error {
		// Pick up edits made to the crontab since the last rebuild.
		result, err := c.Update(ctx, crondir.BuildOptions{NoBackup: watchNoBackup, Refresh: true})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, constants.MsgWatchRebuilt, result.Snippets)
		return nil
	}

	fmt.Fprintf(out, constants.MsgWatchStarted, c.Path())
	return watch.New(c.Path(), debounce, rebuild, log).Run(ctx)
}
