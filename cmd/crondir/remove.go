package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/constants"
)

var (
	removeCronDir string
	removeForce   bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a snippet from the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	removeCmd.Flags().StringVar(&removeCronDir, "cron-dir", "", "snippet directory (default $CRONDIR_PATH or ~/.cron.d)")
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "do not fail when the snippet does not exist")
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	c := newCrondir(cfg, log, removeCronDir)

	removed, err := c.Remove(name, removeForce)
	if err != nil {
		return err
	}

	if removed {
		fmt.Fprintf(cmd.OutOrStdout(), constants.MsgSnippetRemoved, name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), constants.MsgSnippetNotFound, name)
	}
	return nil
}
