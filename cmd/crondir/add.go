package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/snippet"
)

var (
	addCronDir string
	addForce   bool
)

var addCmd = &cobra.Command{
	Use:   "add <source> [name]",
	Short: "Add a snippet file to the store",
	Long: `Copy SOURCE into the snippet directory as NAME (default: the base
name of SOURCE). Use - as SOURCE to read the snippet from stdin; NAME is
then required.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCronDir, "cron-dir", "", "snippet directory (default $CRONDIR_PATH or ~/.cron.d)")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false, "overwrite an existing snippet")
}

func runAdd(cmd *cobra.Command, args []string) error {
	source := args[0]
	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	c := newCrondir(cfg, log, addCronDir)

	var added snippet.Snippet
	if source == "-" {
		if name == "" {
			return errors.New(constants.MsgErrorStdinNeedsName)
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		added, err = c.AddString(name, addForce, string(data))
		if err != nil {
			return err
		}
	} else {
		added, err = c.AddFile(source, name, addForce)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), constants.MsgSnippetAdded, added.Name)
	return nil
}
