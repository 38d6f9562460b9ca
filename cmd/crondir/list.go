package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/crondir/internal/constants"
	"github.com/aatumaykin/crondir/internal/snippet"
)

var (
	listCronDir string
	listOutput  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed snippets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listCronDir, "cron-dir", "", "snippet directory (default $CRONDIR_PATH or ~/.cron.d)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "text", "output format: text, json, yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	switch listOutput {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf(constants.MsgErrorUnknownOutput, listOutput)
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	c := newCrondir(cfg, log, listCronDir)

	snippets, err := c.List()
	if err != nil && !errors.Is(err, snippet.ErrSourceMissing) {
		return err
	}
	if snippets == nil {
		snippets = []snippet.Snippet{}
	}

	out := cmd.OutOrStdout()
	switch listOutput {
	case "json":
		data, err := json.MarshalIndent(snippets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snippets: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(snippets); err != nil {
			return fmt.Errorf("failed to marshal snippets: %w", err)
		}
		return enc.Close()
	default:
		if len(snippets) == 0 {
			fmt.Fprint(out, constants.MsgNoSnippets)
			return nil
		}
		for _, s := range snippets {
			fmt.Fprintln(out, s.Name)
		}
	}
	return nil
}
