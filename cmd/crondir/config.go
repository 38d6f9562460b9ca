package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aatumaykin/crondir/internal/config"
	"github.com/aatumaykin/crondir/internal/constants"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and inspect the crondir configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file and check for errors.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigPath(configPath)
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Fprint(out, constants.MsgConfigValidationError)
			for _, e := range errs {
				fmt.Fprintf(out, constants.MsgConfigValidatePrefix, e)
			}
			return fmt.Errorf("%s: %d validation error(s)", path, len(errs))
		}

		fmt.Fprint(out, constants.MsgConfigValid)
		return nil
	},
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults and environment variables
have been applied. A missing config file shows the defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOptional(config.ConfigPath(configPath))
		if err != nil {
			return err
		}
		cfg.Crondir.Path = cfg.CronDir("")
		cfg.Crondir.BackupPath = cfg.BackupDir("", cfg.Crondir.Path)

		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}
