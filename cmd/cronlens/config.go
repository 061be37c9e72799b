package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/config"
	"github.com/aatumaykin/cronlens/internal/constants"
	"github.com/aatumaykin/cronlens/internal/messages"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate cronlens configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:         "validate [config-file]",
	Short:       "Validate configuration file",
	Long:        `Validate the configuration file and check for errors.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := resolveConfigPath()
		if len(args) > 0 {
			configPath = args[0]
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return errors.New(strings.TrimSpace(messages.FormatConfigLoadError(err)))
		}

		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Fprint(cmd.OutOrStdout(), messages.FormatValidationErrors(errs))
			return fmt.Errorf("%d configuration errors", len(errs))
		}

		fmt.Fprintf(cmd.OutOrStdout(), constants.MsgConfigValid, configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
