package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/config"
	"github.com/aatumaykin/cronlens/internal/constants"
	"github.com/aatumaykin/cronlens/internal/locale"
	"github.com/aatumaykin/cronlens/internal/logger"
	"github.com/aatumaykin/cronlens/internal/messages"
	"github.com/aatumaykin/cronlens/internal/render"
)

// skipSetup marks commands that run without loading the configuration
const skipSetup = "skip-setup"

var (
	rootConfigPath string
	rootLang       string
	rootOutput     string
	rootLogLevel   string
)

// app holds what every command needs once the configuration is loaded
var app struct {
	cfg *config.Config
	log *logger.Logger
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cronlens",
	Short: "cronlens - explain and preview cron expressions",
	Long: `cronlens validates five-field cron expressions, describes them in
English or Chinese and estimates when they fire next.

It can also watch an expression live or serve the same features
over a small JSON HTTP API.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootConfigPath, "config", "c", "", "path to config file (default $"+constants.EnvConfigPath+" or "+constants.DefaultConfigPath+")")
	flags.StringVarP(&rootLang, "lang", "l", "", "description language: en, zh")
	flags.StringVarP(&rootOutput, "output", "o", "text", "output format: text, json, yaml")
	flags.StringVar(&rootLogLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env and the configuration and initializes the logger
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	if err := config.LoadEnvOptional(constants.DefaultEnvPath); err != nil {
		return err
	}

	cfg, err := config.LoadOptional(resolveConfigPath())
	if err != nil {
		return errors.New(strings.TrimSpace(messages.FormatConfigLoadError(err)))
	}

	if rootLang != "" {
		cfg.Describe.Locale = string(locale.Resolve(rootLang))
	}
	if rootLogLevel != "" {
		cfg.Logging.Level = rootLogLevel
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return errors.New(strings.TrimSpace(messages.FormatValidationErrors(errs)))
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.cfg = cfg
	app.log = log
	return nil
}

// resolveConfigPath returns --config, then $CRONLENS_CONFIG, then the default path
func resolveConfigPath() string {
	if rootConfigPath != "" {
		return rootConfigPath
	}
	if path := os.Getenv(constants.EnvConfigPath); path != "" {
		return path
	}
	return constants.DefaultConfigPath
}

func currentLocale() locale.Locale {
	return locale.Resolve(app.cfg.Describe.Locale)
}

func newRenderer(cmd *cobra.Command, now time.Time) (*render.Renderer, error) {
	format, err := render.ParseFormat(rootOutput)
	if err != nil {
		return nil, err
	}
	return render.New(cmd.OutOrStdout(), format, currentLocale(), now), nil
}

// expressionArg joins the positional arguments, so both
// `cronlens next "*/5 * * * *"` and `cronlens next '*/5' '*' '*' '*' '*'` work.
func expressionArg(args []string) string {
	return strings.Join(args, " ")
}
