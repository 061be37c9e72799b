package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/logger"
)

var describeRunFlags runFlags

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <expression>",
	Short: "Describe a cron expression in plain language",
	Long: `Describe prints a human-readable description of a five-field cron
expression together with its next runs. Invalid expressions are
reported as such instead of failing.`,
	Example: `  cronlens describe "*/15 9-17 * * 1-5"
  cronlens describe --lang zh "0 0 * * *"`,
	Args: cobra.RangeArgs(1, 5),
	RunE: runDescribe,
}

func init() {
	describeRunFlags.register(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	now := time.Now()
	from, count, err := describeRunFlags.resolve(app.cfg, now)
	if err != nil {
		return err
	}

	r, err := newRenderer(cmd, now)
	if err != nil {
		return err
	}

	expr := expressionArg(args)
	est := cron.NewEstimator(app.cfg.Estimator.Horizon())
	explanation := cron.Explain(expr, string(currentLocale()), from, count, est)

	app.log.Debug("described expression",
		logger.Field{Key: "expression", Value: explanation.Expression},
		logger.Field{Key: "type", Value: explanation.Result.Type},
		logger.Field{Key: "runs", Value: len(explanation.Next)})

	return r.Explanation(explanation)
}
