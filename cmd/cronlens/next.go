package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/logger"
)

var nextRunFlags runFlags

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next <expression>",
	Short: "List the upcoming runs of a cron expression",
	Example: `  cronlens next "0 0 1 1 *" --count 3
  cronlens next "30 2 * * *" --tz Europe/Berlin --from 2026-03-28T00:00:00Z`,
	Args: cobra.RangeArgs(1, 5),
	RunE: runNext,
}

func init() {
	nextRunFlags.register(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	expr, err := cron.Parse(expressionArg(args))
	if err != nil {
		return err
	}

	now := time.Now()
	from, count, err := nextRunFlags.resolve(app.cfg, now)
	if err != nil {
		return err
	}

	runs := cron.NewEstimator(app.cfg.Estimator.Horizon()).NextRuns(expr, from, count)
	if len(runs) < count {
		app.log.Warn("search horizon exhausted",
			logger.Field{Key: "expression", Value: expr.String()},
			logger.Field{Key: "found", Value: len(runs)},
			logger.Field{Key: "requested", Value: count})
	}

	r, err := newRenderer(cmd, now)
	if err != nil {
		return err
	}
	return r.Runs(expr.String(), runs)
}
