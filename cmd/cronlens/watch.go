package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/constants"
	"github.com/aatumaykin/cronlens/internal/cron"
	"github.com/aatumaykin/cronlens/internal/logger"
)

var (
	watchName string
	watchTZ   string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <expression>",
	Short: "Print a line every time a cron expression fires",
	Long: `Watch schedules the expression on a live cron scheduler and prints
a line each time it fires, until interrupted.`,
	Args: cobra.RangeArgs(1, 5),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchName, "name", "", "label printed with each firing (default the expression)")
	watchCmd.Flags().StringVar(&watchTZ, "tz", "", "IANA timezone (default estimator.timezone)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	expr, err := cron.Parse(expressionArg(args))
	if err != nil {
		return err
	}

	est := app.cfg.Estimator
	if watchTZ != "" {
		est.Timezone = watchTZ
	}
	loc, err := est.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", est.Timezone, err)
	}

	if len(cron.NewEstimator(est.Horizon()).NextRuns(expr, time.Now().In(loc), 1)) == 0 {
		return fmt.Errorf(constants.MsgWatchNoRuns, expr.String())
	}

	name := watchName
	if name == "" {
		name = expr.String()
	}

	r, err := newRenderer(cmd, time.Time{})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cron.NewWatcher(app.log, loc)
	err = w.Add(name, expr, func(name string, at time.Time) {
		if err := r.Fire(name, at); err != nil {
			app.log.Error("failed to print firing", err, logger.Field{Key: "name", Value: name})
		}
	})
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), constants.MsgWatchStarted, name, loc)

	<-ctx.Done()
	return w.Stop()
}

// contextOf returns the command context, or Background when it runs without one
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
