package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronlens/internal/config"
)

// runFlags are shared by the commands that estimate upcoming runs
type runFlags struct {
	count int
	from  string
	tz    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of upcoming runs (default estimator.count)")
	cmd.Flags().StringVar(&f.from, "from", "", "start time in RFC3339 (default now)")
	cmd.Flags().StringVar(&f.tz, "tz", "", "IANA timezone (default estimator.timezone)")
}

// resolve returns the start time and run count to estimate with
func (f *runFlags) resolve(cfg *config.Config, now time.Time) (time.Time, int, error) {
	est := cfg.Estimator
	if f.tz != "" {
		est.Timezone = f.tz
	}
	loc, err := est.Location()
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid timezone %q: %w", est.Timezone, err)
	}

	from := now.In(loc)
	if f.from != "" {
		parsed, err := time.Parse(time.RFC3339, f.from)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("invalid --from: %w", err)
		}
		from = parsed.In(loc)
	}

	count := f.count
	if count <= 0 {
		count = cfg.Estimator.Count
	}
	if count > cfg.Server.MaxRunCount {
		return time.Time{}, 0, fmt.Errorf("--count %d exceeds maximum %d (server.max_run_count)", count, cfg.Server.MaxRunCount)
	}
	return from, count, nil
}
