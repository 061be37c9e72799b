package cron

import "time"

const (
	// DefaultRunCount is the number of upcoming runs returned when count <= 0
	DefaultRunCount = 5

	// DefaultHorizon bounds the search for upcoming runs. Four years covers
	// every leap-year and weekday combination, so anything not found by then never fires.
	DefaultHorizon = 4 * 366 * 24 * time.Hour

	// maxPrealloc caps the initial capacity of a NextRuns result
	maxPrealloc = DefaultRunCount * 10
)

// Estimator computes upcoming fire times within a bounded horizon.
type Estimator struct {
	Horizon time.Duration
}

// NewEstimator creates an estimator; a non-positive horizon means DefaultHorizon
func NewEstimator(horizon time.Duration) Estimator {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return Estimator{Horizon: horizon}
}

// NextRuns returns up to count upcoming fire times strictly after from, using DefaultHorizon.
func NextRuns(expr *Expression, from time.Time, count int) []time.Time {
	return NewEstimator(DefaultHorizon).NextRuns(expr, from, count)
}

// NextRuns returns up to count fire times strictly after from, in strictly
// increasing order and in from's location. The result is shorter than count
// (possibly empty) when the horizon is exhausted first.
func (est Estimator) NextRuns(expr *Expression, from time.Time, count int) []time.Time {
	if expr == nil {
		return nil
	}
	if count <= 0 {
		count = DefaultRunCount
	}
	horizon := est.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	limit := from.Add(horizon)
	runs := make([]time.Time, 0, min(count, maxPrealloc))

	t := from
	for len(runs) < count {
		next, ok := expr.nextAfter(t, limit)
		if !ok {
			break
		}
		runs = append(runs, next)
		t = next
	}

	return runs
}

// Next returns the first fire time strictly after t, or the zero time if
// there is none within DefaultHorizon. It satisfies robfig's cron.Schedule.
func (e *Expression) Next(t time.Time) time.Time {
	next, ok := e.nextAfter(t, t.Add(DefaultHorizon))
	if !ok {
		return time.Time{}
	}
	return next
}

// nextAfter scans forward from the first whole minute after t. Months, days
// and hours that cannot match are skipped as a whole.
func (e *Expression) nextAfter(t, limit time.Time) (time.Time, bool) {
	loc := t.Location()
	cur := t.Truncate(time.Minute).Add(time.Minute)

	for !cur.After(limit) {
		if !e.Month.Matches(int(cur.Month())) {
			cur = time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, loc)
			continue
		}
		if !e.dayMatches(cur) {
			cur = time.Date(cur.Year(), cur.Month(), cur.Day()+1, 0, 0, 0, 0, loc)
			continue
		}
		if !e.Hour.Matches(cur.Hour()) {
			next := time.Date(cur.Year(), cur.Month(), cur.Day(), cur.Hour()+1, 0, 0, 0, loc)
			if !next.After(cur) {
				// repeated wall-clock hour at a DST fall-back
				next = cur.Truncate(time.Hour).Add(time.Hour)
			}
			cur = next
			continue
		}
		if !e.Minute.Matches(cur.Minute()) {
			cur = cur.Add(time.Minute)
			continue
		}
		if cur.After(t) {
			return cur, true
		}
		cur = cur.Add(time.Minute)
	}

	return time.Time{}, false
}
