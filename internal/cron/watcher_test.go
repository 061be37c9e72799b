package cron

import (
	"context"
	"testing"
	"time"

	"github.com/aatumaykin/cronlens/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopFire(string, time.Time) {}

func TestWatcher_AddRemove(t *testing.T) {
	w := NewWatcher(logger.Discard(), time.UTC)

	require.NoError(t, w.Add("nightly", MustParse("0 0 * * *"), noopFire))
	require.NoError(t, w.Add("hourly", MustParse("0 * * * *"), noopFire))

	err := w.Add("nightly", MustParse("0 1 * * *"), noopFire)
	assert.Error(t, err)

	assert.Error(t, w.Add("empty", nil, noopFire))

	entries := w.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "hourly", entries[0].Name)
	assert.Equal(t, "0 * * * *", entries[0].Expression)
	assert.Equal(t, "nightly", entries[1].Name)

	require.NoError(t, w.Remove("hourly"))
	assert.Error(t, w.Remove("hourly"))
	assert.Len(t, w.Entries(), 1)
}

func TestWatcher_StartStop(t *testing.T) {
	w := NewWatcher(logger.Discard(), time.UTC)
	require.NoError(t, w.Add("every-minute", MustParse("* * * * *"), noopFire))

	assert.Error(t, w.Stop(), "stop before start")

	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()), "double start")

	entries := w.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Next.After(time.Now().Add(-time.Second)))
	assert.Zero(t, entries[0].Next.Second())

	require.NoError(t, w.Stop())
	assert.Error(t, w.Stop(), "double stop")
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	w := NewWatcher(logger.Discard(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, w.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool {
		return w.ctx.Err() != nil
	}, time.Second, 10*time.Millisecond)
}

func TestWatcher_JobUsesExpressionSchedule(t *testing.T) {
	w := NewWatcher(logger.Discard(), time.UTC)
	expr := MustParse("*/5 * * * *")

	var (
		firedName string
		firedAt   time.Time
	)
	require.NoError(t, w.Add("five", expr, func(name string, at time.Time) {
		firedName = name
		firedAt = at
	}))

	id := w.entries["five"]
	entry := w.cron.Entry(id)
	require.True(t, entry.Valid())
	assert.Same(t, expr, entry.Schedule)

	entry.Job.Run()
	assert.Equal(t, "five", firedName)
	assert.Equal(t, time.UTC, firedAt.Location())
	assert.Zero(t, firedAt.Second())
	assert.Zero(t, firedAt.Nanosecond())
	assert.WithinDuration(t, time.Now(), firedAt, time.Minute)
}

func TestWatcher_ScheduledAtUsesEntryPrev(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	w := NewWatcher(logger.Discard(), loc)
	require.NoError(t, w.Add("daily", MustParse("0 9 * * *"), noopFire))

	// outside a scheduler run the entry has no Prev yet
	at := w.scheduledAt("daily")
	assert.Equal(t, loc, at.Location())
	assert.Zero(t, at.Second())
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	unknown := w.scheduledAt("missing")
	assert.Zero(t, unknown.Second())
}

func TestWatcher_StopWaitsForScheduler(t *testing.T) {
	w := NewWatcher(logger.Discard(), time.UTC)
	require.NoError(t, w.Add("tick", MustParse("* * * * *"), noopFire))
	require.NoError(t, w.Start(context.Background()))

	done := make(chan error, 1)
	go func() { done <- w.Stop() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	// the scheduler is stopped, so entries are read without the run loop
	assert.Len(t, w.Entries(), 1)
}
