package cron

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aatumaykin/cronlens/internal/logger"
	"github.com/robfig/cron/v3"
)

// compile-time check that *Expression can drive a robfig scheduler
var _ cron.Schedule = (*Expression)(nil)

// FireFunc is called each time a watched expression fires
type FireFunc func(name string, at time.Time)

// WatchEntry describes a registered expression
type WatchEntry struct {
	Name       string    `json:"name" yaml:"name"`
	Expression string    `json:"expression" yaml:"expression"`
	Next       time.Time `json:"next" yaml:"next"`
	Prev       time.Time `json:"prev,omitempty" yaml:"prev,omitempty"`
}

// Watcher runs parsed expressions on a robfig/cron scheduler and reports
// every firing through a callback
type Watcher struct {
	cron    *cron.Cron
	logger  *logger.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	mu      sync.RWMutex

	exprs   map[string]*Expression
	entries map[string]cron.EntryID // name -> cron.EntryID
}

// NewWatcher creates a watcher that evaluates expressions in loc
func NewWatcher(log *logger.Logger, loc *time.Location) *Watcher {
	if loc == nil {
		loc = time.Local
	}
	return &Watcher{
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  log,
		exprs:   make(map[string]*Expression),
		entries: make(map[string]cron.EntryID),
	}
}

// Start starts the underlying scheduler. It stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return fmt.Errorf("watcher already started")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.started = true

	w.cron.Start()
	w.logger.Info("cron watcher started", logger.Field{Key: "expressions", Value: len(w.exprs)})

	go func() {
		<-w.ctx.Done()
		<-w.cron.Stop().Done()
		w.logger.Info("cron watcher stopped")
	}()

	return nil
}

// Stop stops the watcher and waits for running jobs to finish
func (w *Watcher) Stop() error {
	w.mu.Lock()

	if !w.started {
		w.mu.Unlock()
		return fmt.Errorf("watcher not started")
	}
	cancel := w.cancel
	w.started = false
	w.mu.Unlock()

	// running jobs take w.mu, so wait for them without holding it
	cancel()
	<-w.cron.Stop().Done()
	return nil
}

// Add registers expr under name. fire is called from the scheduler goroutine.
func (w *Watcher) Add(name string, expr *Expression, fire FireFunc) error {
	if expr == nil {
		return fmt.Errorf("nil expression for %q", name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.entries[name]; exists {
		return fmt.Errorf("expression already registered: %s", name)
	}

	entryID := w.cron.Schedule(expr, cron.FuncJob(func() {
		at := w.scheduledAt(name)
		w.logger.Debug("cron expression fired",
			logger.Field{Key: "name", Value: name},
			logger.Field{Key: "expression", Value: expr.String()})
		fire(name, at)
	}))

	w.exprs[name] = expr
	w.entries[name] = entryID

	w.logger.Info("cron expression added",
		logger.Field{Key: "name", Value: name},
		logger.Field{Key: "expression", Value: expr.String()},
		logger.Field{Key: "entry_id", Value: entryID})

	return nil
}

// Remove unregisters the expression with the given name
func (w *Watcher) Remove(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entryID, exists := w.entries[name]
	if !exists {
		return fmt.Errorf("expression not found: %s", name)
	}

	w.cron.Remove(entryID)
	delete(w.entries, name)
	delete(w.exprs, name)

	w.logger.Info("cron expression removed",
		logger.Field{Key: "name", Value: name},
		logger.Field{Key: "entry_id", Value: entryID})

	return nil
}

// Entries returns the registered expressions sorted by name
func (w *Watcher) Entries() []WatchEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := make([]WatchEntry, 0, len(w.entries))
	for name, id := range w.entries {
		entry := w.cron.Entry(id)
		result = append(result, WatchEntry{
			Name:       name,
			Expression: w.exprs[name].String(),
			Next:       entry.Next,
			Prev:       entry.Prev,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// scheduledAt returns the time the current firing of name was scheduled for.
// Outside a scheduler run it falls back to the current minute.
func (w *Watcher) scheduledAt(name string) time.Time {
	loc := w.location()

	w.mu.RLock()
	id, ok := w.entries[name]
	w.mu.RUnlock()

	if ok {
		if prev := w.cron.Entry(id).Prev; !prev.IsZero() {
			return prev.In(loc)
		}
	}
	return time.Now().In(loc).Truncate(time.Minute)
}

func (w *Watcher) location() *time.Location {
	return w.cron.Location()
}
