// Package timer keeps per-task stopwatches and flushes their seconds to the store.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/tally/internal/domain"
)

// TickInterval is the period between increments of a running timer.
const TickInterval = time.Second

// State is a point-in-time view of one timer.
type State struct {
	ID      domain.TaskID `json:"id"`
	Seconds int           `json:"seconds"`
	Running bool          `json:"running"`
}

// Display returns the elapsed time as MM:SS.
func (s State) Display() string {
	return domain.FormatDuration(s.Seconds)
}

type entry struct {
	cancel  func()
	seconds int
	gen     uint64
	running bool
}

// Registry owns every timer of the process.
// All state changes and flushes happen under one mutex; each registration
// carries a generation so a tick that fires after Stop or Reset is dropped.
type Registry struct {
	ticker  domain.Ticker
	sink    domain.TimeSink
	logger  domain.Logger
	timers  map[domain.TaskID]*entry
	policy  domain.FlushPolicy
	nextGen uint64
	mu      sync.Mutex
}

// NewRegistry creates an empty Registry.
// An invalid policy falls back to flushing on every tick.
func NewRegistry(ticker domain.Ticker, sink domain.TimeSink, logger domain.Logger, policy domain.FlushPolicy) *Registry {
	if !policy.Valid() {
		policy = domain.FlushEveryTick
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Registry{
		ticker: ticker,
		sink:   sink,
		logger: logger,
		policy: policy,
		timers: make(map[domain.TaskID]*entry),
	}
}

// Start moves the timer for id to Running.
// A timer seen for the first time starts from seed. Starting a running timer does nothing.
func (r *Registry) Start(id domain.TaskID, seed int) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.start(id, seed)
}

// Stop moves the timer for id to Stopped, keeping its seconds.
func (r *Registry) Stop(ctx context.Context, id domain.TaskID) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop(ctx, id)
}

// Toggle stops a running timer and starts a stopped one.
func (r *Registry) Toggle(ctx context.Context, id domain.TaskID, seed int) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.timers[id]; ok && e.running {
		return r.stop(ctx, id)
	}
	return r.start(id, seed), nil
}

// Reset stops the timer for id, zeroes it and flushes 0.
func (r *Registry) Reset(ctx context.Context, id domain.TaskID) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok {
		e = &entry{}
		r.timers[id] = e
	}
	r.halt(e)
	e.seconds = 0
	r.logger.Debug(id, "timer", "reset")

	return r.state(id, e), r.flush(ctx, id, 0)
}

// Forget cancels and drops the timer for id without flushing.
func (r *Registry) Forget(id domain.TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.timers[id]; ok {
		r.halt(e)
		delete(r.timers, id)
	}
}

// StopAll stops every running timer and flushes its final value.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, id := range r.sortedIDs() {
		e := r.timers[id]
		if !e.running {
			continue
		}
		r.halt(e)
		if err := r.flush(ctx, id, e.seconds); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns the state of the timer for id.
// Unknown ids report a stopped timer at zero.
func (r *Registry) Snapshot(id domain.TaskID) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(id, r.timers[id])
}

// Running returns the states of all running timers ordered by id.
func (r *Registry) Running() []State {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []State
	for _, id := range r.sortedIDs() {
		if e := r.timers[id]; e.running {
			out = append(out, r.state(id, e))
		}
	}
	return out
}

func (r *Registry) start(id domain.TaskID, seed int) State {
	e, ok := r.timers[id]
	if !ok {
		e = &entry{seconds: max(seed, 0)}
		r.timers[id] = e
	}
	if e.running {
		return r.state(id, e)
	}

	r.nextGen++
	gen := r.nextGen
	e.gen = gen
	e.running = true
	e.cancel = r.ticker.Every(TickInterval, func() { r.tick(id, gen) })

	r.logger.Debug(id, "timer", fmt.Sprintf("started at %s", domain.FormatDuration(e.seconds)))
	return r.state(id, e)
}

func (r *Registry) stop(ctx context.Context, id domain.TaskID) (State, error) {
	e, ok := r.timers[id]
	if !ok || !e.running {
		return r.state(id, e), nil
	}
	r.halt(e)
	r.logger.Debug(id, "timer", fmt.Sprintf("stopped at %s", domain.FormatDuration(e.seconds)))

	if r.policy == domain.FlushOnStop {
		return r.state(id, e), r.flush(ctx, id, e.seconds)
	}
	return r.state(id, e), nil
}

func (r *Registry) tick(id domain.TaskID, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.timers[id]
	if !ok || !e.running || e.gen != gen {
		return
	}
	e.seconds++

	if r.policy == domain.FlushEveryTick {
		_ = r.flush(context.Background(), id, e.seconds)
	}
}

// flush writes seconds to the sink. Must be called with r.mu held.
func (r *Registry) flush(ctx context.Context, id domain.TaskID, seconds int) error {
	err := r.sink.SetTimeSpent(ctx, id, seconds)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrTaskNotFound) {
		if e, ok := r.timers[id]; ok {
			r.halt(e)
			delete(r.timers, id)
		}
		r.logger.Warn(id, "timer", "task no longer exists; timer dropped")
		return err
	}

	r.logger.Error(id, "timer", fmt.Sprintf("flush %d seconds: %v", seconds, err))
	return err
}

// halt cancels the registration. Must be called with r.mu held.
func (r *Registry) halt(e *entry) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.running = false
	e.gen = 0
}

func (r *Registry) state(id domain.TaskID, e *entry) State {
	if e == nil {
		return State{ID: id}
	}
	return State{ID: id, Seconds: e.seconds, Running: e.running}
}

func (r *Registry) sortedIDs() []domain.TaskID {
	ids := make([]domain.TaskID, 0, len(r.timers))
	for id := range r.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
