// Package runner executes asynchronous tasks for the event loop and funnels
// their results back through a single sink.
package runner

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/squall/log"
)

var (
	// ErrAlreadyRunning is returned when Start is called twice.
	ErrAlreadyRunning = errors.New("runner already running")
	// ErrNotRunning is returned when submitting to a stopped runner.
	ErrNotRunning = errors.New("runner not running")
)

// Task is a unit of asynchronous work. A nil result means the task has
// nothing to report.
type Task func(ctx context.Context) any

// Sink receives task results. It reports whether the result was accepted;
// rejected results are counted as dropped.
type Sink func(result any) bool

// Runner runs each task on its own goroutine. Tasks may sleep for long
// periods (timers, watchers), so a fixed worker pool would let them starve
// one another; goroutines are the pool.
type Runner struct {
	sink   Sink
	logger *log.Logger

	running atomic.Bool
	wg      sync.WaitGroup

	submitted atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	dropped   atomic.Uint64
	inFlight  atomic.Int64
}

// Stats is a snapshot of runner counters.
type Stats struct {
	// Submitted is the total number of tasks accepted.
	Submitted uint64

	// Completed is the number of tasks that finished without panicking.
	Completed uint64

	// Panicked is the number of tasks that panicked.
	Panicked uint64

	// Dropped is the number of results the sink rejected.
	Dropped uint64

	// InFlight is the number of tasks currently executing.
	InFlight int64
}

// New creates a runner delivering results to sink. A nil logger disables
// task logging.
func New(sink Sink, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Null()
	}
	return &Runner{
		sink:   sink,
		logger: logger.WithComponent("runner"),
	}
}

// Start marks the runner as accepting tasks.
func (r *Runner) Start() error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return nil
}

// Submit schedules a task. The context is passed through to the task;
// cancelling it is the task's concern, not the runner's.
func (r *Runner) Submit(ctx context.Context, task Task) error {
	r.wg.Add(1)
	if !r.running.Load() {
		r.wg.Done()
		return ErrNotRunning
	}

	r.submitted.Add(1)
	r.inFlight.Add(1)
	go r.execute(ctx, task, uuid.NewString())
	return nil
}

// Stop refuses new tasks and waits for in-flight tasks to finish or the
// context to expire. Tasks still running after an expired context keep
// their goroutines; their results go to the sink, which decides whether
// anyone is still listening.
func (r *Runner) Stop(ctx context.Context) error {
	if !r.running.Swap(false) {
		return ErrNotRunning
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning returns true if the runner accepts tasks.
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// Stats returns current counters.
func (r *Runner) Stats() Stats {
	return Stats{
		Submitted: r.submitted.Load(),
		Completed: r.completed.Load(),
		Panicked:  r.panicked.Load(),
		Dropped:   r.dropped.Load(),
		InFlight:  r.inFlight.Load(),
	}
}

// execute runs one task with panic recovery. A panicking task is logged
// with its stack and produces no result.
func (r *Runner) execute(ctx context.Context, task Task, id string) {
	defer r.wg.Done()
	defer r.inFlight.Add(-1)

	defer func() {
		if rec := recover(); rec != nil {
			r.panicked.Add(1)
			r.logger.WithField("job", id).Error("task panic: %v\n%s", rec, debug.Stack())
		}
	}()

	r.logger.WithField("job", id).Debug("task started")
	result := task(ctx)
	r.completed.Add(1)

	if result == nil {
		r.logger.WithField("job", id).Debug("task completed with no result")
		return
	}
	if !r.sink(result) {
		r.dropped.Add(1)
		r.logger.WithField("job", id).Debug("task result dropped")
		return
	}
	r.logger.WithField("job", id).Debug("task completed")
}
