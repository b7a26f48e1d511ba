// Package squall implements a Model-Update-View runtime for terminal
// user interfaces.
//
// A Program owns an application Model and drives it with messages:
// decoded terminal input, asynchronous command results and timer ticks
// all arrive on a single channel and are dispatched one at a time, so
// the model is only ever touched by one goroutine. Each dispatched
// message produces exactly one Update and one render. Deferred work is
// described by commands (Cmd) and shared context reaches asynchronous
// command bodies through the Extensions registry.
package squall

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/squall/backend"
	"github.com/dshills/squall/internal/runner"
	"github.com/dshills/squall/log"
)

// Program lifecycle states.
const (
	stateNotStarted int32 = iota
	stateRunning
	stateStopping
	stateStopped
)

// msgBuffer is the capacity of the message channel.
const msgBuffer = 100

// Program drives a Model. It owns the terminal backend and the current
// model snapshot, schedules commands, and restores the terminal on
// every exit path. A Program runs at most once.
type Program struct {
	model   Model
	backend backend.Backend
	ext     *Extensions
	logger  *log.Logger

	altScreen       bool
	mouse           bool
	baseCtx         context.Context
	shutdownTimeout time.Duration

	state    atomic.Int32
	msgs     chan Msg
	loopDone chan struct{}
	runner   *runner.Runner
	cancel   context.CancelFunc

	width, height int

	teardownOnce sync.Once
	teardownErr  error
}

// Option configures a Program.
type Option func(*Program)

// WithBackend sets the terminal backend. The default is the VT backend
// on stdin and stdout.
func WithBackend(b backend.Backend) Option {
	return func(p *Program) { p.backend = b }
}

// WithExtensions sets the registry handed to Async command bodies. The
// registry is sealed when Run starts.
func WithExtensions(ext *Extensions) Option {
	return func(p *Program) { p.ext = ext }
}

// WithAltScreen switches to the alternate screen for the duration of
// the run.
func WithAltScreen() Option {
	return func(p *Program) { p.altScreen = true }
}

// WithMouse enables mouse event reporting for the duration of the run.
func WithMouse() Option {
	return func(p *Program) { p.mouse = true }
}

// WithContext sets the parent context for the run. Cancelling it stops
// the program; Run then returns the context's error alongside the last
// model snapshot.
func WithContext(ctx context.Context) Option {
	return func(p *Program) { p.baseCtx = ctx }
}

// WithLogger sets the logger for runtime diagnostics. The default
// discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(p *Program) { p.logger = logger }
}

// WithShutdownTimeout gives in-flight asynchronous commands up to d to
// finish when the program stops. Their results are still discarded; the
// grace period only lets side effects complete. The default abandons
// them immediately.
func WithShutdownTimeout(d time.Duration) Option {
	return func(p *Program) { p.shutdownTimeout = d }
}

// NewProgram creates a program for the given model.
func NewProgram(model Model, opts ...Option) *Program {
	p := &Program{
		model:    model,
		ext:      NewExtensions(),
		logger:   log.Null(),
		baseCtx:  context.Background(),
		msgs:     make(chan Msg, msgBuffer),
		loopDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.backend == nil {
		p.backend = backend.NewVT()
	}
	return p
}

// Run starts the program and blocks until it stops. It returns the
// final model snapshot and the first error encountered: a SetupError
// when the terminal could not be acquired, a RenderError when a frame
// write failed, or the parent context's error when it was cancelled.
// A nil error means the program quit normally. The terminal is
// restored exactly once on every exit path; a panic in model code is
// re-raised after restoration.
func (p *Program) Run() (Model, error) {
	if !p.state.CompareAndSwap(stateNotStarted, stateRunning) {
		return nil, ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(p.baseCtx)
	p.cancel = cancel

	if err := p.setup(); err != nil {
		cancel()
		p.state.Store(stateStopped)
		return p.model, err
	}

	p.runner = runner.New(p.deliver, p.logger)
	p.logger = p.logger.WithComponent("program")
	if err := p.runner.Start(); err != nil {
		_ = p.backend.Shutdown()
		cancel()
		p.state.Store(stateStopped)
		return p.model, &SetupError{Stage: "runner", Err: err}
	}

	// From here on the terminal must be restored no matter how we
	// leave, including a panic in model code.
	defer func() {
		if r := recover(); r != nil {
			p.finish()
			panic(r)
		}
	}()

	p.ext.seal()

	width, height, err := p.backend.Size()
	if err != nil {
		p.finish()
		return p.model, &SetupError{Stage: "size", Err: err}
	}
	p.width, p.height = width, height

	go p.forwardEvents(ctx)

	p.logger.Debug("starting: %dx%d", width, height)

	model, initCmd := p.model.Init(InitInput{Width: width, Height: height})
	p.model = model

	runErr := p.eventLoop(ctx, initCmd)

	p.finish()
	if runErr != nil {
		return p.model, runErr
	}
	return p.model, p.teardownErr
}

// Send injects a message from outside the program: bridges, collector
// goroutines, tests. It is safe for concurrent use and never blocks
// after shutdown. Messages sent before Run or after the program has
// stopped are discarded.
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	if p.state.Load() != stateRunning {
		return
	}
	select {
	case p.msgs <- msg:
	case <-p.loopDone:
	}
}

// Quit asks the program to stop. Equivalent to sending a QuitMsg.
func (p *Program) Quit() {
	p.Send(QuitMsg{})
}

// IsRunning reports whether the event loop is accepting messages.
func (p *Program) IsRunning() bool {
	return p.state.Load() == stateRunning
}

// setup acquires the terminal. On failure every step already applied is
// rolled back so a half-configured terminal is never left behind.
func (p *Program) setup() error {
	if err := p.backend.Init(); err != nil {
		return &SetupError{Stage: "backend", Err: err}
	}
	if p.altScreen {
		if err := p.backend.EnterAltScreen(); err != nil {
			_ = p.backend.Shutdown()
			return &SetupError{Stage: "alt screen", Err: err}
		}
	}
	if p.mouse {
		if err := p.backend.EnableMouse(); err != nil {
			_ = p.backend.Shutdown()
			return &SetupError{Stage: "mouse", Err: err}
		}
	}
	if err := p.backend.HideCursor(); err != nil {
		_ = p.backend.Shutdown()
		return &SetupError{Stage: "cursor", Err: err}
	}
	return nil
}

// deliver feeds an asynchronous result into the message channel. It is
// the runner's sink; refusing a result makes the runner count it as
// dropped. Results arriving after the loop has stopped are refused.
func (p *Program) deliver(result any) bool {
	if p.state.Load() != stateRunning {
		return false
	}
	select {
	case p.msgs <- result:
		return true
	case <-p.loopDone:
		return false
	}
}

// finish tears the program down exactly once: stop accepting messages,
// stop the runner, restore the terminal. Called on the normal exit
// path, on late setup failures and from the panic handler.
func (p *Program) finish() {
	p.teardownOnce.Do(func() {
		p.state.Store(stateStopping)
		close(p.loopDone)

		if p.shutdownTimeout > 0 {
			// Drain: give running command bodies a grace period under a
			// still-live run context before cancelling it.
			stopCtx, stopCancel := context.WithTimeout(context.Background(), p.shutdownTimeout)
			if err := p.runner.Stop(stopCtx); err != nil {
				p.logger.Debug("shutdown drain expired: %v", err)
			}
			stopCancel()
			p.cancel()
		} else {
			// Abandon: cancel the run context so blocked command bodies
			// wake up, then let their goroutines finish on their own.
			p.cancel()
			stopCtx, stopCancel := context.WithCancel(context.Background())
			stopCancel()
			if err := p.runner.Stop(stopCtx); err != nil {
				p.logger.Debug("abandoning in-flight commands: %v", err)
			}
		}

		if n := p.drainPending(); n > 0 {
			p.logger.Debug("discarded %d undispatched messages", n)
		}

		p.teardownErr = p.backend.Shutdown()
		if p.teardownErr != nil {
			p.logger.Error("terminal restore failed: %v", p.teardownErr)
		}

		stats := p.runner.Stats()
		p.logger.Debug("stopped: %d commands run, %d results dropped", stats.Completed, stats.Dropped)

		p.state.Store(stateStopped)
	})
}

// drainPending empties the message channel after the loop has exited
// and reports how many messages were discarded.
func (p *Program) drainPending() int {
	n := 0
	for {
		select {
		case <-p.msgs:
			n++
		default:
			return n
		}
	}
}
