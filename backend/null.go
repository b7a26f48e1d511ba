package backend

import "sync"

// Null is a no-op backend for tests and headless use. It records rendered
// frames and operation calls in order, accepts injected events, and can be
// scripted to fail individual operations.
type Null struct {
	// Scriptable failures. Zero values mean success. RenderErrOn selects
	// the 1-based render call that fails; zero fails every call once
	// RenderErr is set.
	InitErr     error
	ShutdownErr error
	SizeErr     error
	RenderErr   error
	RenderErrOn int
	AltErr      error
	MouseErr    error
	CursorErr   error

	mu        sync.Mutex
	width     int
	height    int
	frames    []string
	ops       []string
	renders   int
	alt       bool
	mouse     bool
	cursor    bool
	shutdowns int
	events    chan Event
	closed    bool
}

// NewNull creates a null backend with the given dimensions.
func NewNull(width, height int) *Null {
	return &Null{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *Null) record(op string) {
	b.ops = append(b.ops, op)
}

func (b *Null) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("init")
	return b.InitErr
}

func (b *Null) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("shutdown")
	b.shutdowns++
	if !b.closed {
		b.closed = true
		close(b.events)
	}
	return b.ShutdownErr
}

func (b *Null) Size() (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.SizeErr != nil {
		return 0, 0, b.SizeErr
	}
	return b.width, b.height, nil
}

func (b *Null) Events() <-chan Event {
	return b.events
}

func (b *Null) Render(frame string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("render")
	b.renders++
	if b.RenderErr != nil && (b.RenderErrOn == 0 || b.RenderErrOn == b.renders) {
		return b.RenderErr
	}
	b.frames = append(b.frames, frame)
	return nil
}

func (b *Null) EnterAltScreen() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("enter-alt")
	if b.AltErr != nil {
		return b.AltErr
	}
	b.alt = true
	return nil
}

func (b *Null) LeaveAltScreen() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("leave-alt")
	if b.AltErr != nil {
		return b.AltErr
	}
	b.alt = false
	return nil
}

func (b *Null) EnableMouse() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("enable-mouse")
	if b.MouseErr != nil {
		return b.MouseErr
	}
	b.mouse = true
	return nil
}

func (b *Null) DisableMouse() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("disable-mouse")
	if b.MouseErr != nil {
		return b.MouseErr
	}
	b.mouse = false
	return nil
}

func (b *Null) ShowCursor() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("show-cursor")
	if b.CursorErr != nil {
		return b.CursorErr
	}
	b.cursor = true
	return nil
}

func (b *Null) HideCursor() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record("hide-cursor")
	if b.CursorErr != nil {
		return b.CursorErr
	}
	b.cursor = false
	return nil
}

// Inject queues an event as if the terminal produced it. It is a no-op
// after Shutdown.
func (b *Null) Inject(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
	}
}

// SetSize changes the reported dimensions and queues a resize event.
func (b *Null) SetSize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	closed := b.closed
	b.mu.Unlock()

	if !closed {
		b.Inject(Event{Type: EventResize, Width: width, Height: height})
	}
}

// Frames returns all rendered frames in order.
func (b *Null) Frames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.frames))
	copy(out, b.frames)
	return out
}

// LastFrame returns the most recent frame, or "" when none was rendered.
func (b *Null) LastFrame() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.frames) == 0 {
		return ""
	}
	return b.frames[len(b.frames)-1]
}

// Ops returns the recorded operation calls in order.
func (b *Null) Ops() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.ops))
	copy(out, b.ops)
	return out
}

// Shutdowns returns how many times Shutdown was called.
func (b *Null) Shutdowns() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdowns
}

// AltScreen reports whether the alternate screen is active.
func (b *Null) AltScreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alt
}

// MouseEnabled reports whether mouse reporting is active.
func (b *Null) MouseEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouse
}
