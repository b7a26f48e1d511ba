package backend

import (
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// VT implements Backend with raw ANSI escape output on a tty. It is the
// backend for inline programs: frames repaint in place above the shell
// prompt and scrollback is preserved. It also supports the alternate screen
// for programs that opt in.
type VT struct {
	in    io.Reader
	out   io.Writer
	inFd  int
	outFd int

	// Seams for tests; production values come from x/term.
	makeRaw   func(fd int) (*term.State, error)
	restoreFn func(fd int, state *term.State) error
	sizeFn    func(fd int) (int, int, error)

	events    chan Event
	quit      chan struct{}
	winch     chan os.Signal
	producers sync.WaitGroup

	mu        sync.Mutex
	oldState  *term.State
	prevFrame string
	altScreen bool
	mouseOn   bool
	inited    bool
	finished  bool
}

// NewVT creates a VT backend on the process terminal.
func NewVT() *VT {
	v := newVT(os.Stdin, os.Stdout)
	v.inFd = int(os.Stdin.Fd())
	v.outFd = int(os.Stdout.Fd())
	return v
}

func newVT(in io.Reader, out io.Writer) *VT {
	return &VT{
		in:        in,
		out:       out,
		makeRaw:   term.MakeRaw,
		restoreFn: term.Restore,
		sizeFn:    term.GetSize,
		events:    make(chan Event, 32),
		quit:      make(chan struct{}),
		winch:     make(chan os.Signal, 1),
	}
}

func (v *VT) Init() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.makeRaw(v.inFd)
	if err != nil {
		return err
	}
	v.oldState = state

	// Hide the cursor and turn on bracketed paste and focus reporting.
	if err := v.write("\x1b[?25l\x1b[?2004h\x1b[?1004h"); err != nil {
		_ = v.restoreFn(v.inFd, state)
		return err
	}

	signal.Notify(v.winch, unix.SIGWINCH)
	v.producers.Add(2)
	go v.readInput()
	go v.watchResize()
	go func() {
		v.producers.Wait()
		close(v.events)
	}()

	v.inited = true
	return nil
}

// Shutdown restores the terminal. Raw mode is dropped first so the
// remaining writes land on a usable terminal; every step is attempted even
// after a failure and the first error wins.
func (v *VT) Shutdown() error {
	v.mu.Lock()
	if !v.inited || v.finished {
		v.mu.Unlock()
		return nil
	}
	v.finished = true
	oldState := v.oldState
	mouseOn := v.mouseOn
	altScreen := v.altScreen
	v.mu.Unlock()

	signal.Stop(v.winch)
	close(v.quit)

	var first error
	record := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if oldState != nil {
		record(v.restoreFn(v.inFd, oldState))
	}
	record(v.write("\x1b[?25h"))
	record(v.write("\x1b[?2004l\x1b[?1004l"))
	if mouseOn {
		record(v.write("\x1b[?1006l\x1b[?1002l\x1b[?1000l"))
	}
	if altScreen {
		record(v.write("\x1b[?1049l"))
	}
	return first
}

func (v *VT) Size() (int, int, error) {
	return v.sizeFn(v.outFd)
}

func (v *VT) Events() <-chan Event {
	return v.events
}

// Render repaints the frame. Inline mode rewinds over the previous frame
// with relative cursor motion so surrounding scrollback survives; alt
// screen mode homes the cursor and erases whatever the frame leaves below.
func (v *VT) Render(frame string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	frame = crlf(frame)

	var b strings.Builder
	if v.altScreen {
		b.WriteString("\x1b[H")
		b.WriteString(frame)
		b.WriteString("\x1b[0J")
	} else {
		b.WriteString("\r\x1b[2K")
		for i := 0; i < strings.Count(v.prevFrame, "\r\n"); i++ {
			b.WriteString("\x1b[1A\x1b[2K")
		}
		b.WriteString(frame)
	}
	v.prevFrame = frame
	return v.write(b.String())
}

// crlf normalizes line endings to CRLF, which raw mode needs for the
// carriage to return.
func crlf(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func (v *VT) EnterAltScreen() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.altScreen {
		return nil
	}
	if err := v.write("\x1b[?1049h\x1b[H"); err != nil {
		return err
	}
	v.altScreen = true
	v.prevFrame = ""
	return nil
}

func (v *VT) LeaveAltScreen() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.altScreen {
		return nil
	}
	if err := v.write("\x1b[?1049l"); err != nil {
		return err
	}
	v.altScreen = false
	v.prevFrame = ""
	return nil
}

func (v *VT) EnableMouse() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.write("\x1b[?1000h\x1b[?1002h\x1b[?1006h"); err != nil {
		return err
	}
	v.mouseOn = true
	return nil
}

func (v *VT) DisableMouse() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.write("\x1b[?1006l\x1b[?1002l\x1b[?1000l"); err != nil {
		return err
	}
	v.mouseOn = false
	return nil
}

func (v *VT) ShowCursor() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.write("\x1b[?25h")
}

func (v *VT) HideCursor() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.write("\x1b[?25l")
}

func (v *VT) write(s string) error {
	_, err := io.WriteString(v.out, s)
	return err
}

// readInput pumps decoded events until the reader fails or the backend
// shuts down. Partial escape sequences and split UTF-8 runes carry over
// between reads.
//
// Shutdown cannot interrupt a Read on a real stdin: the goroutine stays
// parked until the next keystroke or EOF, and the event channel stays
// open that long. Consumers must not block solely on channel close
// after Shutdown. One parked reader per process is the accepted cost;
// stdin has no portable read deadline.
func (v *VT) readInput() {
	defer v.producers.Done()

	buf := make([]byte, 4096)
	var pending []byte
	for {
		n, err := v.in.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			var evs []Event
			evs, pending = decodeChunk(pending)
			for _, ev := range evs {
				select {
				case v.events <- ev:
				case <-v.quit:
					return
				}
			}
		}
		if err != nil {
			return
		}
		select {
		case <-v.quit:
			return
		default:
		}
	}
}

// watchResize converts SIGWINCH into resize events.
func (v *VT) watchResize() {
	defer v.producers.Done()

	for {
		select {
		case <-v.quit:
			return
		case <-v.winch:
			w, h, err := v.sizeFn(v.outFd)
			if err != nil {
				continue
			}
			select {
			case v.events <- Event{Type: EventResize, Width: w, Height: h}:
			case <-v.quit:
				return
			}
		}
	}
}
