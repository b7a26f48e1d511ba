package backend

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Tcell implements Backend on top of a tcell.Screen. It is the backend for
// full-screen programs: tcell owns the terminal, keeps its own cell buffer,
// and diffs frames against it on Show. Rendered frames are interpreted onto
// the cell grid, with SGR sequences mapped to tcell styles.
type Tcell struct {
	screen   tcell.Screen
	events   chan Event
	quit     chan struct{}
	pumpDone chan struct{}

	mu       sync.Mutex
	inited   bool
	finished bool
	curX     int
	curY     int
}

// NewTcell creates a tcell backend on the process terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcellScreen(screen), nil
}

// NewTcellScreen creates a tcell backend over an existing screen. Tests use
// this with a tcell.SimulationScreen.
func NewTcellScreen(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen:   screen,
		events:   make(chan Event, 32),
		quit:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
}

func (t *Tcell) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	t.screen.HideCursor()
	t.inited = true

	go t.pump()
	return nil
}

// deliver sends ev unless Shutdown has begun. The reader may be gone by
// teardown, so a bare send could block forever on a full channel.
func (t *Tcell) deliver(ev Event) bool {
	select {
	case t.events <- ev:
		return true
	case <-t.quit:
		return false
	}
}

// pump converts tcell events until the screen is finalized or the backend
// shuts down, then closes the event channel.
func (t *Tcell) pump() {
	defer close(t.events)
	defer close(t.pumpDone)

	var pasting bool
	var pasteBuf []rune

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if pasting {
				if e.Key() == tcell.KeyRune {
					pasteBuf = append(pasteBuf, e.Rune())
				} else if e.Key() == tcell.KeyEnter {
					pasteBuf = append(pasteBuf, '\n')
				}
				continue
			}
			key, r, mod := convertTcellKey(e.Key(), e.Rune(), e.Modifiers())
			if !t.deliver(Event{Type: EventKey, Key: key, Rune: r, Mod: mod}) {
				return
			}

		case *tcell.EventMouse:
			x, y := e.Position()
			ok := t.deliver(Event{
				Type:        EventMouse,
				MouseX:      x,
				MouseY:      y,
				MouseButton: convertTcellButton(e.Buttons()),
				Mod:         convertTcellMod(e.Modifiers()),
			})
			if !ok {
				return
			}

		case *tcell.EventResize:
			w, h := e.Size()
			t.screen.Sync()
			if !t.deliver(Event{Type: EventResize, Width: w, Height: h}) {
				return
			}

		case *tcell.EventPaste:
			if e.Start() {
				pasting = true
				pasteBuf = pasteBuf[:0]
				continue
			}
			pasting = false
			if !t.deliver(Event{Type: EventPaste, PasteText: string(pasteBuf)}) {
				return
			}

		case *tcell.EventFocus:
			if !t.deliver(Event{Type: EventFocus, Focused: e.Focused}) {
				return
			}
		}
	}
}

func (t *Tcell) Shutdown() error {
	t.mu.Lock()
	if !t.inited || t.finished {
		t.mu.Unlock()
		return nil
	}
	t.finished = true
	t.mu.Unlock()

	// Closing quit releases a pump blocked on a send to a full event
	// channel; Fini restores the terminal and unblocks PollEvent with
	// nil. Either way the pump exits and closes the event channel.
	close(t.quit)
	t.screen.Fini()
	<-t.pumpDone
	return nil
}

func (t *Tcell) Size() (int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return w, h, nil
}

func (t *Tcell) Events() <-chan Event {
	return t.events
}

// Render interprets the frame onto the cell grid. Runes are placed by
// grapheme cluster with correct display widths; SGR sequences update the
// current style; other escape sequences are dropped.
func (t *Tcell) Render(frame string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()

	x, y := 0, 0
	style := tcell.StyleDefault
	state := -1

	for len(frame) > 0 {
		switch frame[0] {
		case 0x1b:
			params, isSGR, n := parseEscape(frame)
			if isSGR {
				style = applySGR(style, params)
			}
			frame = frame[n:]
			state = -1
			continue
		case '\r':
			x = 0
			frame = frame[1:]
			state = -1
			continue
		case '\n':
			y++
			x = 0
			frame = frame[1:]
			state = -1
			continue
		}

		var cluster string
		var width int
		cluster, frame, width, state = uniseg.FirstGraphemeClusterInString(frame, state)
		runes := []rune(cluster)
		if len(runes) > 0 {
			t.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += width
	}

	t.screen.Show()
	return nil
}

// parseEscape examines an escape sequence at the start of s. It returns the
// SGR parameter body (when the sequence is an SGR), whether it was an SGR,
// and the total byte length of the sequence.
func parseEscape(s string) (params string, isSGR bool, n int) {
	if len(s) < 2 {
		return "", false, len(s)
	}
	if s[1] != '[' {
		// Two-byte escape.
		return "", false, 2
	}
	for i := 2; i < len(s); i++ {
		b := s[i]
		if b >= 0x40 && b <= 0x7e {
			return s[2:i], b == 'm', i + 1
		}
	}
	return "", false, len(s)
}

// EnterAltScreen is a no-op: tcell runs on the alternate screen for the
// whole session.
func (t *Tcell) EnterAltScreen() error { return nil }

// LeaveAltScreen is unsupported while tcell owns the screen.
func (t *Tcell) LeaveAltScreen() error {
	return errors.New("tcell backend cannot leave the alternate screen mid-run")
}

func (t *Tcell) EnableMouse() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse()
	return nil
}

func (t *Tcell) DisableMouse() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
	return nil
}

func (t *Tcell) ShowCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(t.curX, t.curY)
	return nil
}

func (t *Tcell) HideCursor() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
	return nil
}

// convertTcellKey converts a tcell key report to the backend event form.
// Control-modified letters normalize to KeyRune plus ModCtrl.
func convertTcellKey(k tcell.Key, r rune, m tcell.ModMask) (Key, rune, ModMask) {
	mod := convertTcellMod(m)

	switch k {
	case tcell.KeyRune:
		return KeyRune, r, mod
	case tcell.KeyEscape:
		return KeyEscape, 0, mod
	case tcell.KeyEnter:
		return KeyEnter, 0, mod
	case tcell.KeyTab:
		return KeyTab, 0, mod
	case tcell.KeyBacktab:
		return KeyBacktab, 0, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0, mod
	case tcell.KeyDelete:
		return KeyDelete, 0, mod
	case tcell.KeyInsert:
		return KeyInsert, 0, mod
	case tcell.KeyHome:
		return KeyHome, 0, mod
	case tcell.KeyEnd:
		return KeyEnd, 0, mod
	case tcell.KeyPgUp:
		return KeyPageUp, 0, mod
	case tcell.KeyPgDn:
		return KeyPageDown, 0, mod
	case tcell.KeyUp:
		return KeyUp, 0, mod
	case tcell.KeyDown:
		return KeyDown, 0, mod
	case tcell.KeyLeft:
		return KeyLeft, 0, mod
	case tcell.KeyRight:
		return KeyRight, 0, mod
	case tcell.KeyF1:
		return KeyF1, 0, mod
	case tcell.KeyF2:
		return KeyF2, 0, mod
	case tcell.KeyF3:
		return KeyF3, 0, mod
	case tcell.KeyF4:
		return KeyF4, 0, mod
	case tcell.KeyF5:
		return KeyF5, 0, mod
	case tcell.KeyF6:
		return KeyF6, 0, mod
	case tcell.KeyF7:
		return KeyF7, 0, mod
	case tcell.KeyF8:
		return KeyF8, 0, mod
	case tcell.KeyF9:
		return KeyF9, 0, mod
	case tcell.KeyF10:
		return KeyF10, 0, mod
	case tcell.KeyF11:
		return KeyF11, 0, mod
	case tcell.KeyF12:
		return KeyF12, 0, mod
	}

	// Remaining control range: ctrl+space, ctrl+a..z minus the aliased
	// tab/enter/backspace handled above, and ctrl+\ ] ^ _.
	if k >= 0 && k < 32 {
		mod |= ModCtrl
		switch {
		case k == 0:
			return KeyRune, ' ', mod
		case k >= 1 && k <= 26:
			return KeyRune, rune('a' + k - 1), mod
		case k == 28:
			return KeyRune, '\\', mod
		case k == 29:
			return KeyRune, ']', mod
		case k == 30:
			return KeyRune, '^', mod
		case k == 31:
			return KeyRune, '_', mod
		}
	}
	return KeyNone, 0, mod
}

// convertTcellMod converts tcell modifier mask to ModMask.
func convertTcellMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertTcellButton converts tcell button mask to MouseButton.
func convertTcellButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	default:
		return MouseNone
	}
}
