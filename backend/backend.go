// Package backend provides terminal backend abstraction for the runtime.
//
// A Backend owns the terminal for the lifetime of a program: it acquires raw
// mode on Init, decodes input into Events, draws rendered frames, and
// restores every piece of acquired state on Shutdown. Three implementations
// are provided: Tcell for full-screen programs, VT for inline programs on a
// plain tty, and Null for tests.
package backend

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool

	// Paste event fields
	PasteText string
}

// Key represents a keyboard key. Printable characters use KeyRune with the
// Rune field set; control-modified letters are reported as KeyRune plus
// ModCtrl rather than dedicated key codes.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseRelease
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// Backend defines the interface for terminal backends. The runtime calls
// Init exactly once before any other method and Shutdown exactly once at
// the end; Render is called once per update cycle from a single goroutine.
type Backend interface {
	// Init acquires the terminal: raw mode, input decoding, hidden cursor.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores all terminal state acquired by Init and any later
	// calls (alt screen, mouse reporting). Every restoration step is
	// attempted even if an earlier one fails; the first error is returned.
	// The Events channel is closed once the input pump has stopped.
	Shutdown() error

	// Size returns the current terminal dimensions.
	Size() (width, height int, err error)

	// Events returns the decoded input stream. Closed after Shutdown.
	Events() <-chan Event

	// Render draws one complete frame.
	Render(frame string) error

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen() error

	// LeaveAltScreen returns to the primary screen buffer.
	LeaveAltScreen() error

	// EnableMouse turns on mouse event reporting.
	EnableMouse() error

	// DisableMouse turns off mouse event reporting.
	DisableMouse() error

	// ShowCursor makes the hardware cursor visible. Programs usually keep
	// it hidden and draw their own.
	ShowCursor() error

	// HideCursor hides the hardware cursor.
	HideCursor() error
}
