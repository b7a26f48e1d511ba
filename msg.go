package squall

import "strings"

// Msg is the type-erased event envelope dispatched through a Program.
// Every message carries exactly one concrete payload; receivers extract
// it with a type assertion or switch. Msg is an alias rather than a
// defined type so packages that only produce or forward messages do not
// have to import this one.
type Msg = any

// Key identifies a keyboard key in a KeyMsg. Printable characters use
// KeyRune with the Rune field set; control-modified letters arrive as
// KeyRune with ModCtrl rather than dedicated key codes.
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

// keyNames maps special keys to their canonical chord names.
var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// String returns the canonical lowercase name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

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

// KeyMsg is sent when a key is pressed.
type KeyMsg struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Mod contains the active modifier keys.
	Mod ModMask
}

// String returns the canonical chord form of the key press, such as
// "q", "ctrl+c", "alt+enter" or "f5". Shift is omitted for character
// keys because the character itself already reflects it.
func (k KeyMsg) String() string {
	var b strings.Builder
	if k.Mod.Has(ModCtrl) {
		b.WriteString("ctrl+")
	}
	if k.Mod.Has(ModAlt) {
		b.WriteString("alt+")
	}
	if k.Mod.Has(ModShift) && k.Key != KeyRune {
		b.WriteString("shift+")
	}
	if k.Mod.Has(ModMeta) {
		b.WriteString("meta+")
	}

	switch {
	case k.Key == KeyRune && k.Rune == ' ':
		b.WriteString("space")
	case k.Key == KeyRune:
		b.WriteRune(k.Rune)
	default:
		b.WriteString(k.Key.String())
	}
	return b.String()
}

// MouseButton identifies the button in a MouseMsg.
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

// MouseMsg is sent when the mouse is pressed, released or scrolled.
// Coordinates are zero-based cells from the top-left corner.
type MouseMsg struct {
	X, Y   int
	Button MouseButton
	Mod    ModMask
}

// ResizeMsg is sent when the terminal changes size. The runtime records
// the new dimensions and then passes the message on to the model.
type ResizeMsg struct {
	Width, Height int
}

// FocusMsg is sent when the terminal window gains focus.
type FocusMsg struct{}

// BlurMsg is sent when the terminal window loses focus.
type BlurMsg struct{}

// PasteMsg is sent when text is pasted with bracketed paste active.
type PasteMsg struct {
	Text string
}

// QuitMsg stops the program. It never reaches the model; the loop exits
// before running another update cycle. Usually produced by the Quit
// command.
type QuitMsg struct{}

// EnterAltScreenMsg switches the terminal to the alternate screen. The
// runtime applies the switch and then passes the message to the model.
type EnterAltScreenMsg struct{}

// ExitAltScreenMsg returns the terminal to the primary screen.
type ExitAltScreenMsg struct{}

// ShowCursorMsg makes the hardware cursor visible.
type ShowCursorMsg struct{}

// HideCursorMsg hides the hardware cursor.
type HideCursorMsg struct{}

// EnableMouseMsg turns on mouse event reporting.
type EnableMouseMsg struct{}

// DisableMouseMsg turns off mouse event reporting.
type DisableMouseMsg struct{}
