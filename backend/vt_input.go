package backend

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeChunk decodes as many complete events as the buffer holds and
// returns the undecoded remainder. An ESC that ends the buffer is treated
// as the escape key: a human press arrives as a single byte, while escape
// sequences arrive in one read.
func decodeChunk(buf []byte) ([]Event, []byte) {
	var events []Event
	for len(buf) > 0 {
		ev, n, complete := decodeOne(buf)
		if !complete {
			break
		}
		if n <= 0 {
			n = 1
		}
		if ev.Type != EventNone {
			events = append(events, ev)
		}
		buf = buf[n:]
	}
	return events, buf
}

// decodeOne decodes a single event from the front of buf. It reports how
// many bytes it consumed and whether the front held a complete unit; on
// incomplete input the caller should wait for more bytes.
func decodeOne(buf []byte) (Event, int, bool) {
	b := buf[0]

	if b == 0x1b {
		if len(buf) == 1 {
			return Event{Type: EventKey, Key: KeyEscape}, 1, true
		}
		switch buf[1] {
		case '[':
			return decodeCSI(buf)
		case 'O':
			return decodeSS3(buf)
		default:
			// Alt-prefixed key.
			ev, n, complete := decodeOne(buf[1:])
			if !complete {
				return Event{}, 0, false
			}
			ev.Mod |= ModAlt
			return ev, n + 1, true
		}
	}

	// C0 controls.
	switch {
	case b == '\r' || b == '\n':
		return Event{Type: EventKey, Key: KeyEnter}, 1, true
	case b == '\t':
		return Event{Type: EventKey, Key: KeyTab}, 1, true
	case b == 0x08 || b == 0x7f:
		return Event{Type: EventKey, Key: KeyBackspace}, 1, true
	case b == 0x00:
		return Event{Type: EventKey, Key: KeyRune, Rune: ' ', Mod: ModCtrl}, 1, true
	case b >= 0x01 && b <= 0x1a:
		return Event{Type: EventKey, Key: KeyRune, Rune: rune('a' + b - 1), Mod: ModCtrl}, 1, true
	case b >= 0x1c && b <= 0x1f:
		return Event{Type: EventKey, Key: KeyRune, Rune: rune('\\' + b - 0x1c), Mod: ModCtrl}, 1, true
	}

	// UTF-8 rune, possibly split across reads.
	if !utf8.FullRune(buf) {
		if len(buf) < utf8.UTFMax {
			return Event{}, 0, false
		}
		return Event{}, 1, true
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size == 1 {
		return Event{}, 1, true
	}
	return Event{Type: EventKey, Key: KeyRune, Rune: r}, size, true
}

// decodeCSI decodes ESC [ <params> <final>. Bracketed paste swallows the
// payload through its closing sequence.
func decodeCSI(buf []byte) (Event, int, bool) {
	// Find the final byte.
	end := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		if len(buf) > 64 {
			// Runaway sequence; drop the introducer and resync.
			return Event{}, 2, true
		}
		return Event{}, 0, false
	}

	final := buf[end]
	params := string(buf[2:end])
	n := end + 1

	// SGR mouse: ESC [ < b ; x ; y (M|m)
	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		return decodeSGRMouse(params[1:], final == 'm', n)
	}

	switch final {
	case 'A':
		return Event{Type: EventKey, Key: KeyUp, Mod: csiMod(params)}, n, true
	case 'B':
		return Event{Type: EventKey, Key: KeyDown, Mod: csiMod(params)}, n, true
	case 'C':
		return Event{Type: EventKey, Key: KeyRight, Mod: csiMod(params)}, n, true
	case 'D':
		return Event{Type: EventKey, Key: KeyLeft, Mod: csiMod(params)}, n, true
	case 'H':
		return Event{Type: EventKey, Key: KeyHome, Mod: csiMod(params)}, n, true
	case 'F':
		return Event{Type: EventKey, Key: KeyEnd, Mod: csiMod(params)}, n, true
	case 'Z':
		return Event{Type: EventKey, Key: KeyBacktab}, n, true
	case 'I':
		return Event{Type: EventFocus, Focused: true}, n, true
	case 'O':
		return Event{Type: EventFocus, Focused: false}, n, true
	case '~':
		return decodeTilde(buf, params, n)
	default:
		return Event{}, n, true
	}
}

// decodeTilde decodes the ESC [ <num> ~ family, including the bracketed
// paste open sequence.
func decodeTilde(buf []byte, params string, n int) (Event, int, bool) {
	num, mod := splitParams(params)

	if num == 200 {
		// Paste payload runs until ESC [ 201 ~.
		idx := bytes.Index(buf[n:], []byte("\x1b[201~"))
		if idx < 0 {
			return Event{}, 0, false
		}
		text := string(buf[n : n+idx])
		return Event{Type: EventPaste, PasteText: text}, n + idx + 6, true
	}

	key := KeyNone
	switch num {
	case 1, 7:
		key = KeyHome
	case 2:
		key = KeyInsert
	case 3:
		key = KeyDelete
	case 4, 8:
		key = KeyEnd
	case 5:
		key = KeyPageUp
	case 6:
		key = KeyPageDown
	case 11, 12, 13, 14, 15:
		key = KeyF1 + Key(num-11)
	case 17, 18, 19, 20, 21:
		key = KeyF6 + Key(num-17)
	case 23, 24:
		key = KeyF11 + Key(num-23)
	}
	if key == KeyNone {
		return Event{}, n, true
	}
	return Event{Type: EventKey, Key: key, Mod: mod}, n, true
}

// decodeSGRMouse decodes the body of an SGR mouse report ("b;x;y").
func decodeSGRMouse(params string, release bool, n int) (Event, int, bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return Event{}, n, true
	}
	b, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Event{}, n, true
	}

	var mod ModMask
	if b&4 != 0 {
		mod |= ModShift
	}
	if b&8 != 0 {
		mod |= ModAlt
	}
	if b&16 != 0 {
		mod |= ModCtrl
	}

	var button MouseButton
	switch {
	case release:
		button = MouseRelease
	case b&64 != 0:
		if b&1 != 0 {
			button = MouseWheelDown
		} else {
			button = MouseWheelUp
		}
	default:
		switch b & 3 {
		case 0:
			button = MouseLeft
		case 1:
			button = MouseMiddle
		case 2:
			button = MouseRight
		default:
			button = MouseNone
		}
	}

	return Event{
		Type:        EventMouse,
		MouseX:      x - 1,
		MouseY:      y - 1,
		MouseButton: button,
		Mod:         mod,
	}, n, true
}

// decodeSS3 decodes ESC O <final>, sent for arrows in application mode and
// for F1 through F4.
func decodeSS3(buf []byte) (Event, int, bool) {
	if len(buf) < 3 {
		// A trailing ESC O is far more likely alt+O than a split SS3.
		return Event{Type: EventKey, Key: KeyRune, Rune: 'O', Mod: ModAlt}, 2, true
	}
	var key Key
	switch buf[2] {
	case 'A':
		key = KeyUp
	case 'B':
		key = KeyDown
	case 'C':
		key = KeyRight
	case 'D':
		key = KeyLeft
	case 'H':
		key = KeyHome
	case 'F':
		key = KeyEnd
	case 'P':
		key = KeyF1
	case 'Q':
		key = KeyF2
	case 'R':
		key = KeyF3
	case 'S':
		key = KeyF4
	default:
		return Event{}, 3, true
	}
	return Event{Type: EventKey, Key: key}, 3, true
}

// csiMod extracts the modifier from a "1;N" parameter form.
func csiMod(params string) ModMask {
	_, mod := splitParams(params)
	return mod
}

// splitParams parses "num" or "num;mod" parameter bodies. The modifier
// encodes shift, alt, ctrl and meta as bits of N-1.
func splitParams(params string) (int, ModMask) {
	if params == "" {
		return 0, ModNone
	}
	parts := strings.Split(params, ";")
	num, _ := strconv.Atoi(parts[0])
	if len(parts) < 2 {
		return num, ModNone
	}
	enc, err := strconv.Atoi(parts[1])
	if err != nil || enc < 2 {
		return num, ModNone
	}
	bits := enc - 1
	var mod ModMask
	if bits&1 != 0 {
		mod |= ModShift
	}
	if bits&2 != 0 {
		mod |= ModAlt
	}
	if bits&4 != 0 {
		mod |= ModCtrl
	}
	if bits&8 != 0 {
		mod |= ModMeta
	}
	return num, mod
}
