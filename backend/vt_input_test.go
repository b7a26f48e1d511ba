package backend

import (
	"reflect"
	"testing"
)

func key(k Key) Event                 { return Event{Type: EventKey, Key: k} }
func keyMod(k Key, m ModMask) Event   { return Event{Type: EventKey, Key: k, Mod: m} }
func runeKey(r rune) Event            { return Event{Type: EventKey, Key: KeyRune, Rune: r} }
func runeMod(r rune, m ModMask) Event { return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: m} }

func TestDecodeChunk_Keys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{"plain ascii", "ab", []Event{runeKey('a'), runeKey('b')}},
		{"utf8 rune", "é", []Event{runeKey('é')}},
		{"wide rune", "あ", []Event{runeKey('あ')}},
		{"enter cr", "\r", []Event{key(KeyEnter)}},
		{"enter lf", "\n", []Event{key(KeyEnter)}},
		{"tab", "\t", []Event{key(KeyTab)}},
		{"backspace bs", "\x08", []Event{key(KeyBackspace)}},
		{"backspace del", "\x7f", []Event{key(KeyBackspace)}},
		{"ctrl-c", "\x03", []Event{runeMod('c', ModCtrl)}},
		{"ctrl-a", "\x01", []Event{runeMod('a', ModCtrl)}},
		{"ctrl-z", "\x1a", []Event{runeMod('z', ModCtrl)}},
		{"ctrl-space", "\x00", []Event{runeMod(' ', ModCtrl)}},
		{"ctrl-backslash", "\x1c", []Event{runeMod('\\', ModCtrl)}},
		{"ctrl-underscore", "\x1f", []Event{runeMod('_', ModCtrl)}},
		{"lone escape", "\x1b", []Event{key(KeyEscape)}},
		{"alt-x", "\x1bx", []Event{runeMod('x', ModAlt)}},
		{"alt-enter", "\x1b\r", []Event{keyMod(KeyEnter, ModAlt)}},
		{"arrow up", "\x1b[A", []Event{key(KeyUp)}},
		{"arrow down", "\x1b[B", []Event{key(KeyDown)}},
		{"arrow right", "\x1b[C", []Event{key(KeyRight)}},
		{"arrow left", "\x1b[D", []Event{key(KeyLeft)}},
		{"home", "\x1b[H", []Event{key(KeyHome)}},
		{"end", "\x1b[F", []Event{key(KeyEnd)}},
		{"backtab", "\x1b[Z", []Event{key(KeyBacktab)}},
		{"ctrl-up", "\x1b[1;5A", []Event{keyMod(KeyUp, ModCtrl)}},
		{"shift-left", "\x1b[1;2D", []Event{keyMod(KeyLeft, ModShift)}},
		{"alt-right", "\x1b[1;3C", []Event{keyMod(KeyRight, ModAlt)}},
		{"ctrl-shift-down", "\x1b[1;6B", []Event{keyMod(KeyDown, ModCtrl|ModShift)}},
		{"insert", "\x1b[2~", []Event{key(KeyInsert)}},
		{"delete", "\x1b[3~", []Event{key(KeyDelete)}},
		{"pgup", "\x1b[5~", []Event{key(KeyPageUp)}},
		{"pgdn", "\x1b[6~", []Event{key(KeyPageDown)}},
		{"home tilde", "\x1b[1~", []Event{key(KeyHome)}},
		{"end tilde", "\x1b[4~", []Event{key(KeyEnd)}},
		{"f1 ss3", "\x1bOP", []Event{key(KeyF1)}},
		{"f4 ss3", "\x1bOS", []Event{key(KeyF4)}},
		{"f5", "\x1b[15~", []Event{key(KeyF5)}},
		{"f6", "\x1b[17~", []Event{key(KeyF6)}},
		{"f10", "\x1b[21~", []Event{key(KeyF10)}},
		{"f12", "\x1b[24~", []Event{key(KeyF12)}},
		{"ctrl-delete", "\x1b[3;5~", []Event{keyMod(KeyDelete, ModCtrl)}},
		{"ss3 up", "\x1bOA", []Event{key(KeyUp)}},
		{"mixed stream", "a\x1b[Ab", []Event{runeKey('a'), key(KeyUp), runeKey('b')}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, rest := decodeChunk([]byte(tt.input))
			if len(rest) != 0 {
				t.Errorf("expected full consumption, %d bytes left", len(rest))
			}
			if !reflect.DeepEqual(events, tt.want) {
				t.Errorf("decodeChunk(%q) = %+v, expected %+v", tt.input, events, tt.want)
			}
		})
	}
}

func TestDecodeChunk_FocusReports(t *testing.T) {
	events, rest := decodeChunk([]byte("\x1b[I\x1b[O"))
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	want := []Event{
		{Type: EventFocus, Focused: true},
		{Type: EventFocus, Focused: false},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("expected focus events, got %+v", events)
	}
}

func TestDecodeChunk_SGRMouse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{
			"left press",
			"\x1b[<0;10;5M",
			Event{Type: EventMouse, MouseX: 9, MouseY: 4, MouseButton: MouseLeft},
		},
		{
			"release",
			"\x1b[<0;10;5m",
			Event{Type: EventMouse, MouseX: 9, MouseY: 4, MouseButton: MouseRelease},
		},
		{
			"middle press",
			"\x1b[<1;1;1M",
			Event{Type: EventMouse, MouseX: 0, MouseY: 0, MouseButton: MouseMiddle},
		},
		{
			"right press",
			"\x1b[<2;3;4M",
			Event{Type: EventMouse, MouseX: 2, MouseY: 3, MouseButton: MouseRight},
		},
		{
			"wheel up",
			"\x1b[<64;7;7M",
			Event{Type: EventMouse, MouseX: 6, MouseY: 6, MouseButton: MouseWheelUp},
		},
		{
			"wheel down",
			"\x1b[<65;7;7M",
			Event{Type: EventMouse, MouseX: 6, MouseY: 6, MouseButton: MouseWheelDown},
		},
		{
			"ctrl click",
			"\x1b[<16;2;2M",
			Event{Type: EventMouse, MouseX: 1, MouseY: 1, MouseButton: MouseLeft, Mod: ModCtrl},
		},
		{
			"shift click",
			"\x1b[<4;2;2M",
			Event{Type: EventMouse, MouseX: 1, MouseY: 1, MouseButton: MouseLeft, Mod: ModShift},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, rest := decodeChunk([]byte(tt.input))
			if len(rest) != 0 {
				t.Fatalf("expected full consumption, %d bytes left", len(rest))
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if !reflect.DeepEqual(events[0], tt.want) {
				t.Errorf("decodeChunk(%q) = %+v, expected %+v", tt.input, events[0], tt.want)
			}
		})
	}
}

func TestDecodeChunk_BracketedPaste(t *testing.T) {
	events, rest := decodeChunk([]byte("\x1b[200~hello\nworld\x1b[201~x"))
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Type != EventPaste || events[0].PasteText != "hello\nworld" {
		t.Errorf("expected paste event with payload, got %+v", events[0])
	}
	if events[1].Rune != 'x' {
		t.Errorf("expected trailing rune after paste, got %+v", events[1])
	}
}

func TestDecodeChunk_IncompletePaste(t *testing.T) {
	input := []byte("\x1b[200~partial")
	events, rest := decodeChunk(input)
	if len(events) != 0 {
		t.Errorf("expected no events for open paste, got %+v", events)
	}
	if string(rest) != string(input) {
		t.Errorf("expected full remainder, got %q", rest)
	}

	// Completing the paste in a later chunk resolves it.
	events, rest = decodeChunk(append(rest, []byte("\x1b[201~")...))
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	if len(events) != 1 || events[0].PasteText != "partial" {
		t.Errorf("expected completed paste, got %+v", events)
	}
}

func TestDecodeChunk_SplitCSI(t *testing.T) {
	events, rest := decodeChunk([]byte("\x1b[1;5"))
	if len(events) != 0 {
		t.Errorf("expected no events for split sequence, got %+v", events)
	}
	if string(rest) != "\x1b[1;5" {
		t.Errorf("expected sequence kept as remainder, got %q", rest)
	}

	events, rest = decodeChunk(append(rest, 'A'))
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	if len(events) != 1 || events[0].Key != KeyUp || !events[0].Mod.Has(ModCtrl) {
		t.Errorf("expected ctrl+up after completion, got %+v", events)
	}
}

func TestDecodeChunk_SplitUTF8(t *testing.T) {
	full := []byte("あ")
	events, rest := decodeChunk(full[:1])
	if len(events) != 0 {
		t.Errorf("expected no events for split rune, got %+v", events)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 remainder byte, got %d", len(rest))
	}

	events, rest = decodeChunk(append(rest, full[1:]...))
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	if len(events) != 1 || events[0].Rune != 'あ' {
		t.Errorf("expected completed rune, got %+v", events)
	}
}

func TestDecodeChunk_InvalidByteSkipped(t *testing.T) {
	events, rest := decodeChunk([]byte{0xff, 'a'})
	if len(rest) != 0 {
		t.Fatalf("expected full consumption, %d bytes left", len(rest))
	}
	if len(events) != 1 || events[0].Rune != 'a' {
		t.Errorf("expected invalid byte skipped, got %+v", events)
	}
}

func TestDecodeChunk_RunawaySequenceResyncs(t *testing.T) {
	// A CSI with no final byte in sight gets dropped past 64 bytes.
	input := []byte("\x1b[")
	for i := 0; i < 70; i++ {
		input = append(input, '1')
	}

	events, rest := decodeChunk(input)
	if len(rest) != 0 {
		t.Fatalf("expected resync to consume everything, %d bytes left", len(rest))
	}
	// The dropped introducer leaves the parameter bytes to decode as text.
	if len(events) != 70 {
		t.Fatalf("expected 70 rune events after resync, got %d", len(events))
	}
	if events[0].Rune != '1' {
		t.Errorf("expected parameter bytes as runes, got %+v", events[0])
	}
}

func TestModMask_Has(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) {
		t.Error("expected ctrl present")
	}
	if !m.Has(ModShift) {
		t.Error("expected shift present")
	}
	if m.Has(ModAlt) {
		t.Error("expected alt absent")
	}
}
