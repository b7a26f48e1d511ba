package key

import (
	"testing"

	"github.com/dshills/squall"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"q", Chord{Key: squall.KeyRune, Rune: 'q'}},
		{"Q", Chord{Key: squall.KeyRune, Rune: 'Q'}},
		{"space", Chord{Key: squall.KeyRune, Rune: ' '}},
		{"ctrl+c", Chord{Key: squall.KeyRune, Rune: 'c', Mod: squall.ModCtrl}},
		{"alt+enter", Chord{Key: squall.KeyEnter, Mod: squall.ModAlt}},
		{"ctrl+alt+x", Chord{Key: squall.KeyRune, Rune: 'x', Mod: squall.ModCtrl | squall.ModAlt}},
		{"shift+tab", Chord{Key: squall.KeyTab, Mod: squall.ModShift}},
		{"f5", Chord{Key: squall.KeyF5}},
		{"esc", Chord{Key: squall.KeyEscape}},
		{"pgdown", Chord{Key: squall.KeyPageDown}},
		{"ä", Chord{Key: squall.KeyRune, Rune: 'ä'}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, expected %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "ctrl+", "hyper+x", "notakey"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	for _, in := range []string{"q", "space", "ctrl+c", "alt+enter", "ctrl+alt+x", "shift+tab", "f12"} {
		c := MustParse(in)
		if got := c.String(); got != in {
			t.Errorf("MustParse(%q).String() = %q", in, got)
		}
	}
}

func TestMatches(t *testing.T) {
	quit := []Chord{MustParse("q"), MustParse("ctrl+c")}

	if !Matches(squall.KeyMsg{Key: squall.KeyRune, Rune: 'q'}, quit...) {
		t.Error("q should match")
	}
	if !Matches(squall.KeyMsg{Key: squall.KeyRune, Rune: 'c', Mod: squall.ModCtrl}, quit...) {
		t.Error("ctrl+c should match")
	}
	if Matches(squall.KeyMsg{Key: squall.KeyRune, Rune: 'c'}, quit...) {
		t.Error("bare c should not match")
	}
	if Matches(squall.ResizeMsg{Width: 80, Height: 24}, quit...) {
		t.Error("non-key message should never match")
	}
}

func TestFromMsgDropsShiftOnRunes(t *testing.T) {
	// A shifted character arrives as the character itself; the chord
	// must not also demand the shift modifier.
	msg := squall.KeyMsg{Key: squall.KeyRune, Rune: 'Q', Mod: squall.ModShift}
	want := Chord{Key: squall.KeyRune, Rune: 'Q'}
	if got := FromMsg(msg); got != want {
		t.Errorf("FromMsg(%+v) = %+v, expected %+v", msg, got, want)
	}
}
