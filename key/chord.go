// Package key provides declarative key matching over the message stream:
// chords ("ctrl+c", "alt+enter", "f5"), binding maps from chords to
// application actions, and TOML keymap files.
package key

import (
	"fmt"
	"strings"

	"github.com/dshills/squall"
)

// Chord is a key press pattern: a key plus a set of modifiers. Chords are
// comparable and usable as map keys.
type Chord struct {
	Key  squall.Key
	Rune rune
	Mod  squall.ModMask
}

// namedKeys maps canonical key names to their key codes for parsing.
var namedKeys = map[string]squall.Key{
	"esc":       squall.KeyEscape,
	"escape":    squall.KeyEscape,
	"enter":     squall.KeyEnter,
	"tab":       squall.KeyTab,
	"backtab":   squall.KeyBacktab,
	"backspace": squall.KeyBackspace,
	"delete":    squall.KeyDelete,
	"insert":    squall.KeyInsert,
	"home":      squall.KeyHome,
	"end":       squall.KeyEnd,
	"pgup":      squall.KeyPageUp,
	"pgdown":    squall.KeyPageDown,
	"up":        squall.KeyUp,
	"down":      squall.KeyDown,
	"left":      squall.KeyLeft,
	"right":     squall.KeyRight,
	"f1":        squall.KeyF1,
	"f2":        squall.KeyF2,
	"f3":        squall.KeyF3,
	"f4":        squall.KeyF4,
	"f5":        squall.KeyF5,
	"f6":        squall.KeyF6,
	"f7":        squall.KeyF7,
	"f8":        squall.KeyF8,
	"f9":        squall.KeyF9,
	"f10":       squall.KeyF10,
	"f11":       squall.KeyF11,
	"f12":       squall.KeyF12,
}

// Parse converts a chord's canonical string form back into a Chord.
// Modifiers come first, joined with "+": "ctrl+c", "alt+enter",
// "ctrl+alt+x". The final token is a named key, "space", or a single
// character.
func Parse(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("parse chord: empty string")
	}

	var c Chord
	parts := strings.Split(s, "+")
	keyPart := parts[len(parts)-1]
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl":
			c.Mod |= squall.ModCtrl
		case "alt":
			c.Mod |= squall.ModAlt
		case "shift":
			c.Mod |= squall.ModShift
		case "meta":
			c.Mod |= squall.ModMeta
		default:
			return Chord{}, fmt.Errorf("parse chord %q: unknown modifier %q", s, mod)
		}
	}

	if keyPart == "space" {
		c.Key = squall.KeyRune
		c.Rune = ' '
		return c, nil
	}
	if k, ok := namedKeys[strings.ToLower(keyPart)]; ok {
		c.Key = k
		return c, nil
	}
	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("parse chord %q: unknown key %q", s, keyPart)
	}
	c.Key = squall.KeyRune
	c.Rune = runes[0]
	return c, nil
}

// MustParse is Parse but panics on malformed input. Intended for
// binding tables declared as literals.
func MustParse(s string) Chord {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromMsg converts a key message into the chord it matches.
func FromMsg(msg squall.KeyMsg) Chord {
	c := Chord{Key: msg.Key, Mod: msg.Mod}
	if msg.Key == squall.KeyRune {
		c.Rune = msg.Rune
		// Shift is already reflected in the character itself.
		c.Mod &^= squall.ModShift
	}
	return c
}

// String returns the canonical form, matching what Parse accepts.
func (c Chord) String() string {
	var b strings.Builder
	if c.Mod.Has(squall.ModCtrl) {
		b.WriteString("ctrl+")
	}
	if c.Mod.Has(squall.ModAlt) {
		b.WriteString("alt+")
	}
	if c.Mod.Has(squall.ModShift) && c.Key != squall.KeyRune {
		b.WriteString("shift+")
	}
	if c.Mod.Has(squall.ModMeta) {
		b.WriteString("meta+")
	}
	switch {
	case c.Key == squall.KeyRune && c.Rune == ' ':
		b.WriteString("space")
	case c.Key == squall.KeyRune:
		b.WriteRune(c.Rune)
	default:
		b.WriteString(c.Key.String())
	}
	return b.String()
}

// Matches reports whether msg is a key message matching any of the given
// chords. Non-key messages never match.
func Matches(msg squall.Msg, chords ...Chord) bool {
	k, ok := msg.(squall.KeyMsg)
	if !ok {
		return false
	}
	pressed := FromMsg(k)
	for _, c := range chords {
		if pressed == c {
			return true
		}
	}
	return false
}
