package key

import (
	"testing"

	"github.com/dshills/squall"
)

type action int

const (
	actNone action = iota
	actQuit
	actUp
	actDown
)

func testBindings() *Bindings[action] {
	b := NewBindings[action]()
	b.Bind(actQuit, MustParse("q"), MustParse("ctrl+c"))
	b.Bind(actUp, MustParse("up"), MustParse("k"))
	b.Bind(actDown, MustParse("down"), MustParse("j"))
	return b
}

func TestBindingsLookup(t *testing.T) {
	b := testBindings()

	got, ok := b.Lookup(squall.KeyMsg{Key: squall.KeyRune, Rune: 'q'})
	if !ok || got != actQuit {
		t.Errorf("Lookup(q) = %v, %v, expected quit", got, ok)
	}
	got, ok = b.Lookup(squall.KeyMsg{Key: squall.KeyUp})
	if !ok || got != actUp {
		t.Errorf("Lookup(up) = %v, %v, expected up", got, ok)
	}
	if _, ok := b.Lookup(squall.KeyMsg{Key: squall.KeyRune, Rune: 'z'}); ok {
		t.Error("unbound chord resolved to an action")
	}
	if _, ok := b.Lookup(squall.ResizeMsg{}); ok {
		t.Error("non-key message resolved to an action")
	}
}

func TestBindingsRebind(t *testing.T) {
	b := testBindings()
	b.Bind(actDown, MustParse("q"))

	got, ok := b.Lookup(squall.KeyMsg{Key: squall.KeyRune, Rune: 'q'})
	if !ok || got != actDown {
		t.Errorf("rebinding q: Lookup = %v, %v, expected down", got, ok)
	}
}

func TestBindingsChords(t *testing.T) {
	b := testBindings()
	chords := b.Chords(actQuit, func(a, c action) bool { return a == c })
	if len(chords) != 2 {
		t.Errorf("expected 2 quit chords, got %d", len(chords))
	}
}

func TestBindingsLen(t *testing.T) {
	if got := testBindings().Len(); got != 6 {
		t.Errorf("expected 6 bound chords, got %d", got)
	}
}
