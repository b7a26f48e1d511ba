package key

import "github.com/dshills/squall"

// Bindings maps chords to application actions of any type, typically an
// enum of operations the model understands.
type Bindings[T any] struct {
	m map[Chord]T
}

// NewBindings creates an empty binding set.
func NewBindings[T any]() *Bindings[T] {
	return &Bindings[T]{m: make(map[Chord]T)}
}

// Bind associates the action with each chord. Binding a chord twice
// replaces the earlier action.
func (b *Bindings[T]) Bind(action T, chords ...Chord) *Bindings[T] {
	for _, c := range chords {
		b.m[c] = action
	}
	return b
}

// Lookup resolves a message to its bound action. The second return value
// is false for non-key messages and unbound chords.
func (b *Bindings[T]) Lookup(msg squall.Msg) (T, bool) {
	var zero T
	k, ok := msg.(squall.KeyMsg)
	if !ok {
		return zero, false
	}
	action, ok := b.m[FromMsg(k)]
	if !ok {
		return zero, false
	}
	return action, true
}

// Chords returns the chords bound to actions equal under eq, in no
// particular order. Useful for rendering help lines.
func (b *Bindings[T]) Chords(action T, eq func(a, b T) bool) []Chord {
	var out []Chord
	for c, a := range b.m {
		if eq(a, action) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of bound chords.
func (b *Bindings[T]) Len() int {
	return len(b.m)
}
