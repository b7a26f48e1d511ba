// Package textinput implements a single-line text editor with a prompt,
// placeholder text and a blinking cursor.
//
// Editing is grapheme-cluster accurate: the cursor position counts
// grapheme clusters, not bytes or runes, so combining sequences and
// emoji move as single units.
package textinput

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/squall"
	"github.com/dshills/squall/style"
)

// Model is the text input state. Create one with New.
type Model struct {
	// Prompt is rendered before the editable text.
	Prompt string

	// Placeholder is shown dimmed while the value is empty.
	Placeholder string

	// PlaceholderStyle colors the placeholder text.
	PlaceholderStyle style.Style

	value   []string // grapheme clusters
	pos     int      // cursor position in clusters
	focused bool
	cursor  Cursor
}

// New creates an empty, unfocused text input.
func New() Model {
	return Model{
		Prompt:           "> ",
		PlaceholderStyle: style.New().Foreground(style.ANSI256(240)),
		cursor:           NewCursor(),
	}
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// Value returns the current text.
func (m Model) Value() string { return strings.Join(m.value, "") }

// SetValue replaces the text and clamps the cursor to its end.
func (m Model) SetValue(s string) Model {
	m.value = graphemes(s)
	if m.pos > len(m.value) {
		m.pos = len(m.value)
	}
	return m.syncCursor()
}

// Pos returns the cursor position in grapheme clusters.
func (m Model) Pos() int { return m.pos }

// Focused reports whether the input accepts keystrokes.
func (m Model) Focused() bool { return m.focused }

// Focus enables editing and starts the cursor blinking.
func (m Model) Focus() (Model, squall.Cmd) {
	m.focused = true
	cur, cmd := m.cursor.Focus()
	m.cursor = cur
	return m.syncCursor(), cmd
}

// Blur disables editing and stops the cursor.
func (m Model) Blur() Model {
	m.focused = false
	m.cursor = m.cursor.Blur()
	return m
}

// Reset clears the value and moves the cursor home.
func (m Model) Reset() Model {
	m.value = nil
	m.pos = 0
	return m.syncCursor()
}

// charAt returns the cluster the cursor sits on, or a space past the
// end.
func (m Model) charAt(pos int) string {
	if pos >= 0 && pos < len(m.value) {
		return m.value[pos]
	}
	return " "
}

// syncCursor points the cursor at the cluster under the position.
func (m Model) syncCursor() Model {
	m.cursor = m.cursor.SetChar(m.charAt(m.pos))
	return m
}

// CursorStart moves the cursor to the first cluster.
func (m Model) CursorStart() Model {
	m.pos = 0
	return m.syncCursor()
}

// CursorEnd moves the cursor past the last cluster.
func (m Model) CursorEnd() Model {
	m.pos = len(m.value)
	return m.syncCursor()
}

// moveLeft moves the cursor one cluster left.
func (m Model) moveLeft() Model {
	if m.pos > 0 {
		m.pos--
	}
	return m.syncCursor()
}

// moveRight moves the cursor one cluster right.
func (m Model) moveRight() Model {
	if m.pos < len(m.value) {
		m.pos++
	}
	return m.syncCursor()
}

// deleteBack removes the cluster before the cursor.
func (m Model) deleteBack() Model {
	if m.pos == 0 {
		return m
	}
	m.value = splice(m.value, m.pos-1)
	m.pos--
	return m.syncCursor()
}

// deleteForward removes the cluster under the cursor.
func (m Model) deleteForward() Model {
	if m.pos >= len(m.value) {
		return m
	}
	m.value = splice(m.value, m.pos)
	return m.syncCursor()
}

// splice removes the cluster at i into a fresh slice. Earlier snapshots
// share the backing array, so removal must not shift in place.
func splice(value []string, i int) []string {
	out := make([]string, 0, len(value)-1)
	out = append(out, value[:i]...)
	return append(out, value[i+1:]...)
}

// killLine removes everything from the cursor to the end.
func (m Model) killLine() Model {
	if m.pos < len(m.value) {
		m.value = m.value[:m.pos]
	}
	return m.syncCursor()
}

// insert places text at the cursor.
func (m Model) insert(s string) Model {
	clusters := graphemes(s)
	value := make([]string, 0, len(m.value)+len(clusters))
	value = append(value, m.value[:m.pos]...)
	value = append(value, clusters...)
	value = append(value, m.value[m.pos:]...)
	m.value = value
	m.pos += len(clusters)
	return m.syncCursor()
}

// Update edits the value from key messages. Unfocused inputs only
// forward cursor blinks, so a blurred input never eats keystrokes.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	if blink, ok := msg.(BlinkMsg); ok {
		cur, cmd := m.cursor.Update(blink)
		m.cursor = cur
		return m, cmd
	}
	if !m.focused {
		return m, nil
	}
	if p, ok := msg.(squall.PasteMsg); ok {
		return m.insert(p.Text), nil
	}

	k, ok := msg.(squall.KeyMsg)
	if !ok {
		return m, nil
	}

	if k.Mod.Has(squall.ModCtrl) && k.Key == squall.KeyRune {
		switch k.Rune {
		case 'a':
			return m.CursorStart(), nil
		case 'e':
			return m.CursorEnd(), nil
		case 'b':
			return m.moveLeft(), nil
		case 'f':
			return m.moveRight(), nil
		case 'h':
			return m.deleteBack(), nil
		case 'd':
			return m.deleteForward(), nil
		case 'k':
			return m.killLine(), nil
		case 'u':
			return m.Reset(), nil
		}
		return m, nil
	}

	switch k.Key {
	case squall.KeyLeft:
		return m.moveLeft(), nil
	case squall.KeyRight:
		return m.moveRight(), nil
	case squall.KeyHome:
		return m.CursorStart(), nil
	case squall.KeyEnd:
		return m.CursorEnd(), nil
	case squall.KeyBackspace:
		return m.deleteBack(), nil
	case squall.KeyDelete:
		return m.deleteForward(), nil
	case squall.KeyRune:
		if k.Mod.Has(squall.ModAlt) || k.Mod.Has(squall.ModMeta) {
			return m, nil
		}
		return m.insert(string(k.Rune)), nil
	}
	return m, nil
}

// View renders the prompt, the value and the cursor. While the value is
// empty the placeholder shows instead, with the cursor on its first
// character.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Prompt)

	if len(m.value) == 0 && m.Placeholder != "" {
		ph := graphemes(m.Placeholder)
		if m.focused {
			cur := m.cursor.SetChar(ph[0])
			b.WriteString(cur.View())
			b.WriteString(m.PlaceholderStyle.Render(strings.Join(ph[1:], "")))
		} else {
			b.WriteString(m.PlaceholderStyle.Render(m.Placeholder))
		}
		return b.String()
	}

	b.WriteString(strings.Join(m.value[:m.pos], ""))
	if m.focused {
		b.WriteString(m.cursor.View())
		if m.pos < len(m.value) {
			b.WriteString(strings.Join(m.value[m.pos+1:], ""))
		}
	} else {
		b.WriteString(strings.Join(m.value[m.pos:], ""))
	}
	return b.String()
}
