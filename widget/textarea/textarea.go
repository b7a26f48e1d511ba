// Package textarea implements a multi-line text editor with a numbered
// gutter, scrolling and a blinking cursor.
//
// Editing is grapheme-cluster accurate, like textinput: cursor columns
// count clusters, so combining sequences and emoji move as single
// units. Rows past the end of the buffer render as tilde lines.
package textarea

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/squall"
	"github.com/dshills/squall/key"
	"github.com/dshills/squall/widget/textinput"
)

type action int

const (
	actLeft action = iota
	actRight
	actUp
	actDown
	actNewline
	actDeleteBack
	actDeleteForward
)

func defaultBindings() *key.Bindings[action] {
	b := key.NewBindings[action]()
	b.Bind(actLeft, key.MustParse("left"), key.MustParse("ctrl+b"))
	b.Bind(actRight, key.MustParse("right"), key.MustParse("ctrl+f"))
	b.Bind(actUp, key.MustParse("up"), key.MustParse("ctrl+p"))
	b.Bind(actDown, key.MustParse("down"), key.MustParse("ctrl+n"))
	b.Bind(actNewline, key.MustParse("enter"), key.MustParse("ctrl+m"))
	b.Bind(actDeleteBack, key.MustParse("backspace"), key.MustParse("ctrl+h"))
	b.Bind(actDeleteForward, key.MustParse("delete"), key.MustParse("ctrl+d"))
	return b
}

// position addresses a cluster in the buffer: row index, then cluster
// column within the row.
type position struct {
	row, col int
}

// Model is the textarea state. Create one with New.
type Model struct {
	// ShowLineNumbers toggles the numbered gutter.
	ShowLineNumbers bool

	width  int
	height int

	rows    [][]string // grapheme clusters per row, at least one row
	cur     position
	offset  position
	focused bool
	cursor  textinput.Cursor

	bindings *key.Bindings[action]
}

// New creates an empty textarea with the given dimensions.
func New(width, height int) Model {
	return Model{
		ShowLineNumbers: true,
		width:           width,
		height:          height,
		rows:            [][]string{nil},
		cursor:          textinput.NewCursor(),
		bindings:        defaultBindings(),
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

// Value returns the buffer contents with rows joined by newlines.
func (m Model) Value() string {
	lines := make([]string, len(m.rows))
	for i, row := range m.rows {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// SetValue replaces the buffer and moves the cursor home.
func (m Model) SetValue(s string) Model {
	lines := strings.Split(s, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = graphemes(line)
	}
	m.rows = rows
	m.cur = position{}
	m.offset = position{}
	return m.syncCursor()
}

// Line returns the cursor's row index.
func (m Model) Line() int { return m.cur.row }

// Column returns the cursor's cluster column.
func (m Model) Column() int { return m.cur.col }

// LineCount returns the number of rows in the buffer.
func (m Model) LineCount() int { return len(m.rows) }

// Focused reports whether the textarea accepts keystrokes.
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

// SetSize updates the rendered dimensions and re-scrolls the cursor
// into view.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m.scroll()
}

// gutter is the width the line-number column occupies.
func (m Model) gutter() int {
	if m.ShowLineNumbers {
		return 4
	}
	return 0
}

// textWidth is the visible columns left for row content.
func (m Model) textWidth() int {
	w := m.width - m.gutter()
	if w < 1 {
		w = 1
	}
	return w
}

// clusterAt returns the cluster under the position, or a space past the
// end of its row.
func (m Model) clusterAt(p position) string {
	if p.row >= 0 && p.row < len(m.rows) {
		row := m.rows[p.row]
		if p.col >= 0 && p.col < len(row) {
			return row[p.col]
		}
	}
	return " "
}

// syncCursor points the cursor at the cluster under the position.
func (m Model) syncCursor() Model {
	m.cursor = m.cursor.SetChar(m.clusterAt(m.cur))
	return m
}

// setRow replaces one row copy-on-write, leaving earlier snapshots
// untouched.
func (m Model) setRow(i int, row []string) Model {
	rows := make([][]string, len(m.rows))
	copy(rows, m.rows)
	rows[i] = row
	m.rows = rows
	return m
}

// moveLeft moves one cluster left, wrapping to the end of the previous
// row at a row start.
func (m Model) moveLeft() Model {
	switch {
	case m.cur.col > 0:
		m.cur.col--
	case m.cur.row > 0:
		m.cur.row--
		m.cur.col = len(m.rows[m.cur.row])
	}
	return m.syncCursor()
}

// moveRight moves one cluster right, wrapping to the start of the next
// row at a row end.
func (m Model) moveRight() Model {
	switch {
	case m.cur.col < len(m.rows[m.cur.row]):
		m.cur.col++
	case m.cur.row < len(m.rows)-1:
		m.cur.row++
		m.cur.col = 0
	}
	return m.syncCursor()
}

// moveUp moves one row up, clamping the column to the new row's length.
func (m Model) moveUp() Model {
	if m.cur.row > 0 {
		m.cur.row--
		if n := len(m.rows[m.cur.row]); m.cur.col > n {
			m.cur.col = n
		}
	}
	return m.syncCursor()
}

// moveDown moves one row down, clamping the column to the new row's
// length.
func (m Model) moveDown() Model {
	if m.cur.row < len(m.rows)-1 {
		m.cur.row++
		if n := len(m.rows[m.cur.row]); m.cur.col > n {
			m.cur.col = n
		}
	}
	return m.syncCursor()
}

// insert places text at the cursor. Newlines in the text split rows.
func (m Model) insert(s string) Model {
	for _, line := range strings.SplitAfter(s, "\n") {
		if newline := strings.HasSuffix(line, "\n"); newline {
			line = strings.TrimSuffix(line, "\n")
			m = m.insertClusters(graphemes(line)).insertNewline()
		} else if line != "" {
			m = m.insertClusters(graphemes(line))
		}
	}
	return m.syncCursor()
}

// insertClusters splices clusters into the cursor row.
func (m Model) insertClusters(clusters []string) Model {
	if len(clusters) == 0 {
		return m
	}
	old := m.rows[m.cur.row]
	row := make([]string, 0, len(old)+len(clusters))
	row = append(row, old[:m.cur.col]...)
	row = append(row, clusters...)
	row = append(row, old[m.cur.col:]...)
	m = m.setRow(m.cur.row, row)
	m.cur.col += len(clusters)
	return m
}

// insertNewline splits the cursor row at the cursor.
func (m Model) insertNewline() Model {
	old := m.rows[m.cur.row]
	head := append([]string(nil), old[:m.cur.col]...)
	tail := append([]string(nil), old[m.cur.col:]...)

	rows := make([][]string, 0, len(m.rows)+1)
	rows = append(rows, m.rows[:m.cur.row]...)
	rows = append(rows, head, tail)
	rows = append(rows, m.rows[m.cur.row+1:]...)
	m.rows = rows
	m.cur = position{row: m.cur.row + 1}
	return m.syncCursor()
}

// deleteBack removes the cluster before the cursor. At a row start the
// row joins the one above.
func (m Model) deleteBack() Model {
	switch {
	case m.cur.col > 0:
		old := m.rows[m.cur.row]
		row := make([]string, 0, len(old)-1)
		row = append(row, old[:m.cur.col-1]...)
		row = append(row, old[m.cur.col:]...)
		m = m.setRow(m.cur.row, row)
		m.cur.col--
	case m.cur.row > 0:
		prev := m.rows[m.cur.row-1]
		joined := make([]string, 0, len(prev)+len(m.rows[m.cur.row]))
		joined = append(joined, prev...)
		joined = append(joined, m.rows[m.cur.row]...)

		rows := make([][]string, 0, len(m.rows)-1)
		rows = append(rows, m.rows[:m.cur.row-1]...)
		rows = append(rows, joined)
		rows = append(rows, m.rows[m.cur.row+1:]...)
		m.rows = rows
		m.cur = position{row: m.cur.row - 1, col: len(prev)}
	}
	return m.syncCursor()
}

// deleteForward removes the cluster under the cursor. At a row end the
// next row joins this one.
func (m Model) deleteForward() Model {
	row := m.rows[m.cur.row]
	switch {
	case m.cur.col < len(row):
		next := make([]string, 0, len(row)-1)
		next = append(next, row[:m.cur.col]...)
		next = append(next, row[m.cur.col+1:]...)
		m = m.setRow(m.cur.row, next)
	case m.cur.row < len(m.rows)-1:
		joined := make([]string, 0, len(row)+len(m.rows[m.cur.row+1]))
		joined = append(joined, row...)
		joined = append(joined, m.rows[m.cur.row+1]...)

		rows := make([][]string, 0, len(m.rows)-1)
		rows = append(rows, m.rows[:m.cur.row]...)
		rows = append(rows, joined)
		rows = append(rows, m.rows[m.cur.row+2:]...)
		m.rows = rows
	}
	return m.syncCursor()
}

// scroll moves the viewport so the cursor stays visible.
func (m Model) scroll() Model {
	if m.cur.row < m.offset.row {
		m.offset.row = m.cur.row
	} else if m.height > 0 && m.cur.row >= m.offset.row+m.height {
		m.offset.row = m.cur.row - m.height + 1
	}
	w := m.textWidth()
	if m.cur.col < m.offset.col {
		m.offset.col = m.cur.col
	} else if m.cur.col >= m.offset.col+w {
		m.offset.col = m.cur.col - w + 1
	}
	return m
}

// Update edits the buffer from key messages. Unfocused textareas only
// track resizes and cursor blinks, so a blurred editor never eats
// keystrokes.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	switch v := msg.(type) {
	case textinput.BlinkMsg:
		cur, cmd := m.cursor.Update(v)
		m.cursor = cur
		return m, cmd
	case squall.ResizeMsg:
		return m.SetSize(v.Width, v.Height), nil
	}
	if !m.focused {
		return m, nil
	}
	if p, ok := msg.(squall.PasteMsg); ok {
		return m.insert(p.Text).scroll(), nil
	}

	if act, ok := m.bindings.Lookup(msg); ok {
		switch act {
		case actLeft:
			m = m.moveLeft()
		case actRight:
			m = m.moveRight()
		case actUp:
			m = m.moveUp()
		case actDown:
			m = m.moveDown()
		case actNewline:
			m = m.insertNewline()
		case actDeleteBack:
			m = m.deleteBack()
		case actDeleteForward:
			m = m.deleteForward()
		}
		return m.scroll(), nil
	}

	k, ok := msg.(squall.KeyMsg)
	if !ok || k.Key != squall.KeyRune {
		return m, nil
	}
	if k.Mod.Has(squall.ModAlt) || k.Mod.Has(squall.ModMeta) {
		return m, nil
	}
	return m.insert(string(k.Rune)).scroll(), nil
}

// renderRow renders the visible slice of one row, splicing the cursor
// in on the cursor row.
func (m Model) renderRow(n int) string {
	row := m.rows[n]
	start := m.offset.col
	end := start + m.textWidth()
	if end > len(row) {
		end = len(row)
	}
	if start > end {
		start = end
	}
	visible := row[start:end]

	if n != m.cur.row || !m.focused {
		return strings.Join(visible, "")
	}

	cx := m.cur.col - start
	if cx >= len(visible) {
		return strings.Join(visible, "") + m.cursor.View()
	}
	var b strings.Builder
	b.WriteString(strings.Join(visible[:cx], ""))
	b.WriteString(m.cursor.View())
	b.WriteString(strings.Join(visible[cx+1:], ""))
	return b.String()
}

// View renders height rows starting at the scroll offset. Rows past the
// buffer end render as tildes, gutter numbers are 1-based.
func (m Model) View() string {
	lines := make([]string, 0, m.height)
	for r := 0; r < m.height; r++ {
		n := m.offset.row + r
		if n >= len(m.rows) {
			if m.ShowLineNumbers {
				lines = append(lines, "  ~")
			} else {
				lines = append(lines, "~")
			}
			continue
		}
		var b strings.Builder
		if m.ShowLineNumbers {
			fmt.Fprintf(&b, "%3d ", n+1)
		}
		b.WriteString(m.renderRow(n))
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
