// Package flex lays out child models in rows or columns, wrapping to
// fewer columns when the available width cannot satisfy the minimum
// item width.
package flex

import (
	"strings"

	"github.com/dshills/squall"
	"github.com/dshills/squall/textfmt"
)

// Direction selects the layout axis.
type Direction int

const (
	Row Direction = iota
	Column
)

// Config configures a flex container.
type Config struct {
	// MinItemWidth is the narrowest a column may get before items wrap
	// to the next row. Zero means 12.
	MinItemWidth int

	// Gap is the space between columns in cells. Rows have no gap.
	Gap int

	// Wrap reduces the column count when width is short. Off, children
	// are squeezed into equal columns regardless.
	Wrap bool

	// Columns caps the column count. Zero means the child count.
	Columns int

	// Direction is the layout axis.
	Direction Direction
}

// Model lays out child models.
type Model struct {
	cfg      Config
	width    int
	children []squall.Model
}

// New creates a flex container around the given children.
func New(cfg Config, children ...squall.Model) Model {
	if cfg.MinItemWidth <= 0 {
		cfg.MinItemWidth = 12
	}
	return Model{cfg: cfg, children: children}
}

// SetWidth sets the available width.
func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

// Children returns the child models in order.
func (m Model) Children() []squall.Model {
	out := make([]squall.Model, len(m.children))
	copy(out, m.children)
	return out
}

// Update forwards the message to every child and batches their
// commands. Resizes also adjust the container width.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	if r, ok := msg.(squall.ResizeMsg); ok {
		m.width = r.Width
	}

	children := make([]squall.Model, len(m.children))
	cmds := make([]squall.Cmd, 0, len(m.children))
	for i, child := range m.children {
		next, cmd := child.Update(msg)
		children[i] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.children = children
	return m, squall.Batch(cmds...)
}

// columns computes how many columns fit the current width.
func (m Model) columns() int {
	count := len(m.children)
	if count == 0 {
		return 0
	}
	maxCols := count
	if m.cfg.Columns > 0 && m.cfg.Columns < maxCols {
		maxCols = m.cfg.Columns
	}
	if !m.cfg.Wrap || m.width <= 0 {
		return maxCols
	}
	for cols := maxCols; cols > 1; cols-- {
		required := m.cfg.MinItemWidth*cols + m.cfg.Gap*(cols-1)
		if required <= m.width {
			return cols
		}
	}
	return 1
}

// View renders the children along the configured axis.
func (m Model) View() string {
	if len(m.children) == 0 {
		return ""
	}
	if m.cfg.Direction == Column {
		views := make([]string, len(m.children))
		for i, c := range m.children {
			views[i] = c.View()
		}
		return strings.Join(views, "\n")
	}
	return m.viewRows()
}

// viewRows renders row-direction layout: children are split into rows
// of the computed column count, and each row merges its children's
// lines side by side.
func (m Model) viewRows() string {
	cols := m.columns()
	colWidth := m.cfg.MinItemWidth
	if m.width > 0 {
		avail := m.width - m.cfg.Gap*(cols-1)
		if w := avail / cols; w > colWidth {
			colWidth = w
		}
	}

	var rows []string
	for start := 0; start < len(m.children); start += cols {
		end := start + cols
		if end > len(m.children) {
			end = len(m.children)
		}
		rows = append(rows, m.mergeRow(m.children[start:end], colWidth))
	}
	return strings.Join(rows, "\n")
}

// mergeRow joins the children's views horizontally, padding every cell
// to the column width.
func (m Model) mergeRow(children []squall.Model, colWidth int) string {
	cells := make([][]string, len(children))
	height := 0
	for i, c := range children {
		cells[i] = strings.Split(c.View(), "\n")
		if len(cells[i]) > height {
			height = len(cells[i])
		}
	}

	gap := strings.Repeat(" ", m.cfg.Gap)
	var b strings.Builder
	for line := 0; line < height; line++ {
		if line > 0 {
			b.WriteByte('\n')
		}
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(gap)
			}
			var s string
			if line < len(cell) {
				s = cell[line]
			}
			b.WriteString(textfmt.Pad(textfmt.Clamp(s, colWidth), colWidth))
		}
	}
	return b.String()
}
