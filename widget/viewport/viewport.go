// Package viewport provides vertical scrolling over text content, with
// an optional selection mode that highlights a line and reports
// selection changes.
package viewport

import (
	"strings"

	"github.com/dshills/squall"
	"github.com/dshills/squall/key"
	"github.com/dshills/squall/style"
	"github.com/dshills/squall/textfmt"
)

// SelectedMsg is emitted when selection mode moves the highlighted line.
type SelectedMsg struct {
	// Index is the 0-based content line index now selected.
	Index int
}

// Option configures a viewport.
type Option func(*Model)

// WithWrap soft-wraps content lines at the viewport width.
func WithWrap() Option {
	return func(m *Model) { m.wrap = true }
}

// WithSelection enables selection mode with the given highlight style.
func WithSelection(highlight style.Style) Option {
	return func(m *Model) {
		m.selection = true
		m.highlight = highlight
	}
}

// defaultBindings are the stock movement keys: arrows, emacs-style
// ctrl keys, page movement, home/end.
type motion int

const (
	motionNone motion = iota
	motionUp
	motionDown
	motionPageUp
	motionPageDown
	motionTop
	motionBottom
)

func defaultBindings() *key.Bindings[motion] {
	b := key.NewBindings[motion]()
	b.Bind(motionUp, key.MustParse("up"), key.MustParse("ctrl+p"))
	b.Bind(motionDown, key.MustParse("down"), key.MustParse("ctrl+n"))
	b.Bind(motionPageUp, key.MustParse("pgup"), key.MustParse("alt+v"))
	b.Bind(motionPageDown, key.MustParse("pgdown"), key.MustParse("ctrl+v"))
	b.Bind(motionTop, key.MustParse("home"))
	b.Bind(motionBottom, key.MustParse("end"))
	return b
}

// Model is a scrolling window over text content.
type Model struct {
	Width  int
	Height int

	wrap      bool
	selection bool
	highlight style.Style

	offset   int
	selected int
	content  string

	bindings *key.Bindings[motion]
}

// New creates a viewport with the given dimensions.
func New(width, height int, opts ...Option) Model {
	m := Model{
		Width:    width,
		Height:   height,
		bindings: defaultBindings(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SetContent replaces the content. The scroll offset is clamped so the
// view never points past the new content.
func (m Model) SetContent(s string) Model {
	m.content = s
	max := m.maxOffset()
	if m.offset > max {
		m.offset = max
	}
	if n := len(m.lines()); m.selected >= n && n > 0 {
		m.selected = n - 1
	}
	return m
}

// Offset returns the current scroll offset in lines.
func (m Model) Offset() int { return m.offset }

// Selected returns the selected line index. Meaningful only in
// selection mode.
func (m Model) Selected() int { return m.selected }

// AtBottom reports whether the viewport shows the end of the content.
func (m Model) AtBottom() bool { return m.offset >= m.maxOffset() }

// lines returns the content shaped for display: split on newlines and,
// when wrapping is on, soft-wrapped at the viewport width.
func (m Model) lines() []string {
	if m.content == "" {
		return nil
	}
	raw := strings.Split(m.content, "\n")
	if !m.wrap {
		return raw
	}
	var out []string
	for _, l := range raw {
		out = append(out, textfmt.Wrap(l, m.Width)...)
	}
	return out
}

func (m Model) maxOffset() int {
	n := len(m.lines()) - m.Height
	if n < 0 {
		return 0
	}
	return n
}

// LineUp scrolls up one line, or moves the selection in selection mode.
func (m Model) LineUp() Model {
	if m.selection {
		if m.selected > 0 {
			m.selected--
		}
		if m.selected < m.offset {
			m.offset = m.selected
		}
		return m
	}
	if m.offset > 0 {
		m.offset--
	}
	return m
}

// LineDown scrolls down one line, or moves the selection in selection
// mode.
func (m Model) LineDown() Model {
	if m.selection {
		if n := len(m.lines()); m.selected < n-1 {
			m.selected++
		}
		if m.selected >= m.offset+m.Height {
			m.offset = m.selected - m.Height + 1
		}
		return m
	}
	if !m.AtBottom() {
		m.offset++
	}
	return m
}

// PageUp scrolls up one page.
func (m Model) PageUp() Model {
	m.offset -= m.Height
	if m.offset < 0 {
		m.offset = 0
	}
	if m.selection {
		m.selected = m.offset
	}
	return m
}

// PageDown scrolls down one page.
func (m Model) PageDown() Model {
	m.offset += m.Height
	if max := m.maxOffset(); m.offset > max {
		m.offset = max
	}
	if m.selection {
		m.selected = m.offset
	}
	return m
}

// GotoTop scrolls to the first line.
func (m Model) GotoTop() Model {
	m.offset = 0
	if m.selection {
		m.selected = 0
	}
	return m
}

// GotoBottom scrolls to the last page.
func (m Model) GotoBottom() Model {
	m.offset = m.maxOffset()
	if m.selection {
		if n := len(m.lines()); n > 0 {
			m.selected = n - 1
		}
	}
	return m
}

// Update applies movement keys and resizes. In selection mode a
// movement that changes the selected line produces a SelectedMsg.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	if r, ok := msg.(squall.ResizeMsg); ok {
		m.Width, m.Height = r.Width, r.Height
		return m, nil
	}

	mo, ok := m.bindings.Lookup(msg)
	if !ok {
		return m, nil
	}
	before := m.selected
	switch mo {
	case motionUp:
		m = m.LineUp()
	case motionDown:
		m = m.LineDown()
	case motionPageUp:
		m = m.PageUp()
	case motionPageDown:
		m = m.PageDown()
	case motionTop:
		m = m.GotoTop()
	case motionBottom:
		m = m.GotoBottom()
	}
	if m.selection && m.selected != before {
		idx := m.selected
		return m, squall.Sync(func() squall.Msg { return SelectedMsg{Index: idx} })
	}
	return m, nil
}

// View renders the visible window, padded with blank lines to the
// viewport height.
func (m Model) View() string {
	lines := m.lines()
	var b strings.Builder
	for row := 0; row < m.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		i := m.offset + row
		if i >= len(lines) {
			continue
		}
		line := textfmt.Clamp(lines[i], m.Width)
		if m.selection && i == m.selected {
			line = m.highlight.Render(textfmt.Pad(line, m.Width))
		}
		b.WriteString(line)
	}
	return b.String()
}
