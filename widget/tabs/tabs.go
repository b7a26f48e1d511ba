// Package tabs renders a tab strip with a bordered content window and
// routes messages to the active tab's child model.
package tabs

import (
	"strings"

	"github.com/dshills/squall"
	"github.com/dshills/squall/key"
	"github.com/dshills/squall/style"
	"github.com/dshills/squall/textfmt"
	"github.com/dshills/squall/widget/border"
)

// Tab is one tab: a title and the model rendering its content.
type Tab struct {
	Title string
	Child squall.Model
}

type move int

const (
	moveNone move = iota
	moveNext
	movePrev
)

func defaultBindings() *key.Bindings[move] {
	b := key.NewBindings[move]()
	b.Bind(moveNext, key.MustParse("right"), key.MustParse("tab"),
		key.MustParse("l"), key.MustParse("n"))
	b.Bind(movePrev, key.MustParse("left"), key.MustParse("backtab"),
		key.MustParse("h"), key.MustParse("p"))
	return b
}

// Model is the tab container state.
type Model struct {
	// Width is the rendered width of the strip and window.
	Width int

	// Highlight styles the active tab title.
	Highlight style.Style

	tabs     []Tab
	active   int
	bindings *key.Bindings[move]
}

// New creates a tab container. The first tab starts active.
func New(width int, tabs ...Tab) Model {
	return Model{
		Width:     width,
		Highlight: style.New().Bold().Foreground(style.MustHex("#7d56f4")),
		tabs:      tabs,
		bindings:  defaultBindings(),
	}
}

// Active returns the index of the active tab.
func (m Model) Active() int { return m.active }

// SetActive switches to the given tab, clamped to the valid range.
func (m Model) SetActive(i int) Model {
	if len(m.tabs) == 0 {
		m.active = 0
		return m
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.tabs) {
		i = len(m.tabs) - 1
	}
	m.active = i
	return m
}

// Update handles tab cycling keys and forwards everything else to the
// active tab's child.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	if mv, ok := m.bindings.Lookup(msg); ok {
		switch mv {
		case moveNext:
			return m.SetActive(m.active + 1), nil
		case movePrev:
			return m.SetActive(m.active - 1), nil
		}
	}

	if len(m.tabs) == 0 {
		return m, nil
	}
	child, cmd := m.tabs[m.active].Child.Update(msg)
	tabs := make([]Tab, len(m.tabs))
	copy(tabs, m.tabs)
	tabs[m.active].Child = child
	m.tabs = tabs
	return m, cmd
}

// View renders the tab strip above a bordered window holding the active
// tab's view.
func (m Model) View() string {
	if len(m.tabs) == 0 {
		return ""
	}

	var strip strings.Builder
	for i, tab := range m.tabs {
		if i > 0 {
			strip.WriteString(" ")
		}
		title := " " + tab.Title + " "
		if i == m.active {
			strip.WriteString(m.Highlight.Render("[" + title + "]"))
		} else {
			strip.WriteString(" " + title + " ")
		}
	}

	inner := m.Width - 2
	if inner < 1 {
		inner = 1
	}
	window := border.New(border.Rounded).WithWidth(inner).
		Wrap(m.tabs[m.active].Child.View())

	return textfmt.Clamp(strip.String(), m.Width) + "\n" + window
}
