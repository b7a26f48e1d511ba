// Package list renders a paginated, navigable list of items with
// pluggable item rendering.
//
// Items implement the Item interface; how each row renders is decided
// by a Delegate, so the same list machinery can show plain rows, rich
// multi-line rows, or anything else. An embedded spinner can indicate
// background loading.
package list

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/squall"
	"github.com/dshills/squall/key"
	"github.com/dshills/squall/style"
	"github.com/dshills/squall/textfmt"
	"github.com/dshills/squall/widget/spinner"
)

// Item is an entry in the list.
type Item interface {
	// FilterValue is the string used when filtering against this item.
	FilterValue() string
}

// Delegate controls how items render and react.
type Delegate interface {
	// Render writes the item's row(s) to w.
	Render(w io.Writer, m Model, index int, item Item)

	// Height is the number of lines one item occupies.
	Height() int

	// Spacing is the number of blank lines between items.
	Spacing() int
}

// DefaultDelegate renders one line per item with a cursor marker.
type DefaultDelegate struct {
	// SelectedStyle highlights the row under the cursor.
	SelectedStyle style.Style
}

// NewDefaultDelegate returns a delegate with the stock styling.
func NewDefaultDelegate() DefaultDelegate {
	return DefaultDelegate{
		SelectedStyle: style.New().Foreground(style.MustHex("#7d56f4")).Bold(),
	}
}

func (d DefaultDelegate) Render(w io.Writer, m Model, index int, item Item) {
	line := item.FilterValue()
	if index == m.Index() {
		fmt.Fprint(w, d.SelectedStyle.Render("> "+line))
		return
	}
	fmt.Fprint(w, "  "+line)
}

func (d DefaultDelegate) Height() int  { return 1 }
func (d DefaultDelegate) Spacing() int { return 0 }

type action int

const (
	actNone action = iota
	actUp
	actDown
	actPrevPage
	actNextPage
	actHome
	actEnd
)

func defaultBindings() *key.Bindings[action] {
	b := key.NewBindings[action]()
	b.Bind(actUp, key.MustParse("up"), key.MustParse("k"))
	b.Bind(actDown, key.MustParse("down"), key.MustParse("j"))
	b.Bind(actPrevPage, key.MustParse("left"), key.MustParse("pgup"))
	b.Bind(actNextPage, key.MustParse("right"), key.MustParse("pgdown"))
	b.Bind(actHome, key.MustParse("home"))
	b.Bind(actEnd, key.MustParse("end"))
	return b
}

// Model is the list state. Create one with New.
type Model struct {
	// Title is rendered above the items.
	Title string

	// TitleStyle styles the title line.
	TitleStyle style.Style

	// StatusStyle styles the status bar.
	StatusStyle style.Style

	// ShowTitle, ShowStatusBar and ShowPagination toggle the chrome.
	ShowTitle      bool
	ShowStatusBar  bool
	ShowPagination bool

	// InfiniteScrolling wraps the cursor around the ends.
	InfiniteScrolling bool

	// Singular and Plural name the items in the status bar.
	Singular, Plural string

	width  int
	height int

	items    []Item
	delegate Delegate
	cursor   int

	spin     spinner.Model
	spinning bool

	status   string
	bindings *key.Bindings[action]
}

// New creates a list of the given items.
func New(items []Item, delegate Delegate, width, height int) Model {
	return Model{
		Title:          "List",
		TitleStyle:     style.New().Bold(),
		StatusStyle:    style.New().Faint(),
		ShowTitle:      true,
		ShowStatusBar:  true,
		ShowPagination: true,
		Singular:       "item",
		Plural:         "items",
		width:          width,
		height:         height,
		items:          items,
		delegate:       delegate,
		spin:           spinner.New(spinner.Line),
		bindings:       defaultBindings(),
	}
}

// Index returns the cursor position across all items.
func (m Model) Index() int { return m.cursor }

// Items returns the items in order.
func (m Model) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// SelectedItem returns the item under the cursor, or nil for an empty
// list.
func (m Model) SelectedItem() Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

// SetItems replaces the items and clamps the cursor.
func (m Model) SetItems(items []Item) Model {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// InsertItem appends an item.
func (m Model) InsertItem(item Item) Model {
	items := make([]Item, 0, len(m.items)+1)
	items = append(items, m.items...)
	items = append(items, item)
	m.items = items
	return m
}

// SetSize updates the rendered dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m
}

// SetStatusMessage shows a transient message in the status bar.
func (m Model) SetStatusMessage(s string) Model {
	m.status = s
	return m
}

// StartSpinner shows the loading spinner. The returned command must be
// scheduled for the animation to run.
func (m Model) StartSpinner() (Model, squall.Cmd) {
	m.spinning = true
	return m, m.spin.Tick()
}

// StopSpinner hides the loading spinner.
func (m Model) StopSpinner() Model {
	m.spinning = false
	return m
}

// perPage is how many items fit one page given the chrome and the
// delegate's item height.
func (m Model) perPage() int {
	rows := m.height
	if m.ShowTitle {
		rows--
	}
	if m.ShowStatusBar {
		rows--
	}
	if m.ShowPagination {
		rows--
	}
	per := rows / (m.delegate.Height() + m.delegate.Spacing())
	if per < 1 {
		per = 1
	}
	return per
}

// Page returns the 0-based page the cursor is on.
func (m Model) Page() int { return m.cursor / m.perPage() }

// TotalPages returns the page count, at least 1.
func (m Model) TotalPages() int {
	if len(m.items) == 0 {
		return 1
	}
	return (len(m.items) + m.perPage() - 1) / m.perPage()
}

// CursorUp moves the cursor up one item, wrapping when infinite
// scrolling is on.
func (m Model) CursorUp() Model {
	if m.cursor > 0 {
		m.cursor--
		return m
	}
	if m.InfiniteScrolling && len(m.items) > 0 {
		m.cursor = len(m.items) - 1
	}
	return m
}

// CursorDown moves the cursor down one item, wrapping when infinite
// scrolling is on.
func (m Model) CursorDown() Model {
	if m.cursor < len(m.items)-1 {
		m.cursor++
		return m
	}
	if m.InfiniteScrolling && len(m.items) > 0 {
		m.cursor = 0
	}
	return m
}

// PrevPage moves the cursor one page back.
func (m Model) PrevPage() Model {
	m.cursor -= m.perPage()
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// NextPage moves the cursor one page forward.
func (m Model) NextPage() Model {
	m.cursor += m.perPage()
	if m.cursor > len(m.items)-1 {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// Update handles navigation keys, spinner ticks and resizes.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	switch v := msg.(type) {
	case squall.ResizeMsg:
		return m.SetSize(v.Width, v.Height), nil
	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		spin, cmd := m.spin.Update(v)
		m.spin = spin
		return m, cmd
	}

	act, ok := m.bindings.Lookup(msg)
	if !ok {
		return m, nil
	}
	switch act {
	case actUp:
		return m.CursorUp(), nil
	case actDown:
		return m.CursorDown(), nil
	case actPrevPage:
		return m.PrevPage(), nil
	case actNextPage:
		return m.NextPage(), nil
	case actHome:
		m.cursor = 0
	case actEnd:
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
	}
	return m, nil
}

// statusLine describes the list contents for the status bar.
func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	n := len(m.items)
	name := m.Plural
	if n == 1 {
		name = m.Singular
	}
	if n == 0 {
		return "no " + m.Plural
	}
	return fmt.Sprintf("%d %s", n, name)
}

// pagination renders one dot per page, the active page filled.
func (m Model) pagination() string {
	total := m.TotalPages()
	if total <= 1 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < total; i++ {
		if i == m.Page() {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

// View renders the title, the current page of items, pagination dots
// and the status bar.
func (m Model) View() string {
	var sections []string

	if m.ShowTitle {
		title := m.TitleStyle.Render(m.Title)
		if m.spinning {
			title = m.spin.View() + " " + title
		}
		sections = append(sections, textfmt.Clamp(title, m.width))
	}

	per := m.perPage()
	start := m.Page() * per
	end := start + per
	if end > len(m.items) {
		end = len(m.items)
	}
	var rows strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			rows.WriteString(strings.Repeat("\n", m.delegate.Spacing()+1))
		}
		m.delegate.Render(&rows, m, i, m.items[i])
	}
	sections = append(sections, rows.String())

	if m.ShowPagination {
		if dots := m.pagination(); dots != "" {
			sections = append(sections, dots)
		}
	}
	if m.ShowStatusBar {
		sections = append(sections, m.StatusStyle.Render(m.statusLine()))
	}
	return strings.Join(sections, "\n")
}
