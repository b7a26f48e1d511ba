// Package progress renders a percentage bar with an optional gradient
// fill.
package progress

import (
	"fmt"
	"strings"

	"github.com/dshills/squall/style"
)

const (
	defaultWidth     = 40
	defaultFullChar  = "█"
	defaultEmptyChar = "░"
)

// Model renders a horizontal progress bar.
type Model struct {
	// Width is the bar width in cells, excluding the percentage label.
	Width int

	// FullChar and EmptyChar draw the filled and unfilled portions.
	FullChar, EmptyChar string

	// ShowPercentage appends a numeric label after the bar.
	ShowPercentage bool

	// EmptyStyle colors the unfilled portion.
	EmptyStyle style.Style

	percent  float64
	gradient []style.Color
	solid    style.Style
	useSolid bool
}

// Option configures a progress bar.
type Option func(*Model)

// WithWidth sets the bar width in cells.
func WithWidth(w int) Option {
	return func(m *Model) { m.Width = w }
}

// WithGradient blends the fill between two hex colors across the bar.
func WithGradient(fromHex, toHex string) Option {
	return func(m *Model) {
		g, err := style.Gradient(fromHex, toHex, max(m.Width, 2))
		if err != nil {
			// Malformed hex constants are a programming error.
			panic(err)
		}
		m.gradient = g
	}
}

// WithSolidFill colors the whole fill with one style.
func WithSolidFill(s style.Style) Option {
	return func(m *Model) {
		m.solid = s
		m.useSolid = true
	}
}

// WithoutPercentage hides the numeric label.
func WithoutPercentage() Option {
	return func(m *Model) { m.ShowPercentage = false }
}

// New creates a progress bar at zero percent.
func New(opts ...Option) Model {
	m := Model{
		Width:          defaultWidth,
		FullChar:       defaultFullChar,
		EmptyChar:      defaultEmptyChar,
		ShowPercentage: true,
		EmptyStyle:     style.New().Faint(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Percent returns the current completion in [0, 1].
func (m Model) Percent() float64 { return m.percent }

// SetPercent clamps and stores the completion fraction.
func (m Model) SetPercent(p float64) Model {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	m.percent = p
	return m
}

// IncrPercent adds delta to the completion fraction, clamped to [0, 1].
func (m Model) IncrPercent(delta float64) Model {
	return m.SetPercent(m.percent + delta)
}

// View renders the bar at the stored percentage.
func (m Model) View() string {
	return m.ViewAs(m.percent)
}

// ViewAs renders the bar at an arbitrary percentage without storing it.
func (m Model) ViewAs(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}

	filled := int(float64(m.Width)*percent + 0.5)
	if filled > m.Width {
		filled = m.Width
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		switch {
		case m.useSolid:
			b.WriteString(m.solid.Render(m.FullChar))
		case m.gradient != nil:
			idx := i * (len(m.gradient) - 1) / max(m.Width-1, 1)
			b.WriteString(style.New().Foreground(m.gradient[idx]).Render(m.FullChar))
		default:
			b.WriteString(m.FullChar)
		}
	}
	if empty := m.Width - filled; empty > 0 {
		b.WriteString(m.EmptyStyle.Render(strings.Repeat(m.EmptyChar, empty)))
	}

	if m.ShowPercentage {
		fmt.Fprintf(&b, " %3.0f%%", percent*100)
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
