// Package border draws boxes around content using selectable character
// sets, with each side independently controllable.
package border

import (
	"strings"

	"github.com/dshills/squall/style"
	"github.com/dshills/squall/textfmt"
)

// Chars is a border character set.
type Chars struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

// Built-in character sets.
var (
	Normal  = Chars{"─", "─", "│", "│", "┌", "┐", "└", "┘"}
	Rounded = Chars{"─", "─", "│", "│", "╭", "╮", "╰", "╯"}
	Thick   = Chars{"━", "━", "┃", "┃", "┏", "┓", "┗", "┛"}
	Double  = Chars{"═", "═", "║", "║", "╔", "╗", "╚", "╝"}
	Block   = Chars{"█", "█", "█", "█", "█", "█", "█", "█"}
	Hidden  = Chars{" ", " ", " ", " ", " ", " ", " ", " "}
)

// Border wraps content in box-drawing characters. The zero value draws
// nothing; use New for a full border.
type Border struct {
	Chars Chars
	Style style.Style

	Top, Bottom, Left, Right bool

	// Width fixes the inner width. Zero means the widest content line.
	Width int
}

// New creates a border on all four sides with the given character set.
func New(chars Chars) Border {
	return Border{Chars: chars, Top: true, Bottom: true, Left: true, Right: true}
}

// WithStyle sets the color/attributes of the border characters.
func (b Border) WithStyle(s style.Style) Border {
	b.Style = s
	return b
}

// WithWidth fixes the inner width.
func (b Border) WithWidth(w int) Border {
	b.Width = w
	return b
}

// Wrap draws the border around content. Content lines are padded to a
// common width so the right edge is straight.
func (b Border) Wrap(content string) string {
	lines := strings.Split(content, "\n")

	width := b.Width
	if width == 0 {
		for _, l := range lines {
			if w := textfmt.Width(l); w > width {
				width = w
			}
		}
	}

	paint := func(s string) string { return b.Style.Render(s) }

	var out []string
	if b.Top {
		var sb strings.Builder
		if b.Left {
			sb.WriteString(b.Chars.TopLeft)
		}
		sb.WriteString(strings.Repeat(b.Chars.Top, width))
		if b.Right {
			sb.WriteString(b.Chars.TopRight)
		}
		out = append(out, paint(sb.String()))
	}

	for _, l := range lines {
		var sb strings.Builder
		if b.Left {
			sb.WriteString(paint(b.Chars.Left))
		}
		sb.WriteString(textfmt.Pad(textfmt.Clamp(l, width), width))
		if b.Right {
			sb.WriteString(paint(b.Chars.Right))
		}
		out = append(out, sb.String())
	}

	if b.Bottom {
		var sb strings.Builder
		if b.Left {
			sb.WriteString(b.Chars.BottomLeft)
		}
		sb.WriteString(strings.Repeat(b.Chars.Bottom, width))
		if b.Right {
			sb.WriteString(b.Chars.BottomRight)
		}
		out = append(out, paint(sb.String()))
	}

	return strings.Join(out, "\n")
}
