// Package textfmt provides ANSI-aware text measurement and shaping for
// terminal rendering.
//
// All functions operate on display width: grapheme clusters are measured
// with their terminal cell width (East Asian wide characters count as two
// cells) and ANSI escape sequences are carried through untouched without
// contributing to the width.
package textfmt

import (
	"strings"

	"github.com/rivo/uniseg"
)

const esc = "\x1b"

// Width returns the display width of s in terminal cells, ignoring any
// ANSI escape sequences.
func Width(s string) int {
	return uniseg.StringWidth(StripEscapes(s))
}

// StripEscapes removes ANSI escape sequences from s, leaving only the
// visible text.
func StripEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if g == esc {
			skipSequence(gr)
			continue
		}
		b.WriteString(g)
	}
	return b.String()
}

// Wrap breaks s into lines of at most width display cells. Escape
// sequences stay attached to the line they appear on and do not count
// toward the width. The input is treated as a single logical line;
// callers split on newlines first.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}

	lines := []string{""}
	var cur strings.Builder
	used := 0

	flush := func() {
		lines[len(lines)-1] = cur.String()
	}

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if g == esc {
			cur.WriteString(collectSequence(gr))
			continue
		}
		w := gr.Width()
		if used+w > width {
			flush()
			lines = append(lines, "")
			cur.Reset()
			used = 0
		}
		cur.WriteString(g)
		used += w
	}
	flush()
	return lines
}

// Clamp truncates s so its display width does not exceed width. Escape
// sequences after the cut point are preserved so styling resets still
// apply.
func Clamp(s string, width int) string {
	var b strings.Builder
	used := 0
	clamped := false

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if g == esc {
			b.WriteString(collectSequence(gr))
			continue
		}
		if clamped {
			continue
		}
		w := gr.Width()
		if used+w > width {
			clamped = true
			continue
		}
		b.WriteString(g)
		used += w
	}
	return b.String()
}

// Pad right-pads s with spaces until its display width equals width.
// Strings already at or beyond width are returned unchanged.
func Pad(s string, width int) string {
	d := width - Width(s)
	if d <= 0 {
		return s
	}
	return s + strings.Repeat(" ", d)
}

// Fit shapes a view string into a frame for a width x height terminal:
// it keeps the last height lines, clamps and pads each to width, and
// joins them with CRLF as raw-mode terminals expect.
func Fit(view string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for i, l := range lines {
		lines[i] = Pad(Clamp(l, width), width)
	}
	return strings.Join(lines, "\r\n")
}

// collectSequence consumes an escape sequence from gr, whose current
// grapheme is ESC, and returns the full sequence text.
func collectSequence(gr *uniseg.Graphemes) string {
	var b strings.Builder
	b.WriteString(esc)
	if !gr.Next() {
		return b.String()
	}
	g := gr.Str()
	b.WriteString(g)
	if g != "[" {
		// Two-byte escape (e.g. ESC c); already complete.
		return b.String()
	}
	for gr.Next() {
		g = gr.Str()
		b.WriteString(g)
		if isFinalByte(g) {
			break
		}
	}
	return b.String()
}

// skipSequence consumes an escape sequence without retaining it.
func skipSequence(gr *uniseg.Graphemes) {
	if !gr.Next() {
		return
	}
	if gr.Str() != "[" {
		return
	}
	for gr.Next() {
		if isFinalByte(gr.Str()) {
			return
		}
	}
}

// isFinalByte reports whether g terminates a CSI sequence (0x40-0x7e).
func isFinalByte(g string) bool {
	if len(g) != 1 {
		return false
	}
	return g[0] >= 0x40 && g[0] <= 0x7e
}
