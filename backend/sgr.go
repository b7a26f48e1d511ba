package backend

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// applySGR interprets the parameter body of an SGR sequence ("1;31" from
// "\x1b[1;31m") against a base style and returns the updated style. Unknown
// parameters are skipped so frames with unsupported codes still render.
func applySGR(style tcell.Style, params string) tcell.Style {
	if params == "" {
		return tcell.StyleDefault
	}

	parts := strings.Split(params, ";")
	for i := 0; i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}

		switch {
		case n == 0:
			style = tcell.StyleDefault
		case n == 1:
			style = style.Bold(true)
		case n == 2:
			style = style.Dim(true)
		case n == 3:
			style = style.Italic(true)
		case n == 4:
			style = style.Underline(true)
		case n == 5:
			style = style.Blink(true)
		case n == 7:
			style = style.Reverse(true)
		case n == 9:
			style = style.StrikeThrough(true)
		case n == 22:
			style = style.Bold(false).Dim(false)
		case n == 23:
			style = style.Italic(false)
		case n == 24:
			style = style.Underline(false)
		case n == 25:
			style = style.Blink(false)
		case n == 27:
			style = style.Reverse(false)
		case n == 29:
			style = style.StrikeThrough(false)
		case n >= 30 && n <= 37:
			style = style.Foreground(tcell.PaletteColor(n - 30))
		case n == 38:
			var c tcell.Color
			var ok bool
			c, i, ok = extendedColor(parts, i)
			if ok {
				style = style.Foreground(c)
			}
		case n == 39:
			style = style.Foreground(tcell.ColorDefault)
		case n >= 40 && n <= 47:
			style = style.Background(tcell.PaletteColor(n - 40))
		case n == 48:
			var c tcell.Color
			var ok bool
			c, i, ok = extendedColor(parts, i)
			if ok {
				style = style.Background(c)
			}
		case n == 49:
			style = style.Background(tcell.ColorDefault)
		case n >= 90 && n <= 97:
			style = style.Foreground(tcell.PaletteColor(n - 90 + 8))
		case n >= 100 && n <= 107:
			style = style.Background(tcell.PaletteColor(n - 100 + 8))
		}
	}
	return style
}

// extendedColor parses the tail of a 38/48 parameter group starting at
// parts[i]. It returns the color, the index of the last consumed part, and
// whether the group was well formed.
func extendedColor(parts []string, i int) (tcell.Color, int, bool) {
	if i+1 >= len(parts) {
		return 0, i, false
	}
	switch parts[i+1] {
	case "5":
		if i+2 >= len(parts) {
			return 0, i + 1, false
		}
		n, err := strconv.Atoi(parts[i+2])
		if err != nil || n < 0 || n > 255 {
			return 0, i + 2, false
		}
		return tcell.PaletteColor(n), i + 2, true
	case "2":
		if i+4 >= len(parts) {
			return 0, len(parts) - 1, false
		}
		r, err1 := strconv.Atoi(parts[i+2])
		g, err2 := strconv.Atoi(parts[i+3])
		b, err3 := strconv.Atoi(parts[i+4])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, i + 4, false
		}
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), i + 4, true
	default:
		return 0, i, false
	}
}
