// Package style builds ANSI SGR escape sequences for styled terminal text.
//
// Styles are immutable values: each chained call returns a copy, so a base
// style can be derived from safely. Rendering always emits plain SGR codes;
// capability downgrading is left to the caller or the terminal.
package style

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type colorKind int

const (
	colorUnset colorKind = iota
	colorBasic
	colorIndexed
	colorRGB
)

// Color is a terminal color in one of three forms: one of the 16 basic
// colors, a 256-palette index, or a 24-bit RGB value.
type Color struct {
	kind    colorKind
	basic   uint8
	index   uint8
	r, g, b uint8
}

// Basic 16-color palette.
var (
	Black   = Color{kind: colorBasic, basic: 0}
	Red     = Color{kind: colorBasic, basic: 1}
	Green   = Color{kind: colorBasic, basic: 2}
	Yellow  = Color{kind: colorBasic, basic: 3}
	Blue    = Color{kind: colorBasic, basic: 4}
	Magenta = Color{kind: colorBasic, basic: 5}
	Cyan    = Color{kind: colorBasic, basic: 6}
	White   = Color{kind: colorBasic, basic: 7}

	BrightBlack   = Color{kind: colorBasic, basic: 8}
	BrightRed     = Color{kind: colorBasic, basic: 9}
	BrightGreen   = Color{kind: colorBasic, basic: 10}
	BrightYellow  = Color{kind: colorBasic, basic: 11}
	BrightBlue    = Color{kind: colorBasic, basic: 12}
	BrightMagenta = Color{kind: colorBasic, basic: 13}
	BrightCyan    = Color{kind: colorBasic, basic: 14}
	BrightWhite   = Color{kind: colorBasic, basic: 15}
)

// ANSI256 returns the 256-palette color with the given index.
func ANSI256(n uint8) Color { return Color{kind: colorIndexed, index: n} }

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color { return Color{kind: colorRGB, r: r, g: g, b: b} }

// Hex parses a "#rrggbb" (or "#rgb") string into an RGB color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// MustHex is Hex but panics on malformed input. Intended for constants.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Gradient returns steps colors blended from one hex color to another in
// Luv space, endpoints included. Useful for progress fills.
func Gradient(fromHex, toHex string, steps int) ([]Color, error) {
	if steps < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 steps, got %d", steps)
	}
	from, err := colorful.Hex(fromHex)
	if err != nil {
		return nil, fmt.Errorf("parse gradient start %q: %w", fromHex, err)
	}
	to, err := colorful.Hex(toHex)
	if err != nil {
		return nil, fmt.Errorf("parse gradient end %q: %w", toHex, err)
	}
	out := make([]Color, steps)
	for i := range out {
		t := float64(i) / float64(steps-1)
		r, g, b := from.BlendLuv(to, t).Clamped().RGB255()
		out[i] = RGB(r, g, b)
	}
	return out, nil
}

func (c Color) fgCodes() []string {
	switch c.kind {
	case colorBasic:
		if c.basic < 8 {
			return []string{fmt.Sprintf("%d", 30+c.basic)}
		}
		return []string{fmt.Sprintf("%d", 90+c.basic-8)}
	case colorIndexed:
		return []string{"38", "5", fmt.Sprintf("%d", c.index)}
	case colorRGB:
		return []string{"38", "2", fmt.Sprintf("%d", c.r), fmt.Sprintf("%d", c.g), fmt.Sprintf("%d", c.b)}
	default:
		return nil
	}
}

func (c Color) bgCodes() []string {
	switch c.kind {
	case colorBasic:
		if c.basic < 8 {
			return []string{fmt.Sprintf("%d", 40+c.basic)}
		}
		return []string{fmt.Sprintf("%d", 100+c.basic-8)}
	case colorIndexed:
		return []string{"48", "5", fmt.Sprintf("%d", c.index)}
	case colorRGB:
		return []string{"48", "2", fmt.Sprintf("%d", c.r), fmt.Sprintf("%d", c.g), fmt.Sprintf("%d", c.b)}
	default:
		return nil
	}
}

// Style is a set of SGR attributes applied to text on Render.
type Style struct {
	fg, bg Color

	bold      bool
	faint     bool
	italic    bool
	underline bool
	blink     bool
	reverse   bool
	strike    bool
}

// New returns an empty style.
func New() Style { return Style{} }

// Foreground sets the text color.
func (s Style) Foreground(c Color) Style { s.fg = c; return s }

// Background sets the background color.
func (s Style) Background(c Color) Style { s.bg = c; return s }

func (s Style) Bold() Style      { s.bold = true; return s }
func (s Style) Faint() Style     { s.faint = true; return s }
func (s Style) Italic() Style    { s.italic = true; return s }
func (s Style) Underline() Style { s.underline = true; return s }
func (s Style) Blink() Style     { s.blink = true; return s }
func (s Style) Reverse() Style   { s.reverse = true; return s }
func (s Style) Strike() Style    { s.strike = true; return s }

// Render wraps text in the style's SGR codes followed by a reset. A style
// with no attributes returns the text unchanged.
func (s Style) Render(text string) string {
	codes := make([]string, 0, 8)
	if s.bold {
		codes = append(codes, "1")
	}
	if s.faint {
		codes = append(codes, "2")
	}
	if s.italic {
		codes = append(codes, "3")
	}
	if s.underline {
		codes = append(codes, "4")
	}
	if s.blink {
		codes = append(codes, "5")
	}
	if s.reverse {
		codes = append(codes, "7")
	}
	if s.strike {
		codes = append(codes, "9")
	}
	codes = append(codes, s.fg.fgCodes()...)
	codes = append(codes, s.bg.bgCodes()...)

	if len(codes) == 0 {
		return text
	}
	return "\x1b[" + strings.Join(codes, ";") + "m" + text + "\x1b[0m"
}
