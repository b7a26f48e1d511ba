package textinput

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/squall"
	"github.com/dshills/squall/style"
)

// defaultBlinkRate is how fast the cursor blinks when focused.
const defaultBlinkRate = 500 * time.Millisecond

// BlinkMsg toggles a cursor's visibility. ID and Tag gate delivery the
// same way spinner ticks are gated.
type BlinkMsg struct {
	ID  string
	Tag int
}

// Cursor is the blinking caret inside a text input. It renders the
// character under the cursor position, reversed when visible.
type Cursor struct {
	// BlinkRate is the interval between visibility toggles.
	BlinkRate time.Duration

	// Style is applied when the cursor is visible.
	Style style.Style

	char    string
	id      string
	tag     int
	focused bool
	visible bool
}

// NewCursor creates a cursor with the default blink rate.
func NewCursor() Cursor {
	return Cursor{
		BlinkRate: defaultBlinkRate,
		Style:     style.New().Reverse(),
		char:      " ",
		id:        uuid.NewString(),
		visible:   true,
	}
}

// SetChar sets the character the cursor covers.
func (c Cursor) SetChar(s string) Cursor {
	if s == "" {
		s = " "
	}
	c.char = s
	return c
}

// Focus starts blinking. The returned command schedules the first
// toggle.
func (c Cursor) Focus() (Cursor, squall.Cmd) {
	c.focused = true
	c.visible = true
	return c, c.blink()
}

// Blur stops blinking and hides the blink styling.
func (c Cursor) Blur() Cursor {
	c.focused = false
	c.visible = false
	return c
}

func (c Cursor) blink() squall.Cmd {
	id, tag := c.id, c.tag
	return squall.Tick(c.BlinkRate, func(time.Time) squall.Msg {
		return BlinkMsg{ID: id, Tag: tag}
	})
}

// Update toggles visibility on a matching blink and re-arms the timer.
func (c Cursor) Update(msg squall.Msg) (Cursor, squall.Cmd) {
	blink, ok := msg.(BlinkMsg)
	if !ok {
		return c, nil
	}
	if blink.ID != c.id || blink.Tag != c.tag {
		return c, nil
	}
	if !c.focused {
		return c, nil
	}
	c.visible = !c.visible
	c.tag++
	return c, c.blink()
}

// View renders the character under the cursor.
func (c Cursor) View() string {
	if c.focused && c.visible {
		return c.Style.Render(c.char)
	}
	return c.char
}
