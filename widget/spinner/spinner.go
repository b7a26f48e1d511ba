// Package spinner renders a small looping animation driven by tick
// commands.
//
// A spinner owns a unique id and a monotonically increasing tag. Every
// tick message carries both; ticks for another spinner or from a stale
// burst are ignored, so a spinner never animates faster than its frame
// rate no matter how many ticks are in flight.
package spinner

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/squall"
	"github.com/dshills/squall/style"
)

// Type is a frame set with its interval.
type Type struct {
	Frames []string
	FPS    time.Duration
}

// Built-in frame sets.
var (
	Line      = Type{Frames: []string{"|", "/", "-", "\\"}, FPS: time.Second / 10}
	Dot       = Type{Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}, FPS: time.Second / 10}
	MiniDot   = Type{Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, FPS: time.Second / 12}
	Jump      = Type{Frames: []string{"⢄", "⢂", "⢁", "⡁", "⡈", "⡐", "⡠"}, FPS: time.Second / 10}
	Pulse     = Type{Frames: []string{"█", "▓", "▒", "░"}, FPS: time.Second / 8}
	Points    = Type{Frames: []string{"∙∙∙", "●∙∙", "∙●∙", "∙∙●"}, FPS: time.Second / 7}
	Globe     = Type{Frames: []string{"🌍", "🌎", "🌏"}, FPS: time.Second / 4}
	Moon      = Type{Frames: []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}, FPS: time.Second / 8}
	Monkey    = Type{Frames: []string{"🙈", "🙉", "🙊"}, FPS: time.Second / 3}
	Meter     = Type{Frames: []string{"▱▱▱", "▰▱▱", "▰▰▱", "▰▰▰", "▰▰▱", "▰▱▱", "▱▱▱"}, FPS: time.Second / 7}
	Hamburger = Type{Frames: []string{"☱", "☲", "☴", "☲"}, FPS: time.Second / 3}
)

// TickMsg advances a spinner's animation. ID and Tag gate delivery: a
// spinner only honors ticks carrying its own id and current tag.
type TickMsg struct {
	ID   string
	Tag  int
	Time time.Time
}

// Model is the spinner state. Create one with New.
type Model struct {
	// Type is the frame set in use.
	Type Type

	// Style is applied to the rendered frame.
	Style style.Style

	id    string
	tag   int
	frame int
}

// New creates a spinner with the given frame set.
func New(t Type) Model {
	return Model{Type: t, id: uuid.NewString()}
}

// ID returns the spinner's unique id.
func (m Model) ID() string { return m.id }

// Tick returns the command that schedules the next animation frame.
// Call it once when the spinner becomes visible; Update re-arms it.
func (m Model) Tick() squall.Cmd {
	id, tag := m.id, m.tag
	return squall.Tick(m.Type.FPS, func(now time.Time) squall.Msg {
		return TickMsg{ID: id, Tag: tag, Time: now}
	})
}

// Update advances the animation on a matching tick and re-arms the
// timer. All other messages leave the spinner unchanged.
func (m Model) Update(msg squall.Msg) (Model, squall.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok {
		return m, nil
	}
	if tick.ID != "" && tick.ID != m.id {
		return m, nil
	}
	if tick.Tag != m.tag {
		return m, nil
	}

	m.frame++
	if m.frame >= len(m.Type.Frames) {
		m.frame = 0
	}
	m.tag++
	return m, m.Tick()
}

// View renders the current frame.
func (m Model) View() string {
	if len(m.Type.Frames) == 0 {
		return ""
	}
	return m.Style.Render(m.Type.Frames[m.frame])
}
