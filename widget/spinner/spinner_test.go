package spinner

import (
	"testing"
	"time"

	"github.com/dshills/squall"
	"github.com/dshills/squall/style"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, b := New(Line), New(Line)
	if a.ID() == b.ID() {
		t.Error("two spinners share an id")
	}
}

func TestTickAdvancesAndRearms(t *testing.T) {
	m := New(Line)

	next, cmd := m.Update(TickMsg{ID: m.ID(), Tag: 0})
	if cmd == nil {
		t.Fatal("matching tick did not re-arm the timer")
	}
	if next.View() != "/" {
		t.Errorf("expected frame %q, got %q", "/", next.View())
	}
}

func TestFrameWraps(t *testing.T) {
	m := New(Line)
	for i := 0; i < len(Line.Frames); i++ {
		m, _ = m.Update(TickMsg{ID: m.ID(), Tag: m.tag})
	}
	if m.View() != "|" {
		t.Errorf("expected the animation to wrap to %q, got %q", "|", m.View())
	}
}

func TestForeignIDIgnored(t *testing.T) {
	m := New(Line)
	next, cmd := m.Update(TickMsg{ID: "someone-else", Tag: 0})
	if cmd != nil {
		t.Error("foreign tick re-armed the timer")
	}
	if next.View() != m.View() {
		t.Error("foreign tick advanced the frame")
	}
}

func TestStaleTagIgnored(t *testing.T) {
	m := New(Line)
	m, _ = m.Update(TickMsg{ID: m.ID(), Tag: 0})

	// A duplicate of the consumed tick must not advance the frame again.
	next, cmd := m.Update(TickMsg{ID: m.ID(), Tag: 0})
	if cmd != nil {
		t.Error("stale tick re-armed the timer")
	}
	if next.View() != m.View() {
		t.Error("stale tick advanced the frame")
	}
}

func TestNonTickMessagesIgnored(t *testing.T) {
	m := New(Dot)
	next, cmd := m.Update(squall.KeyMsg{Key: squall.KeyRune, Rune: 'x'})
	if cmd != nil || next.View() != m.View() {
		t.Error("unrelated message affected the spinner")
	}
}

func TestStyleApplied(t *testing.T) {
	m := New(Line)
	m.Style = style.New().Foreground(style.Red)
	if got := m.View(); got == "|" {
		t.Error("style was not applied to the frame")
	}
}

func TestTickCommandCarriesTag(t *testing.T) {
	m := New(Line)
	m, _ = m.Update(TickMsg{ID: m.ID(), Tag: 0})

	// The re-armed command must carry the incremented tag so the next
	// tick is accepted.
	if m.tag != 1 {
		t.Errorf("expected tag 1 after one tick, got %d", m.tag)
	}
	if m.Type.FPS != time.Second/10 {
		t.Errorf("unexpected fps %v", m.Type.FPS)
	}
}
