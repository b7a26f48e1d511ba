package viewport

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/squall"
	"github.com/dshills/squall/style"
)

func content(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line" + string(rune('0'+i%10))
	}
	return strings.Join(lines, "\n")
}

func TestScrollClamping(t *testing.T) {
	m := New(20, 5).SetContent(content(12))

	if m.Offset() != 0 {
		t.Errorf("fresh viewport offset = %d", m.Offset())
	}
	m = m.LineUp()
	if m.Offset() != 0 {
		t.Error("scrolled above the top")
	}
	m = m.GotoBottom()
	if m.Offset() != 7 {
		t.Errorf("bottom offset = %d, expected 7", m.Offset())
	}
	m = m.LineDown()
	if m.Offset() != 7 {
		t.Error("scrolled past the bottom")
	}
	if !m.AtBottom() {
		t.Error("AtBottom() false at max offset")
	}
}

func TestPageMovement(t *testing.T) {
	m := New(20, 5).SetContent(content(20))

	m = m.PageDown()
	if m.Offset() != 5 {
		t.Errorf("after PageDown offset = %d, expected 5", m.Offset())
	}
	m = m.PageDown()
	m = m.PageDown()
	m = m.PageDown()
	if m.Offset() != 15 {
		t.Errorf("offset should clamp at 15, got %d", m.Offset())
	}
	m = m.PageUp()
	if m.Offset() != 10 {
		t.Errorf("after PageUp offset = %d, expected 10", m.Offset())
	}
	m = m.GotoTop()
	if m.Offset() != 0 {
		t.Errorf("after GotoTop offset = %d", m.Offset())
	}
}

func TestViewWindow(t *testing.T) {
	m := New(20, 3).SetContent("a\nb\nc\nd\ne")
	m = m.LineDown()

	got := strings.Split(m.View(), "\n")
	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("view has %d lines, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestViewPadsToHeight(t *testing.T) {
	m := New(20, 4).SetContent("only")
	got := strings.Split(m.View(), "\n")
	if len(got) != 4 {
		t.Errorf("view has %d lines, expected the full height 4", len(got))
	}
}

func TestUpdateKeys(t *testing.T) {
	m := New(20, 3).SetContent(content(10))

	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyDown})
	if m.Offset() != 1 {
		t.Errorf("down key: offset = %d", m.Offset())
	}
	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyRune, Rune: 'n', Mod: squall.ModCtrl})
	if m.Offset() != 2 {
		t.Errorf("ctrl+n: offset = %d", m.Offset())
	}
	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyUp})
	if m.Offset() != 1 {
		t.Errorf("up key: offset = %d", m.Offset())
	}
	// Unrelated keys leave the viewport alone.
	m, cmd := m.Update(squall.KeyMsg{Key: squall.KeyRune, Rune: 'x'})
	if cmd != nil || m.Offset() != 1 {
		t.Error("unbound key affected the viewport")
	}
}

func TestResize(t *testing.T) {
	m := New(20, 3)
	m, _ = m.Update(squall.ResizeMsg{Width: 80, Height: 24})
	if m.Width != 80 || m.Height != 24 {
		t.Errorf("resize not applied: %dx%d", m.Width, m.Height)
	}
}

func TestSelectionEmitsMsg(t *testing.T) {
	m := New(20, 3, WithSelection(style.New().Reverse())).SetContent(content(10))

	m, cmd := m.Update(squall.KeyMsg{Key: squall.KeyDown})
	if m.Selected() != 1 {
		t.Errorf("selected = %d, expected 1", m.Selected())
	}
	if cmd == nil {
		t.Fatal("selection change produced no command")
	}
	msgs := execSync(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	sel, ok := msgs[0].(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", msgs[0])
	}
	if sel.Index != 1 {
		t.Errorf("SelectedMsg.Index = %d, expected 1", sel.Index)
	}
}

func TestSelectionScrollsWithCursor(t *testing.T) {
	m := New(20, 3, WithSelection(style.New().Reverse())).SetContent(content(10))

	for i := 0; i < 5; i++ {
		m, _ = m.Update(squall.KeyMsg{Key: squall.KeyDown})
	}
	if m.Selected() != 5 {
		t.Errorf("selected = %d, expected 5", m.Selected())
	}
	if m.Offset() != 3 {
		t.Errorf("offset = %d, expected 3 so the selection stays visible", m.Offset())
	}
}

func TestWrapIncreasesLineCount(t *testing.T) {
	long := strings.Repeat("x", 25)
	m := New(10, 5, WithWrap()).SetContent(long)
	if got := len(m.lines()); got != 3 {
		t.Errorf("expected 3 wrapped lines, got %d", got)
	}
}

func execSync(cmd squall.Cmd) []squall.Msg {
	return squall.Exec(context.Background(), nil, cmd)
}
