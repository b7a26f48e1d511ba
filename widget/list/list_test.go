package list

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dshills/squall"
	"github.com/dshills/squall/widget/spinner"
)

type entry string

func (e entry) FilterValue() string { return string(e) }

func entries(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = entry(fmt.Sprintf("item-%d", i))
	}
	return items
}

func keyDown() squall.KeyMsg { return squall.KeyMsg{Key: squall.KeyDown} }
func keyUp() squall.KeyMsg   { return squall.KeyMsg{Key: squall.KeyUp} }

// newTest returns a list sized so exactly three items fit a page: the
// height of 6 loses one row each to title, status bar and pagination.
func newTest(n int) Model {
	return New(entries(n), NewDefaultDelegate(), 40, 6)
}

func TestCursorMovement(t *testing.T) {
	m := newTest(3)
	m, _ = m.Update(keyDown())
	m, _ = m.Update(keyDown())
	if m.Index() != 2 {
		t.Fatalf("index = %d, want 2", m.Index())
	}
	m, _ = m.Update(keyDown())
	if m.Index() != 2 {
		t.Fatalf("cursor moved past last item: %d", m.Index())
	}
	m, _ = m.Update(keyUp())
	if m.Index() != 1 {
		t.Fatalf("index = %d, want 1", m.Index())
	}
}

func TestInfiniteScrollWraps(t *testing.T) {
	m := newTest(3)
	m.InfiniteScrolling = true
	m = m.CursorUp()
	if m.Index() != 2 {
		t.Fatalf("up from top wrapped to %d, want 2", m.Index())
	}
	m = m.CursorDown()
	if m.Index() != 0 {
		t.Fatalf("down from bottom wrapped to %d, want 0", m.Index())
	}
}

func TestPagination(t *testing.T) {
	m := newTest(7)
	if per := m.perPage(); per != 3 {
		t.Fatalf("perPage = %d, want 3", per)
	}
	if m.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", m.TotalPages())
	}
	m = m.NextPage()
	if m.Page() != 1 || m.Index() != 3 {
		t.Fatalf("page = %d index = %d, want 1/3", m.Page(), m.Index())
	}
	m = m.NextPage()
	m = m.NextPage()
	if m.Index() != 6 {
		t.Fatalf("index clamped to %d, want 6", m.Index())
	}
	m = m.PrevPage()
	m = m.PrevPage()
	m = m.PrevPage()
	if m.Index() != 0 {
		t.Fatalf("index = %d, want 0", m.Index())
	}
}

func TestHomeEndKeys(t *testing.T) {
	m := newTest(7)
	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyEnd})
	if m.Index() != 6 {
		t.Fatalf("end: index = %d, want 6", m.Index())
	}
	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyHome})
	if m.Index() != 0 {
		t.Fatalf("home: index = %d, want 0", m.Index())
	}
}

func TestViewShowsOnlyCurrentPage(t *testing.T) {
	m := newTest(7)
	m = m.NextPage()
	view := m.View()
	for _, want := range []string{"item-3", "item-4", "item-5"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	for _, skip := range []string{"item-0", "item-6"} {
		if strings.Contains(view, skip) {
			t.Fatalf("view shows off-page %q:\n%s", skip, view)
		}
	}
	if !strings.Contains(view, "○●○") {
		t.Fatalf("pagination dots missing:\n%s", view)
	}
}

func TestStatusBar(t *testing.T) {
	m := newTest(7)
	if !strings.Contains(m.View(), "7 items") {
		t.Fatalf("status missing count:\n%s", m.View())
	}
	m = m.SetItems(entries(1))
	if !strings.Contains(m.View(), "1 item") {
		t.Fatalf("status not singular:\n%s", m.View())
	}
	m = m.SetItems(nil)
	if !strings.Contains(m.View(), "no items") {
		t.Fatalf("status for empty list:\n%s", m.View())
	}
	m = m.SetStatusMessage("saved")
	if !strings.Contains(m.View(), "saved") {
		t.Fatalf("status message not shown:\n%s", m.View())
	}
}

func TestSelectedItem(t *testing.T) {
	m := newTest(3)
	m, _ = m.Update(keyDown())
	if got := m.SelectedItem(); got == nil || got.FilterValue() != "item-1" {
		t.Fatalf("SelectedItem = %v", got)
	}
	m = m.SetItems(nil)
	if m.SelectedItem() != nil {
		t.Fatal("SelectedItem on empty list should be nil")
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	m := newTest(7)
	m, _ = m.Update(squall.KeyMsg{Key: squall.KeyEnd})
	m = m.SetItems(entries(2))
	if m.Index() != 1 {
		t.Fatalf("index = %d, want 1", m.Index())
	}
}

func TestInsertItem(t *testing.T) {
	m := newTest(1)
	m = m.InsertItem(entry("extra"))
	items := m.Items()
	if len(items) != 2 || items[1].FilterValue() != "extra" {
		t.Fatalf("items = %v", items)
	}
}

func TestSpinner(t *testing.T) {
	m := newTest(1)
	m, cmd := m.StartSpinner()
	if cmd == nil {
		t.Fatal("StartSpinner returned no command")
	}
	msgs := squall.Exec(context.Background(), nil, cmd)
	if len(msgs) != 1 {
		t.Fatalf("tick produced %d messages", len(msgs))
	}
	before := m.spin.View()
	m, next := m.Update(msgs[0])
	if next == nil {
		t.Fatal("spinner tick did not re-arm")
	}
	if m.spin.View() == before {
		t.Fatal("spinner frame did not advance")
	}
	if !strings.Contains(m.View(), m.spin.View()) {
		t.Fatalf("spinner not in view:\n%s", m.View())
	}

	m = m.StopSpinner()
	if strings.Contains(m.View(), m.spin.View()+" ") {
		t.Fatalf("spinner still in view after stop:\n%s", m.View())
	}
	tick, _ := msgs[0].(spinner.TickMsg)
	if _, cmd := m.Update(tick); cmd != nil {
		t.Fatal("stopped spinner should ignore ticks")
	}
}

func TestResize(t *testing.T) {
	m := newTest(7)
	m, _ = m.Update(squall.ResizeMsg{Width: 40, Height: 9})
	if per := m.perPage(); per != 6 {
		t.Fatalf("perPage after resize = %d, want 6", per)
	}
}

type twoLineDelegate struct{}

func (twoLineDelegate) Render(w io.Writer, m Model, index int, item Item) {
	fmt.Fprintf(w, "%s\ndetails", item.FilterValue())
}
func (twoLineDelegate) Height() int  { return 2 }
func (twoLineDelegate) Spacing() int { return 1 }

func TestDelegateHeightAffectsPaging(t *testing.T) {
	m := New(entries(5), twoLineDelegate{}, 40, 9)
	// 9 rows minus 3 of chrome leaves 6; each item takes 3.
	if per := m.perPage(); per != 2 {
		t.Fatalf("perPage = %d, want 2", per)
	}
	if !strings.Contains(m.View(), "details") {
		t.Fatalf("delegate output missing:\n%s", m.View())
	}
}
