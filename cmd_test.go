package squall

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestSyncNilFunc(t *testing.T) {
	if cmd := Sync(nil); cmd != nil {
		t.Error("Sync(nil) should be the nil command")
	}
}

func TestAsyncNilFunc(t *testing.T) {
	if cmd := Async(nil); cmd != nil {
		t.Error("Async(nil) should be the nil command")
	}
}

func TestBatchFlattening(t *testing.T) {
	if cmd := Batch(); cmd != nil {
		t.Error("empty Batch should be the nil command")
	}
	if cmd := Batch(nil, nil); cmd != nil {
		t.Error("all-nil Batch should be the nil command")
	}

	single := Sync(func() Msg { return incrementMsg{} })
	if cmd := Batch(nil, single, nil); reflect.ValueOf(cmd).Pointer() != reflect.ValueOf(single).Pointer() {
		t.Error("single-member Batch should collapse to the member")
	}
}

func TestBatchCarriesMembers(t *testing.T) {
	a := Sync(func() Msg { return incrementMsg{} })
	b := Sync(func() Msg { return nil })
	cmd := Batch(a, b)

	sc, ok := cmd.(syncCmd)
	if !ok {
		t.Fatalf("Batch produced %T, expected a sync command", cmd)
	}
	members, ok := sc().(batchMsg)
	if !ok {
		t.Fatal("Batch command did not produce a batchMsg")
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}
}

func TestQuitProducesQuitMsg(t *testing.T) {
	sc, ok := Quit().(syncCmd)
	if !ok {
		t.Fatal("Quit() is not a sync command")
	}
	if _, ok := sc().(QuitMsg); !ok {
		t.Error("Quit() did not produce a QuitMsg")
	}
}

func TestTickFires(t *testing.T) {
	cmd := Tick(10*time.Millisecond, func(now time.Time) Msg {
		return tickedMsg{}
	})
	ac, ok := cmd.(asyncCmd)
	if !ok {
		t.Fatalf("Tick produced %T, expected an async command", cmd)
	}

	start := time.Now()
	msg := ac(context.Background(), NewExtensions())
	if _, ok := msg.(tickedMsg); !ok {
		t.Fatalf("expected tickedMsg, got %T", msg)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("tick fired after %v, before the delay elapsed", elapsed)
	}
}

func TestTickCancelled(t *testing.T) {
	cmd := Tick(time.Hour, func(time.Time) Msg { return tickedMsg{} })
	ac := cmd.(asyncCmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if msg := ac(ctx, NewExtensions()); msg != nil {
		t.Errorf("cancelled tick produced %T, expected nothing", msg)
	}
}

func TestTickNilFunc(t *testing.T) {
	if cmd := Tick(time.Second, nil); cmd != nil {
		t.Error("Tick with a nil func should be the nil command")
	}
}

func TestControlCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Cmd
		want Msg
	}{
		{"EnterAltScreen", EnterAltScreen(), EnterAltScreenMsg{}},
		{"ExitAltScreen", ExitAltScreen(), ExitAltScreenMsg{}},
		{"ShowCursor", ShowCursor(), ShowCursorMsg{}},
		{"HideCursor", HideCursor(), HideCursorMsg{}},
		{"EnableMouse", EnableMouse(), EnableMouseMsg{}},
		{"DisableMouse", DisableMouse(), DisableMouseMsg{}},
	}
	for _, tt := range tests {
		sc, ok := tt.cmd.(syncCmd)
		if !ok {
			t.Errorf("%s is not a sync command", tt.name)
			continue
		}
		if got := sc(); got != tt.want {
			t.Errorf("%s produced %T, expected %T", tt.name, got, tt.want)
		}
	}
}
