package backend

import (
	"errors"
	"reflect"
	"testing"
)

func TestNull_RecordsFramesAndOps(t *testing.T) {
	b := NewNull(80, 24)

	if err := b.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := b.Render("one"); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if err := b.Render("two"); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if !reflect.DeepEqual(b.Frames(), []string{"one", "two"}) {
		t.Errorf("expected recorded frames, got %v", b.Frames())
	}
	if b.LastFrame() != "two" {
		t.Errorf("expected last frame 'two', got %q", b.LastFrame())
	}
	if !reflect.DeepEqual(b.Ops(), []string{"init", "render", "render", "shutdown"}) {
		t.Errorf("expected ordered ops, got %v", b.Ops())
	}
}

func TestNull_InjectAndClose(t *testing.T) {
	b := NewNull(10, 2)
	b.Inject(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})

	ev := <-b.Events()
	if ev.Rune != 'q' {
		t.Errorf("expected injected event, got %+v", ev)
	}

	if err := b.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if _, ok := <-b.Events(); ok {
		t.Error("expected events closed after shutdown")
	}

	// Injection after shutdown must not panic.
	b.Inject(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
}

func TestNull_ScriptedFailures(t *testing.T) {
	b := NewNull(10, 2)
	b.InitErr = errors.New("no tty")
	if err := b.Init(); err == nil {
		t.Error("expected scripted init failure")
	}

	b = NewNull(10, 2)
	b.RenderErr = errors.New("broken pipe")
	b.RenderErrOn = 2
	if err := b.Render("first"); err != nil {
		t.Errorf("expected first render to succeed, got %v", err)
	}
	if err := b.Render("second"); err == nil {
		t.Error("expected second render to fail")
	}
	if err := b.Render("third"); err != nil {
		t.Errorf("expected third render to succeed, got %v", err)
	}
}

func TestNull_SetSizeEmitsResize(t *testing.T) {
	b := NewNull(80, 24)
	b.SetSize(100, 30)

	w, h, err := b.Size()
	if err != nil {
		t.Fatalf("Size() failed: %v", err)
	}
	if w != 100 || h != 30 {
		t.Errorf("expected 100x30, got %dx%d", w, h)
	}

	ev := <-b.Events()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Errorf("expected resize event, got %+v", ev)
	}
}

func TestNull_ModeTracking(t *testing.T) {
	b := NewNull(80, 24)

	if err := b.EnterAltScreen(); err != nil {
		t.Fatalf("EnterAltScreen() failed: %v", err)
	}
	if !b.AltScreen() {
		t.Error("expected alt screen active")
	}
	if err := b.LeaveAltScreen(); err != nil {
		t.Fatalf("LeaveAltScreen() failed: %v", err)
	}
	if b.AltScreen() {
		t.Error("expected alt screen inactive")
	}

	if err := b.EnableMouse(); err != nil {
		t.Fatalf("EnableMouse() failed: %v", err)
	}
	if !b.MouseEnabled() {
		t.Error("expected mouse enabled")
	}

	if b.Shutdowns() != 0 {
		t.Errorf("expected no shutdowns yet, got %d", b.Shutdowns())
	}
	_ = b.Shutdown()
	_ = b.Shutdown()
	if b.Shutdowns() != 2 {
		t.Errorf("expected 2 shutdown calls recorded, got %d", b.Shutdowns())
	}
}
