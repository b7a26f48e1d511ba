package squall

import (
	"context"

	"github.com/dshills/squall/backend"
	"github.com/dshills/squall/textfmt"
)

// eventLoop dispatches messages until a quit, a render failure or
// context cancellation. It runs on the Run goroutine, which is the only
// writer of p.model.
//
// The pending queue holds messages produced by inline commands; they
// are dispatched in FIFO order before the loop waits for new events, so
// a Sync command's message is handled on the same turn that scheduled
// it.
func (p *Program) eventLoop(ctx context.Context, initCmd Cmd) error {
	pending := p.schedule(ctx, initCmd)

	if err := p.render(); err != nil {
		return err
	}

	for {
		for len(pending) > 0 {
			msg := pending[0]
			pending = pending[1:]

			produced, quit, err := p.step(ctx, msg)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			pending = append(pending, produced...)
		}

		select {
		case msg := <-p.msgs:
			pending = append(pending, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// step dispatches one message: runtime messages are intercepted first,
// then the message reaches the model and the new view is rendered.
// Quit and batch never reach the model and produce no render; resize
// and terminal control messages are applied and then passed on so the
// model sees them too.
func (p *Program) step(ctx context.Context, msg Msg) (produced []Msg, quit bool, err error) {
	switch m := msg.(type) {
	case nil:
		return nil, false, nil
	case QuitMsg:
		p.logger.Debug("quit requested")
		return nil, true, nil
	case batchMsg:
		return p.schedule(ctx, m...), false, nil
	case ResizeMsg:
		p.width, p.height = m.Width, m.Height
	case EnterAltScreenMsg:
		p.applyControl("enter alt screen", p.backend.EnterAltScreen)
	case ExitAltScreenMsg:
		p.applyControl("exit alt screen", p.backend.LeaveAltScreen)
	case ShowCursorMsg:
		p.applyControl("show cursor", p.backend.ShowCursor)
	case HideCursorMsg:
		p.applyControl("hide cursor", p.backend.HideCursor)
	case EnableMouseMsg:
		p.applyControl("enable mouse", p.backend.EnableMouse)
	case DisableMouseMsg:
		p.applyControl("disable mouse", p.backend.DisableMouse)
	}

	model, cmd := p.model.Update(msg)
	p.model = model
	produced = p.schedule(ctx, cmd)

	if err := p.render(); err != nil {
		return nil, false, err
	}
	return produced, false, nil
}

// applyControl runs a terminal control operation. Control failures are
// not fatal to the run; the model still receives the message.
func (p *Program) applyControl(name string, op func() error) {
	if err := op(); err != nil {
		p.logger.Warn("%s failed: %v", name, err)
	}
}

// schedule runs or spawns the given commands. Sync bodies run inline
// and their messages are returned in order; async bodies are handed to
// the runner and their messages arrive later through the channel.
func (p *Program) schedule(ctx context.Context, cmds ...Cmd) []Msg {
	var out []Msg
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case nil:
		case syncCmd:
			if msg := c(); msg != nil {
				out = append(out, msg)
			}
		case asyncCmd:
			p.spawn(ctx, c)
		}
	}
	return out
}

// spawn hands an async command body to the runner.
func (p *Program) spawn(ctx context.Context, cmd asyncCmd) {
	err := p.runner.Submit(ctx, func(ctx context.Context) any {
		return cmd(ctx, p.ext)
	})
	if err != nil {
		p.logger.Debug("async command rejected: %v", err)
	}
}

// render projects the model once and writes one frame, shaped to the
// current terminal size.
func (p *Program) render() error {
	frame := textfmt.Fit(p.model.View(), p.width, p.height)
	if err := p.backend.Render(frame); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

// forwardEvents funnels decoded backend events into the message
// channel. It exits when the backend closes its event stream at
// shutdown or the run context ends. The receive also selects on the
// context: a backend whose reader is parked on stdin never closes the
// stream, and the forwarder must not outlive the run with it.
func (p *Program) forwardEvents(ctx context.Context) {
	for {
		var ev backend.Event
		var ok bool
		select {
		case ev, ok = <-p.backend.Events():
			if !ok {
				return
			}
		case <-ctx.Done():
			return
		}

		msg := eventMsg(ev)
		if msg == nil {
			continue
		}
		select {
		case p.msgs <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// eventMsg converts a backend event to its runtime message.
func eventMsg(ev backend.Event) Msg {
	switch ev.Type {
	case backend.EventKey:
		return KeyMsg{Key: convertKey(ev.Key), Rune: ev.Rune, Mod: convertMod(ev.Mod)}
	case backend.EventMouse:
		return MouseMsg{X: ev.MouseX, Y: ev.MouseY, Button: convertButton(ev.MouseButton), Mod: convertMod(ev.Mod)}
	case backend.EventResize:
		return ResizeMsg{Width: ev.Width, Height: ev.Height}
	case backend.EventPaste:
		return PasteMsg{Text: ev.PasteText}
	case backend.EventFocus:
		if ev.Focused {
			return FocusMsg{}
		}
		return BlurMsg{}
	default:
		return nil
	}
}

// convertKey maps a backend key to the runtime key.
func convertKey(k backend.Key) Key {
	switch k {
	case backend.KeyRune:
		return KeyRune
	case backend.KeyEscape:
		return KeyEscape
	case backend.KeyEnter:
		return KeyEnter
	case backend.KeyTab:
		return KeyTab
	case backend.KeyBacktab:
		return KeyBacktab
	case backend.KeyBackspace:
		return KeyBackspace
	case backend.KeyDelete:
		return KeyDelete
	case backend.KeyInsert:
		return KeyInsert
	case backend.KeyHome:
		return KeyHome
	case backend.KeyEnd:
		return KeyEnd
	case backend.KeyPageUp:
		return KeyPageUp
	case backend.KeyPageDown:
		return KeyPageDown
	case backend.KeyUp:
		return KeyUp
	case backend.KeyDown:
		return KeyDown
	case backend.KeyLeft:
		return KeyLeft
	case backend.KeyRight:
		return KeyRight
	case backend.KeyF1:
		return KeyF1
	case backend.KeyF2:
		return KeyF2
	case backend.KeyF3:
		return KeyF3
	case backend.KeyF4:
		return KeyF4
	case backend.KeyF5:
		return KeyF5
	case backend.KeyF6:
		return KeyF6
	case backend.KeyF7:
		return KeyF7
	case backend.KeyF8:
		return KeyF8
	case backend.KeyF9:
		return KeyF9
	case backend.KeyF10:
		return KeyF10
	case backend.KeyF11:
		return KeyF11
	case backend.KeyF12:
		return KeyF12
	default:
		return KeyNone
	}
}

// convertMod maps backend modifier bits to runtime modifier bits.
func convertMod(m backend.ModMask) ModMask {
	out := ModNone
	if m.Has(backend.ModShift) {
		out |= ModShift
	}
	if m.Has(backend.ModCtrl) {
		out |= ModCtrl
	}
	if m.Has(backend.ModAlt) {
		out |= ModAlt
	}
	if m.Has(backend.ModMeta) {
		out |= ModMeta
	}
	return out
}

// convertButton maps a backend mouse button to the runtime button.
func convertButton(b backend.MouseButton) MouseButton {
	switch b {
	case backend.MouseLeft:
		return MouseLeft
	case backend.MouseMiddle:
		return MouseMiddle
	case backend.MouseRight:
		return MouseRight
	case backend.MouseRelease:
		return MouseRelease
	case backend.MouseWheelUp:
		return MouseWheelUp
	case backend.MouseWheelDown:
		return MouseWheelDown
	case backend.MouseWheelLeft:
		return MouseWheelLeft
	case backend.MouseWheelRight:
		return MouseWheelRight
	default:
		return MouseNone
	}
}
