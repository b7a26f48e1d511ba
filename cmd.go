package squall

import (
	"context"
	"time"
)

// Cmd describes deferred work returned by Init or Update. Commands are
// inert values until the runtime schedules them: a Sync command runs
// inline on the loop's turn, an Async command runs on a background
// goroutine, and a Batch schedules its members independently. A nil Cmd
// means no work.
//
// The set of command kinds is fixed; construct commands with Sync,
// Async, Batch and the helpers below.
type Cmd interface {
	isCmd()
}

// syncCmd runs inline on the loop goroutine.
type syncCmd func() Msg

func (syncCmd) isCmd() {}

// asyncCmd runs on the command runner with the run context and a
// read-only view of the program's extensions.
type asyncCmd func(ctx context.Context, ext *Extensions) Msg

func (asyncCmd) isCmd() {}

// batchMsg carries the members of a Batch through the dispatch queue.
// The loop intercepts it and schedules each member; it never reaches
// the model.
type batchMsg []Cmd

// Sync wraps a function as an inline command. The function runs on the
// loop's turn immediately after scheduling and must not block; its
// message, if any, is dispatched before the loop waits for new events.
func Sync(f func() Msg) Cmd {
	if f == nil {
		return nil
	}
	return syncCmd(f)
}

// Async wraps a function as a concurrent command. The function runs on
// a background goroutine and may block; it receives the run context,
// which is cancelled at shutdown, and the program's extensions. A nil
// result produces no message. Failures are encoded in the returned
// message; a panic is recovered and logged by the runner and yields
// nothing.
func Async(f func(ctx context.Context, ext *Extensions) Msg) Cmd {
	if f == nil {
		return nil
	}
	return asyncCmd(f)
}

// Batch schedules several commands as one. Members run independently
// under the usual rules and their messages arrive in completion order;
// the batch itself produces no message. Nil members are skipped.
func Batch(cmds ...Cmd) Cmd {
	live := make([]Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return Sync(func() Msg { return batchMsg(live) })
}

// Tick produces fn(now) after the given duration. It is an Async
// command: the wait happens on a background goroutine so the loop keeps
// processing input, and a tick pending at shutdown is abandoned without
// a message.
func Tick(d time.Duration, fn func(now time.Time) Msg) Cmd {
	if fn == nil {
		return nil
	}
	return Async(func(ctx context.Context, _ *Extensions) Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case now := <-timer.C:
			return fn(now)
		case <-ctx.Done():
			return nil
		}
	})
}

// Exec runs a command immediately on the calling goroutine and returns
// the messages it produces, expanding batches depth-first. Inside a
// running program commands are scheduled by the loop; Exec exists for
// tests and for driving component commands outside a program. A nil ext
// is replaced with an empty registry.
func Exec(ctx context.Context, ext *Extensions, cmd Cmd) []Msg {
	if ext == nil {
		ext = NewExtensions()
	}
	var out []Msg
	var run func(Cmd)
	run = func(cmd Cmd) {
		var msg Msg
		switch c := cmd.(type) {
		case nil:
			return
		case syncCmd:
			msg = c()
		case asyncCmd:
			msg = c(ctx, ext)
		}
		if batch, ok := msg.(batchMsg); ok {
			for _, member := range batch {
				run(member)
			}
			return
		}
		if msg != nil {
			out = append(out, msg)
		}
	}
	run(cmd)
	return out
}

// Quit produces the message that stops the program.
func Quit() Cmd {
	return Sync(func() Msg { return QuitMsg{} })
}

// EnterAltScreen switches the terminal to the alternate screen.
func EnterAltScreen() Cmd {
	return Sync(func() Msg { return EnterAltScreenMsg{} })
}

// ExitAltScreen returns the terminal to the primary screen.
func ExitAltScreen() Cmd {
	return Sync(func() Msg { return ExitAltScreenMsg{} })
}

// ShowCursor makes the hardware cursor visible.
func ShowCursor() Cmd {
	return Sync(func() Msg { return ShowCursorMsg{} })
}

// HideCursor hides the hardware cursor.
func HideCursor() Cmd {
	return Sync(func() Msg { return HideCursorMsg{} })
}

// EnableMouse turns on mouse event reporting.
func EnableMouse() Cmd {
	return Sync(func() Msg { return EnableMouseMsg{} })
}

// DisableMouse turns off mouse event reporting.
func DisableMouse() Cmd {
	return Sync(func() Msg { return DisableMouseMsg{} })
}
