package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender delivers messages into a running program's event loop. It is
// satisfied by squall.Program.
type Sender interface {
	Send(msg any)
}

// Msg is a log record forwarded into the event loop by a Bridge. Models
// receive it from Update like any other message.
type Msg struct {
	Level   Level
	Message string
}

// Bridge is a slog.Handler that forwards log records into a program as Msg
// values instead of writing to a stream. This lets application code use the
// standard log/slog API while the UI stays in control of presentation. Only
// records at or above the configured level are forwarded.
type Bridge struct {
	target Sender
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

// NewBridge creates a handler that sends Msg values to the given sender.
func NewBridge(target Sender, level slog.Level) *Bridge {
	return &Bridge{
		target: target,
		level:  level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (b *Bridge) Enabled(_ context.Context, level slog.Level) bool {
	return level >= b.level
}

// Handle formats the record and sends it to the program as a Msg.
func (b *Bridge) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)

	for _, a := range b.attrs {
		fmt.Fprintf(&sb, " %s=%q", b.qualifiedKey(a.Key), a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%q", b.qualifiedKey(a.Key), a.Value)
		return true
	})

	b.target.Send(Msg{
		Level:   levelFromSlog(r.Level),
		Message: sb.String(),
	})
	return nil
}

// WithAttrs returns a new handler with the given attributes.
func (b *Bridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(b.attrs)+len(attrs))
	copy(newAttrs, b.attrs)
	copy(newAttrs[len(b.attrs):], attrs)
	return &Bridge{
		target: b.target,
		level:  b.level,
		attrs:  newAttrs,
		group:  b.group,
	}
}

// WithGroup returns a new handler with the given group name.
func (b *Bridge) WithGroup(name string) slog.Handler {
	newGroup := name
	if b.group != "" {
		newGroup = b.group + "." + name
	}
	return &Bridge{
		target: b.target,
		level:  b.level,
		attrs:  b.attrs,
		group:  newGroup,
	}
}

// qualifiedKey prepends the group prefix to a key.
func (b *Bridge) qualifiedKey(key string) string {
	if b.group == "" {
		return key
	}
	return b.group + "." + key
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}
