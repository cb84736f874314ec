// Package logging builds slog loggers whose records pick up attributes
// carried in a context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// ContextHandler adds the attributes stored by AppendCtx to every record
// logged with that context.
type ContextHandler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx returns a child context carrying attr in addition to any
// attributes already stored in parent.
func AppendCtx(parent context.Context, attr ...slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	prev, _ := parent.Value(ctxKey{}).([]slog.Attr)
	attrs := make([]slog.Attr, 0, len(prev)+len(attr))
	attrs = append(attrs, prev...)
	attrs = append(attrs, attr...)
	return context.WithValue(parent, ctxKey{}, attrs)
}

// Handler returns a text or JSON handler at level wrapped in a
// ContextHandler.
func Handler(w io.Writer, json bool, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return ContextHandler{slog.NewJSONHandler(w, opts)}
	}
	return ContextHandler{slog.NewTextHandler(w, opts)}
}

// Logger is shorthand for slog.New(Handler(w, json, level)).
func Logger(w io.Writer, json bool, level slog.Leveler) *slog.Logger {
	return slog.New(Handler(w, json, level))
}

// ParseLevel parses DEBUG/INFO/WARN/ERROR (any case). Unknown values
// return INFO and false.
func ParseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
