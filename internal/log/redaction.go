// Package log provides logging helpers shared by the CLI: attribute
// redaction and size-based file rotation for slog output.
package log

import (
	"context"
	"log/slog"
	"strings"
)

// sensitiveKeys lists key substrings whose values are redacted,
// case-insensitively. Note that a publication "key" is not a secret and
// is deliberately absent here.
var sensitiveKeys = []string{
	"password",
	"pass",
	"secret",
	"token",
	"auth",
	"ticket",
	"cred",
}

// RedactingHandler is a slog.Handler that masks credential material
// before it reaches the sink.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler. It redacts sensitive attributes before
// passing the record on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	var attrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, redactAttr(a))
		return true
	})

	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	clean.AddAttrs(attrs...)
	return h.next.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		members := make([]interface{}, len(group))
		for i, attr := range group {
			members[i] = redactAttr(attr)
		}
		return slog.Group(a.Key, members...)
	}

	lower := strings.ToLower(a.Key)
	for _, sens := range sensitiveKeys {
		if strings.Contains(lower, sens) {
			return slog.String(a.Key, "[REDACTED]")
		}
	}
	return a
}
