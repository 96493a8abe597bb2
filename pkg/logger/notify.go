package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SendFunc delivers a text message to a chat. The outbound messaging client
// provides it; the logger only holds this one-directional capability and never
// the client itself.
type SendFunc func(chatID, text string)

// NotifyHandler wraps a slog.Handler and forwards records at or above a
// severity threshold to an operator chat. The wrapped sink is always written
// first, and a failing or panicking sender can neither block it nor trigger
// further logging.
type NotifyHandler struct {
	next     slog.Handler
	send     SendFunc
	chatID   string
	minLevel slog.Level
}

func NewNotifyHandler(next slog.Handler, send SendFunc, chatID string, minLevel slog.Level) *NotifyHandler {
	return &NotifyHandler{
		next:     next,
		send:     send,
		chatID:   chatID,
		minLevel: minLevel,
	}
}

func (h *NotifyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *NotifyHandler) Handle(ctx context.Context, rec slog.Record) error {
	err := h.next.Handle(ctx, rec)

	if h.send != nil && h.chatID != "" && rec.Level >= h.minLevel {
		h.forward(rec)
	}

	return err
}

func (h *NotifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &NotifyHandler{
		next:     h.next.WithAttrs(attrs),
		send:     h.send,
		chatID:   h.chatID,
		minLevel: h.minLevel,
	}
}

func (h *NotifyHandler) WithGroup(name string) slog.Handler {
	return &NotifyHandler{
		next:     h.next.WithGroup(name),
		send:     h.send,
		chatID:   h.chatID,
		minLevel: h.minLevel,
	}
}

// forward pushes one record to the operator chat. It must not log through the
// same logger, otherwise a failing operator channel would loop forever.
func (h *NotifyHandler) forward(rec slog.Record) {
	defer func() {
		_ = recover()
	}()

	var sb strings.Builder
	sb.WriteString(rec.Level.String())
	sb.WriteString(": ")
	sb.WriteString(rec.Message)

	rec.Attrs(func(a slog.Attr) bool {
		sb.WriteString(fmt.Sprintf("\n%s=%v", a.Key, a.Value.Any()))
		return true
	})

	h.send(h.chatID, sb.String())
}
