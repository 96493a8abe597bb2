package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type Logger = *slog.Logger

// New builds the process logger. It is constructed once in main and passed to
// every component; nothing in this package keeps global state.
func New(level slog.Level) Logger {
	return slog.New(newSinkHandler(level))
}

// NewWithNotify builds the process logger with an operator fan-out: records at
// or above notifyLevel are additionally forwarded to chatID through send.
func NewWithNotify(level slog.Level, send SendFunc, chatID string, notifyLevel slog.Level) Logger {
	return slog.New(NewNotifyHandler(newSinkHandler(level), send, chatID, notifyLevel))
}

func newSinkHandler(level slog.Level) slog.Handler {
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
}
