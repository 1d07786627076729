package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

type Logger = *slog.Logger

// Options control how the handler chain is built.
type Options struct {
	Level  string // debug, info, warn or error; empty means info
	Sentry bool   // forward error records to Sentry
}

func New(opts Options) Logger {
	var h slog.Handler = tint.NewHandler(os.Stderr, &tint.Options{
		Level:      ParseLevel(opts.Level),
		TimeFormat: time.TimeOnly,
	})
	if opts.Sentry {
		h = NewSentryHandler(h)
	}
	return slog.New(h)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
