package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler passes records through to the wrapped handler and reports
// error-level records to Sentry: the "error" attribute as an exception when
// present, the record message otherwise.
type SentryHandler struct {
	handler slog.Handler
}

func NewSentryHandler(handler slog.Handler) *SentryHandler {
	return &SentryHandler{handler: handler}
}

func (h *SentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.report(r)
	}
	return h.handler.Handle(ctx, r)
}

func (h *SentryHandler) report(r slog.Record) {
	var reported bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "error" {
			if err, ok := a.Value.Any().(error); ok {
				sentry.CaptureException(err)
				reported = true
				return false
			}
		}
		return true
	})
	if !reported {
		sentry.CaptureMessage(r.Message)
	}
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SentryHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	return &SentryHandler{handler: h.handler.WithGroup(name)}
}
