package bot

import (
	"log/slog"

	"nuclight.org/votebot/internal/poll"
)

// AuditStore persists audit lines; implemented by the storage layer.
type AuditStore interface {
	Append(actor string, chatID int64, text string) error
}

// Audit implements poll.AuditLog: every lifecycle event goes to the
// structured log and, when a store is configured, to the audit table.
type Audit struct {
	logger *slog.Logger
	store  AuditStore
}

func NewAudit(logger *slog.Logger, store AuditStore) *Audit {
	return &Audit{logger: logger, store: store}
}

func (a *Audit) Info(actor poll.Originator, channel poll.ChannelID, text string) {
	a.logger.Info(text, "actor", actor.Name, "chat_id", int64(channel))
	a.append(actor, channel, text)
}

func (a *Audit) Warning(actor poll.Originator, channel poll.ChannelID, text string) {
	a.logger.Warn(text, "actor", actor.Name, "chat_id", int64(channel))
	a.append(actor, channel, text)
}

func (a *Audit) append(actor poll.Originator, channel poll.ChannelID, text string) {
	if a.store == nil {
		return
	}
	if err := a.store.Append(actor.Name, int64(channel), text); err != nil {
		a.logger.Warn("audit append failed", "chat_id", int64(channel), "error", err)
	}
}
