package bot

import (
	"errors"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/votebot/internal/poll"
)

// handleVote starts a timed emoji-reaction poll.
// Usage:
//
//	/vote 3H
//	🐱 Option one
//	🐶 Option two
//	<:custom_emoji:123456789> Option three
//
// The deadline is either an offset from now (3H, 10m, 1d) or a datetime
// string, preferably quoted. Each option must be on its own line and start
// with the emoji users will react with.
func (b *Bot) handleVote(c tele.Context) error {
	deadlineText, optionsText, err := splitVoteArgs(c.Message().Payload)
	if err != nil {
		return UserErrorf(MsgVoteUsage)
	}

	def, err := b.parser.Parse(deadlineText, optionsText)
	if err != nil {
		return parseReply(err)
	}

	b.logger.Info("command /vote",
		"user_id", c.Sender().ID,
		"username", c.Sender().Username,
		"chat_id", c.Chat().ID,
		"options", len(def.Options),
		"deadline", def.Deadline,
	)

	by := poll.Originator{ID: c.Sender().ID, Name: senderName(c.Sender())}
	inst := b.controller.Create(def, by, poll.ChannelID(c.Chat().ID))

	// Posting happens synchronously so a platform rejection surfaces as the
	// command's reply. The deadline wait runs in its own goroutine.
	if err := b.controller.Open(b.ctx, inst); err != nil {
		return WrapUserError(MsgFailedStartVote, err)
	}

	go func() {
		if err := b.controller.AwaitClose(b.ctx, inst); err != nil {
			b.logger.Error("poll close failed",
				"poll_id", inst.ID,
				"chat_id", c.Chat().ID,
				"error", err,
			)
		}
	}()

	return nil
}

// parseReply maps a parser rejection to the reply shown in the chat, echoing
// the offending input back.
func parseReply(err error) error {
	var perr *poll.ParseError
	if !errors.As(err, &perr) {
		return WrapUserError(MsgInternalError, err)
	}

	switch {
	case errors.Is(perr, poll.ErrInvalidDeadline):
		return UserErrorf(MsgFmtBadDeadline, perr.Input)
	case errors.Is(perr, poll.ErrMalformedOption):
		return UserErrorf(MsgFmtBadOption, perr.Input)
	case errors.Is(perr, poll.ErrUnknownEmoji):
		return UserErrorf(MsgFmtUnknownEmoji, perr.Input)
	case errors.Is(perr, poll.ErrDuplicateEmoji):
		return UserErrorf(MsgFmtDuplicateEmoji, perr.Input)
	}
	return WrapUserError(MsgInternalError, err)
}

func senderName(u *tele.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}
