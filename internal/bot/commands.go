package bot

import (
	tele "gopkg.in/telebot.v4"
)

// RegisterCommands sets up the bot commands behind the admin-only and
// error-handling middleware.
func (b *Bot) RegisterCommands() {
	group := b.bot.Group()
	group.Use(b.AdminOnly())
	group.Use(b.HandleErrors())

	group.Handle("/vote", b.handleVote)
	group.Handle("/help", b.handleHelp)
}

func (b *Bot) isAdmin(chatID int64, userID int64) (bool, error) {
	chat := &tele.Chat{ID: chatID}
	member, err := b.bot.ChatMemberOf(chat, &tele.User{ID: userID})
	if err != nil {
		return false, err
	}
	return member.Role == tele.Administrator || member.Role == tele.Creator, nil
}

func (b *Bot) AdminOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			isAdmin, err := b.isAdmin(c.Chat().ID, c.Sender().ID)
			if err != nil {
				return err
			}
			if !isAdmin {
				return nil // Silently ignore non-admin commands
			}
			return next(c)
		}
	}
}

// HandleErrors turns handler errors into chat replies: UserErrors reply with
// their message, everything else is logged and replied with a generic line.
func (b *Bot) HandleErrors() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}
			if ShouldLog(err) {
				b.logger.Error("command failed",
					"command", c.Text(),
					"chat_id", c.Chat().ID,
					"user_id", c.Sender().ID,
					"error", err,
				)
			}
			return c.Reply(GetUserMessage(err))
		}
	}
}
