package bot

import (
	tele "gopkg.in/telebot.v4"
)

// handleHelp shows the usage message.
func (b *Bot) handleHelp(c tele.Context) error {
	b.logger.Info("command /help",
		"user_id", c.Sender().ID,
		"username", c.Sender().Username,
		"chat_id", c.Chat().ID,
	)

	return c.Send(HelpMessage(), tele.ModeHTML)
}
