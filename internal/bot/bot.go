package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/votebot/internal/poll"
)

type Bot struct {
	bot        *tele.Bot
	parser     *poll.Parser
	controller *poll.Controller
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the Telegram connection. The poll controller is attached with
// SetController once its messenger adapter is built on top of this
// connection.
func New(token string, parser *poll.Parser, tracker *ReactionTracker, logger *slog.Logger) (*Bot, error) {
	poller := &tele.LongPoller{
		Timeout: 10 * time.Second,
		AllowedUpdates: []string{
			"message",
			"message_reaction_count",
		},
	}
	pref := tele.Settings{
		Token:  token,
		Poller: tele.NewMiddlewarePoller(poller, reactionFilter(tracker)),
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		bot:    b,
		parser: parser,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// reactionFilter consumes message_reaction_count updates at the poller:
// Telegram delivers them as standalone updates with no handler endpoint, so
// they are routed to the tracker here instead of through Handle.
func reactionFilter(tracker *ReactionTracker) func(*tele.Update) bool {
	return func(u *tele.Update) bool {
		if u.MessageReactionCount != nil {
			tracker.HandleUpdate(u.MessageReactionCount)
			return false
		}
		return true
	}
}

func (b *Bot) SetController(controller *poll.Controller) {
	b.controller = controller
}

func (b *Bot) Start() {
	b.logger.Info("bot started")
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.cancel()
	b.bot.Stop()
}

func (b *Bot) Bot() *tele.Bot {
	return b.bot
}
