package bot

import (
	"context"
	"fmt"
	"sync"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/votebot/internal/poll"
)

// Messenger adapts the Telegram connection to the poll.Messenger interface.
//
// Telegram replaces the bot's whole reaction set on every setMessageReaction
// call, so the adapter remembers the reactions seeded so far per message and
// re-sends the full list each time another legend emoji is attached.
type Messenger struct {
	bot     *tele.Bot
	tracker *ReactionTracker
	emojis  *EmojiIndex

	mu    sync.Mutex
	seeds map[messageKey][]tele.Reaction
}

func NewMessenger(b *tele.Bot, tracker *ReactionTracker, emojis *EmojiIndex) *Messenger {
	return &Messenger{
		bot:     b,
		tracker: tracker,
		emojis:  emojis,
		seeds:   make(map[messageKey][]tele.Reaction),
	}
}

func (m *Messenger) Post(_ context.Context, channel poll.ChannelID, text string) (poll.MessageRef, error) {
	msg, err := m.bot.Send(&tele.Chat{ID: int64(channel)}, text, &tele.SendOptions{
		ParseMode: tele.ModeHTML,
	})
	if err != nil {
		return poll.MessageRef{}, err
	}

	ref := poll.MessageRef{Channel: channel, ID: msg.ID}
	m.tracker.Track(ref)
	return ref, nil
}

func (m *Messenger) React(_ context.Context, ref poll.MessageRef, e poll.Emoji) error {
	m.mu.Lock()
	key := trackerKey(ref)
	seeds := append(m.seeds[key], m.platformReaction(e))
	m.seeds[key] = seeds
	m.mu.Unlock()

	if err := m.bot.React(chatOf(ref), editableOf(ref), tele.Reactions{Reactions: seeds}); err != nil {
		return err
	}
	m.tracker.Seed(ref, e)
	return nil
}

// Fetch returns the tracked reaction state of the poll message. The message
// existence probe re-asserts the bot's own reactions: if the message was
// deleted in the meantime, the platform rejects the call and the poll closes
// as failed.
func (m *Messenger) Fetch(_ context.Context, ref poll.MessageRef) ([]poll.Reaction, error) {
	counts, ok := m.tracker.Counts(ref)
	if !ok {
		return nil, errUntracked(ref)
	}

	m.mu.Lock()
	seeds := m.seeds[trackerKey(ref)]
	m.mu.Unlock()
	if err := m.bot.React(chatOf(ref), editableOf(ref), tele.Reactions{Reactions: seeds}); err != nil {
		return nil, err
	}

	return counts, nil
}

// Forget drops the seed list and tracker state of a finished poll message.
func (m *Messenger) Forget(ref poll.MessageRef) {
	m.mu.Lock()
	delete(m.seeds, trackerKey(ref))
	m.mu.Unlock()
	m.tracker.Forget(ref)
}

func (m *Messenger) platformReaction(e poll.Emoji) tele.Reaction {
	if e.IsCustomRef() {
		id := e.CustomID()
		if id == "" {
			id, _ = m.emojis.IDByName(e.CustomName())
		}
		return tele.Reaction{Type: "custom_emoji", CustomEmojiID: id}
	}
	return tele.Reaction{Type: "emoji", Emoji: string(e)}
}

func errUntracked(ref poll.MessageRef) error {
	return fmt.Errorf("message %d in chat %d is not tracked", ref.ID, int64(ref.Channel))
}

func chatOf(ref poll.MessageRef) *tele.Chat {
	return &tele.Chat{ID: int64(ref.Channel)}
}

func editableOf(ref poll.MessageRef) *tele.Message {
	return &tele.Message{ID: ref.ID, Chat: chatOf(ref)}
}
