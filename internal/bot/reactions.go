package bot

import (
	"sync"

	tele "gopkg.in/telebot.v4"

	"nuclight.org/votebot/internal/poll"
)

type messageKey struct {
	chat    int64
	message int
}

// ReactionTracker accumulates aggregate reaction counts for the messages the
// bot is watching. Telegram reports them through message_reaction_count
// updates, each carrying the full per-emoji state of one message, so the
// tracker only has to keep the latest snapshot per tracked message.
type ReactionTracker struct {
	custom CustomEmojiResolver

	mu   sync.RWMutex
	msgs map[messageKey]map[poll.Emoji]int
}

// CustomEmojiResolver maps a custom emoji id reported by the platform back
// to its bracketed reference token.
type CustomEmojiResolver interface {
	RefByID(id string) poll.Emoji
}

func NewReactionTracker(custom CustomEmojiResolver) *ReactionTracker {
	return &ReactionTracker{
		custom: custom,
		msgs:   make(map[messageKey]map[poll.Emoji]int),
	}
}

func trackerKey(ref poll.MessageRef) messageKey {
	return messageKey{chat: int64(ref.Channel), message: ref.ID}
}

// Track starts watching a message. Counts begin empty.
func (t *ReactionTracker) Track(ref poll.MessageRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs[trackerKey(ref)] = make(map[poll.Emoji]int)
}

// Seed records the bot's own legend reaction so the raw count includes it
// even before the first platform update arrives.
func (t *ReactionTracker) Seed(ref poll.MessageRef, e poll.Emoji) {
	t.mu.Lock()
	defer t.mu.Unlock()
	counts, ok := t.msgs[trackerKey(ref)]
	if !ok {
		return
	}
	if counts[e] < 1 {
		counts[e] = 1
	}
}

// Forget stops watching a message.
func (t *ReactionTracker) Forget(ref poll.MessageRef) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.msgs, trackerKey(ref))
}

// Counts returns the latest reaction state of a tracked message. The second
// return value is false if the message is not tracked.
func (t *ReactionTracker) Counts(ref poll.MessageRef) ([]poll.Reaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	counts, ok := t.msgs[trackerKey(ref)]
	if !ok {
		return nil, false
	}
	reactions := make([]poll.Reaction, 0, len(counts))
	for e, n := range counts {
		reactions = append(reactions, poll.Reaction{Emoji: e, Count: n})
	}
	return reactions, true
}

// HandleUpdate replaces the tracked state of the message named by the
// update. Updates for untracked messages are dropped.
func (t *ReactionTracker) HandleUpdate(mrc *tele.MessageReactionCount) {
	if mrc.Chat == nil {
		return
	}
	key := messageKey{chat: mrc.Chat.ID, message: mrc.MessageID}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.msgs[key]; !ok {
		return
	}

	counts := make(map[poll.Emoji]int, len(mrc.Reactions))
	for _, rc := range mrc.Reactions {
		counts[t.reactionEmoji(rc.Type)] = rc.Count
	}
	t.msgs[key] = counts
}

// reactionEmoji converts a platform reaction descriptor back into the token
// form the poll core uses.
func (t *ReactionTracker) reactionEmoji(r tele.Reaction) poll.Emoji {
	if r.CustomEmojiID != "" {
		return t.custom.RefByID(r.CustomEmojiID)
	}
	return poll.Emoji(r.Emoji)
}
