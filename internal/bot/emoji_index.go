package bot

import (
	"fmt"
	"strings"

	"github.com/kyokomi/emoji/v2"

	"nuclight.org/votebot/internal/poll"
)

// standardEmoji is the Unicode emoji table, keyed by the emoji itself.
var standardEmoji = func() map[string]struct{} {
	set := make(map[string]struct{}, len(emoji.CodeMap()))
	for _, e := range emoji.CodeMap() {
		set[strings.TrimSpace(e)] = struct{}{}
	}
	return set
}()

// EmojiIndex implements poll.EmojiIndex: standard emoji against the Unicode
// table, custom emoji against the bot's configured name→id set.
type EmojiIndex struct {
	byName map[string]string
	byID   map[string]string
}

func NewEmojiIndex(custom map[string]string) *EmojiIndex {
	idx := &EmojiIndex{
		byName: make(map[string]string, len(custom)),
		byID:   make(map[string]string, len(custom)),
	}
	for name, id := range custom {
		idx.byName[name] = id
		idx.byID[id] = name
	}
	return idx
}

func (i *EmojiIndex) IsStandard(s string) bool {
	if _, ok := standardEmoji[s]; ok {
		return true
	}
	// Some clients append the variation selector.
	if trimmed := strings.TrimSuffix(s, "️"); trimmed != s {
		_, ok := standardEmoji[trimmed]
		return ok
	}
	return false
}

func (i *EmojiIndex) HasCustom(name string) bool {
	_, ok := i.byName[name]
	return ok
}

// RefByID rebuilds the bracketed reference for a custom emoji id reported by
// the platform, so reaction state compares equal to the parsed option token.
func (i *EmojiIndex) RefByID(id string) poll.Emoji {
	name, ok := i.byID[id]
	if !ok {
		name = ""
	}
	return poll.Emoji(fmt.Sprintf("<:%s:%s>", name, id))
}

// IDByName returns the configured custom emoji id for a name.
func (i *EmojiIndex) IDByName(name string) (string, bool) {
	id, ok := i.byName[name]
	return id, ok
}
