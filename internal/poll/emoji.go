package poll

import (
	"regexp"
	"strings"
)

// customEmojiRe matches custom emoji references in their bracketed wire
// form, e.g. <:party:5368324170671202286> or <a:party:5368324170671202286>
// for animated ones.
var customEmojiRe = regexp.MustCompile(`^<[a-zA-Z0-9]*:[a-zA-Z0-9]+:[0-9]*>$`)

// Emoji identifies a poll option: either a standard Unicode emoji or a
// custom emoji reference. It is the option's unique key within a poll.
type Emoji string

// IsCustomRef reports whether the token has the bracketed custom emoji shape.
func (e Emoji) IsCustomRef() bool {
	return customEmojiRe.MatchString(string(e))
}

// CustomName returns the name part of a custom emoji reference,
// or "" if the token is not one.
func (e Emoji) CustomName() string {
	if !e.IsCustomRef() {
		return ""
	}
	return strings.Split(string(e), ":")[1]
}

// CustomID returns the numeric id part of a custom emoji reference,
// or "" if the token is not one.
func (e Emoji) CustomID() string {
	if !e.IsCustomRef() {
		return ""
	}
	id := strings.Split(string(e), ":")[2]
	return strings.TrimSuffix(id, ">")
}

// Matches reports whether two tokens denote the same emoji: identical
// strings, or custom references sharing the same non-empty id.
func (e Emoji) Matches(other Emoji) bool {
	if e == other {
		return true
	}
	id := e.CustomID()
	return id != "" && id == other.CustomID()
}

// EmojiIndex is the platform emoji knowledge base. The parser queries it
// to decide whether a token names an emoji users can actually react with.
type EmojiIndex interface {
	// IsStandard reports whether s is a known standard Unicode emoji.
	IsStandard(s string) bool
	// HasCustom reports whether a custom emoji with that name exists.
	HasCustom(name string) bool
}
