package poll

import "time"

// Option pairs an emoji with its human-readable label.
type Option struct {
	Emoji Emoji
	Label string
}

// Definition is a validated poll: its options in submission order and the
// absolute time at which it closes. Emojis are pairwise distinct; the
// deadline may already be in the past, which just means a near-immediate
// tally.
type Definition struct {
	Options  []Option
	Deadline time.Time
}
