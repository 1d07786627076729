package poll

import (
	"fmt"
	"sort"
	"strings"
)

// Reaction is one aggregate reaction row on a message: an emoji and how many
// users reacted with it, the bot's own legend reaction included.
type Reaction struct {
	Emoji Emoji
	Count int
}

// TallyEntry is the final vote count for one option.
type TallyEntry struct {
	Option Option
	Count  int
	Winner bool
}

// Tally converts the final reaction state of the poll message into one entry
// per option, in definition order. Reactions on emoji outside the option set
// are ignored; every counted raw count is decremented by one for the bot's
// legend reaction. Options nobody reacted with are kept at count 0.
func Tally(def *Definition, reactions []Reaction) []TallyEntry {
	entries := make([]TallyEntry, 0, len(def.Options))
	for _, opt := range def.Options {
		entry := TallyEntry{Option: opt}
		for _, r := range reactions {
			if opt.Emoji.Matches(r.Emoji) {
				entry.Count = r.Count - 1
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// Rank orders entries by count descending. The sort is stable, so ties keep
// their relative submission order. Every entry whose count equals the
// maximum is marked a winner, including the case where the maximum is 0.
func Rank(entries []TallyEntry) []TallyEntry {
	ranked := make([]TallyEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) == 0 {
		return ranked
	}
	max := ranked[0].Count
	for i := range ranked {
		ranked[i].Winner = ranked[i].Count == max
	}
	return ranked
}

// AuditSummary formats the close-time audit line, listing every option that
// collected at least one vote: "Vote ended: 3x 🙂, 1x 😐."
func AuditSummary(entries []TallyEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Count < 1 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%dx %s", e.Count, e.Option.Emoji))
	}
	return "Vote ended: " + strings.Join(parts, ", ") + "."
}
