package poll

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// relativeRe matches offsets from now like 3H, 10m, 1d.
var relativeRe = regexp.MustCompile(`^([0-9]+)([mMhHdD])$`)

// absoluteLayouts are tried in order for explicit deadline timestamps.
var absoluteLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"02.01.2006 15:04",
	"02.01.2006",
	"15:04",
}

// Parser turns the raw /vote input into a validated Definition. It is pure:
// the only ambient input is the injected clock, used to resolve relative
// deadlines.
type Parser struct {
	emojis EmojiIndex
	now    func() time.Time
}

func NewParser(emojis EmojiIndex, now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{emojis: emojis, now: now}
}

// ParseDeadline accepts either a relative offset (3H, 10m, 1d) computed
// against the current wall clock, or an absolute timestamp in one of the
// supported layouts. A bare time of day means that time today.
func (p *Parser) ParseDeadline(text string) (time.Time, error) {
	text = strings.TrimSpace(text)

	if m := relativeRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, &ParseError{Kind: ErrInvalidDeadline, Input: text}
		}
		var unit time.Duration
		switch strings.ToLower(m[2]) {
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		}
		return p.now().Add(time.Duration(n) * unit), nil
	}

	for _, layout := range absoluteLayouts {
		t, err := time.ParseInLocation(layout, text, time.Local)
		if err != nil {
			continue
		}
		if layout == "15:04" {
			now := p.now()
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
		}
		return t, nil
	}

	return time.Time{}, &ParseError{Kind: ErrInvalidDeadline, Input: text}
}

// ParseOptions parses the newline-delimited options block. Each non-blank
// line is an emoji token separated by whitespace from its label. The whole
// call fails atomically with the first error in line order: a line without a
// label, a token that is neither a standard emoji nor a known custom emoji,
// or an emoji already used on an earlier line.
func (p *Parser) ParseOptions(text string) ([]Option, error) {
	var opts []Option

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		i := strings.IndexFunc(line, unicode.IsSpace)
		if i < 0 {
			return nil, &ParseError{Kind: ErrMalformedOption, Input: line}
		}
		token := line[:i]
		label := strings.TrimSpace(line[i:])

		e := Emoji(token)
		switch {
		case p.emojis.IsStandard(token):
		case e.IsCustomRef() && p.emojis.HasCustom(e.CustomName()):
		default:
			return nil, &ParseError{Kind: ErrUnknownEmoji, Input: token}
		}

		for _, prev := range opts {
			if prev.Emoji.Matches(e) {
				return nil, &ParseError{Kind: ErrDuplicateEmoji, Input: token}
			}
		}

		opts = append(opts, Option{Emoji: e, Label: label})
	}

	if len(opts) == 0 {
		return nil, &ParseError{Kind: ErrMalformedOption, Input: text}
	}
	return opts, nil
}

// Parse composes ParseDeadline and ParseOptions, deadline first, so a bad
// deadline is reported before any option error.
func (p *Parser) Parse(deadlineText, optionsText string) (*Definition, error) {
	deadline, err := p.ParseDeadline(deadlineText)
	if err != nil {
		return nil, err
	}
	opts, err := p.ParseOptions(optionsText)
	if err != nil {
		return nil, err
	}
	return &Definition{Options: opts, Deadline: deadline}, nil
}
