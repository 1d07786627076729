package bot

import (
	"errors"
	"strings"
)

// splitVoteArgs splits the /vote payload into the deadline expression and
// the options block. The deadline is the first whitespace-delimited token on
// the command line; it may be double-quoted so absolute timestamps with
// spaces ("24/12/2024 12:00") stay one token. Everything after it is the
// newline-delimited options block.
func splitVoteArgs(payload string) (deadline, options string, err error) {
	payload = strings.TrimLeft(payload, " \t")
	if payload == "" {
		return "", "", errors.New("empty payload")
	}

	if payload[0] == '"' {
		end := strings.Index(payload[1:], `"`)
		if end < 0 {
			return "", "", errors.New("unterminated quote")
		}
		deadline = payload[1 : 1+end]
		options = payload[2+end:]
	} else {
		i := strings.IndexAny(payload, " \t\n")
		if i < 0 {
			return payload, "", nil
		}
		deadline = payload[:i]
		options = payload[i+1:]
	}

	return deadline, strings.Trim(options, "\n"), nil
}
