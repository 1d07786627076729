package poll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDeadline = errors.New("invalid deadline")
	ErrMalformedOption = errors.New("malformed option")
	ErrUnknownEmoji    = errors.New("unknown emoji")
	ErrDuplicateEmoji  = errors.New("duplicate emoji")
)

// ParseError reports why a poll definition was rejected. Kind is one of the
// sentinel errors above; Input is the token or line that failed, echoed back
// to the user by the command layer.
type ParseError struct {
	Kind  error
	Input string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
