package bot

import (
	"errors"
	"fmt"
)

// UserError is an error whose message is safe to show in the chat. Cause, if
// set, carries the internal error for logging.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// UserErrorf creates a user-facing error with a formatted message.
func UserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WrapUserError pairs an internal error with the message users should see.
func WrapUserError(message string, cause error) *UserError {
	return &UserError{Message: message, Cause: cause}
}

// GetUserMessage returns the message to show in the chat: the UserError
// message if there is one, a generic line otherwise.
func GetUserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return MsgInternalError
}

// ShouldLog reports whether the error needs logging. UserErrors without a
// cause are plain user mistakes.
func ShouldLog(err error) bool {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Cause != nil
	}
	return true
}
