package bot

import (
	"errors"
	"testing"
)

func TestUserError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := UserErrorf("bad input %q", "x")
		if err.Error() != `bad input "x"` {
			t.Errorf("Error() = %q", err.Error())
		}
		if err.Cause != nil {
			t.Error("expected no cause")
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := WrapUserError("Could not start the vote", cause)
		if err.Error() != "Could not start the vote: connection reset" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should match the cause")
		}
	})
}

func TestGetUserMessage(t *testing.T) {
	if got := GetUserMessage(UserErrorf("try again")); got != "try again" {
		t.Errorf("GetUserMessage = %q", got)
	}
	if got := GetUserMessage(errors.New("sql: no rows")); got != MsgInternalError {
		t.Errorf("GetUserMessage for internal error = %q", got)
	}
}

func TestShouldLog(t *testing.T) {
	if ShouldLog(UserErrorf("user mistake")) {
		t.Error("plain user mistakes should not be logged")
	}
	if !ShouldLog(WrapUserError("failed", errors.New("boom"))) {
		t.Error("wrapped internal errors should be logged")
	}
	if !ShouldLog(errors.New("boom")) {
		t.Error("unknown errors should be logged")
	}
}
