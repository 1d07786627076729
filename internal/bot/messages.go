package bot

// User error messages (user mistakes, shown directly)
const (
	MsgVoteUsage = "Usage: /vote <deadline> with one option per line below, each starting with an emoji.\n" +
		"The deadline is either an offset from now (3H, 10m, 1d) or a datetime string (quote it if it contains spaces)."
	MsgFmtBadDeadline    = "I don't know how to parse %q, please try again."
	MsgFmtBadOption      = "Option %q is in incorrect format."
	MsgFmtUnknownEmoji   = "Emoji %s was not recognized as emoji!"
	MsgFmtDuplicateEmoji = "Emoji %s was used more than once!"
)

// System error messages (internal errors, hide details from user)
const (
	MsgInternalError   = "An internal error occurred. Please try again later."
	MsgFailedStartVote = "Could not start the vote. Please try again."
)
