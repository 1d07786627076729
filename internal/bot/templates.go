package bot

import _ "embed"

// helpHTML is the static /help reply, sent with HTML parse mode.
//
//go:embed templates/help.html
var helpHTML string

// HelpMessage returns the usage text shown by /help.
func HelpMessage() string {
	return helpHTML
}
