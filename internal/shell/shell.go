// Package shell builds command strings for the places where fzf needs a
// command as text instead of an argument vector. Every interpolated value
// goes through Quote.
package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Quote escapes a single word for a POSIX shell.
func Quote(word string) string {
	return shellquote.Join(word)
}

// Join escapes each word and joins them with spaces.
func Join(words ...string) string {
	return shellquote.Join(words...)
}

// InDir returns "cd <dir> && <argv...>".
func InDir(dir string, argv ...string) string {
	return "cd " + Quote(dir) + " && " + Join(argv...)
}

// WithPlaceholders appends raw fzf placeholders such as {1} to an already
// quoted command. fzf quotes placeholder values itself, so they must not be
// escaped a second time.
func WithPlaceholders(command string, placeholders ...string) string {
	if len(placeholders) == 0 {
		return command
	}
	return command + " " + strings.Join(placeholders, " ")
}

// actionDelimiters are the argument enclosures fzf accepts for actions such
// as reload(...) and execute(...), in order of preference.
var actionDelimiters = [][2]string{
	{"(", ")"}, {"[", "]"}, {"{", "}"}, {"<", ">"},
	{"~", "~"}, {"!", "!"}, {"@", "@"}, {"#", "#"},
	{"%", "%"}, {"^", "^"}, {"&", "&"}, {"*", "*"}, {";", ";"}, {"|", "|"},
}

// Action renders an fzf action with an argument, choosing an enclosure whose
// closing character does not occur in arg. When every enclosure collides the
// colon form is used, which fzf only accepts as the last action of a chain.
func Action(name, arg string) string {
	for _, d := range actionDelimiters {
		if !strings.Contains(arg, d[1]) {
			return name + d[0] + arg + d[1]
		}
	}
	return name + ":" + arg
}

// Split parses a command line such as an editor setting ("code -w") into
// words.
func Split(line string) ([]string, error) {
	return shellquote.Split(line)
}
