package fzf

import (
	"github.com/Paintersrp/keepnote/internal/shell"
)

// CallbackSubcommand is the hidden subcommand fzf runs for every event.
const CallbackSubcommand = "_callback"

// Keys binds events to fzf keys and events.
type Keys map[Event]string

// DefaultKeys are the bindings used unless configured otherwise.
var DefaultKeys = Keys{
	Toggle:       "tab",
	Delete:       "ctrl-d",
	Copy:         "ctrl-y",
	QueryChanged: "change",
}

// Callback renders the commands fzf runs to reach back into keepnote.
type Callback struct {
	// Executable is the keepnote binary.
	Executable string
	Root       string
	// Args are passed after the root, for example a config override.
	Args []string
}

// Command returns the shell command for event e, followed by raw fzf
// placeholders. The placeholders come after "--" so a note named "-x.md" is
// not read as a flag.
func (c Callback) Command(e Event, placeholders ...string) string {
	words := append([]string{c.Executable, CallbackSubcommand, e.String(), "--root", c.Root}, c.Args...)
	if len(placeholders) > 0 {
		words = append(words, "--")
	}
	return shell.WithPlaceholders(shell.Join(words...), placeholders...)
}

// PreviewCommand is the --preview value: the note name and line fields.
func (c Callback) PreviewCommand() string {
	return c.Command(Preview, "{1}", "{2}")
}

// Action returns the fzf action bound for e, or "" for events that are not
// key bound.
func (c Callback) Action(e Event) string {
	switch e {
	case Toggle:
		return shell.Action("transform", c.Command(Toggle))
	case Reload:
		return shell.Action("transform", c.Command(Reload))
	case Delete:
		return shell.Action("execute", c.Command(Delete, "{1}")) + "+" + c.Action(Reload)
	case Copy:
		return shell.Action("execute-silent", c.Command(Copy, "{1}", "{2}"))
	case QueryChanged:
		return "first"
	default:
		return ""
	}
}

// Bindings returns the --bind values for keys in a stable order.
func (c Callback) Bindings(keys Keys) []string {
	var binds []string
	for _, e := range []Event{Toggle, Delete, Copy, QueryChanged} {
		key, ok := keys[e]
		if !ok || key == "" {
			continue
		}
		binds = append(binds, key+":"+c.Action(e))
	}
	return binds
}
