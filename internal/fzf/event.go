package fzf

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Event is a key-bound action raised inside a running fzf session.
type Event int

const (
	// Toggle switches between content and file name search.
	Toggle Event = iota
	// Reload repopulates the current mode after an out-of-band change.
	Reload
	// Preview renders the highlighted candidate.
	Preview
	// Delete removes the highlighted note.
	Delete
	// Copy puts the highlighted note's path on the clipboard.
	Copy
	// QueryChanged fires whenever the query text changes.
	QueryChanged
)

var eventNames = map[Event]string{
	Toggle:       "toggle",
	Reload:       "reload",
	Preview:      "preview",
	Delete:       "delete",
	Copy:         "copy",
	QueryChanged: "query-changed",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ParseEvent is the inverse of Event.String.
func ParseEvent(name string) (Event, error) {
	for e, n := range eventNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown event %q", name)
}

// ErrUnhandledEvent is returned by Dispatch for an event with no handler.
var ErrUnhandledEvent = errors.New("no handler for event")

// Request carries what fzf hands a callback: the prompt label from
// FZF_PROMPT and the placeholder values of the highlighted line.
type Request struct {
	Prompt string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Arg returns the i-th placeholder value or "".
func (r Request) Arg(i int) string {
	if i < len(r.Args) {
		return r.Args[i]
	}
	return ""
}

// Handler reacts to one event. Output written to Stdout is read back by fzf
// for transform bindings and shown in the pane for previews.
type Handler func(ctx context.Context, req Request) error

// Dispatcher routes events to their handlers.
type Dispatcher map[Event]Handler

// Dispatch runs the handler registered for e.
func (d Dispatcher) Dispatch(ctx context.Context, e Event, req Request) error {
	h, ok := d[e]
	if !ok || h == nil {
		return fmt.Errorf("%w: %s", ErrUnhandledEvent, e)
	}
	return h(ctx, req)
}
