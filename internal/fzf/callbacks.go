package fzf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/acarl005/stripansi"

	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/preview"
	"github.com/Paintersrp/keepnote/internal/selection"
)

// Callbacks are the standard handlers of a search session.
type Callbacks struct {
	Root      string
	Delimiter string
	Toggler   mode.Toggler
	Pager     preview.Pager
	// Delete removes the note named by the highlighted line. It runs with the
	// terminal attached and may prompt.
	Delete func(ctx context.Context, req Request, name string) error
	// Copy places text on the clipboard.
	Copy func(text string) error
}

// Name cleans the {1} placeholder into a path relative to the notes root.
func (c Callbacks) Name(arg string) string {
	delim := c.Delimiter
	if delim == "" {
		delim = selection.DefaultDelimiter
	}
	name := strings.TrimSuffix(stripansi.Strip(arg), delim)
	return strings.TrimPrefix(name, "./")
}

// Dispatcher wires the handlers to their events.
func (c Callbacks) Dispatcher() Dispatcher {
	d := Dispatcher{
		Toggle: func(_ context.Context, req Request) error {
			_, err := fmt.Fprintln(req.Stdout, c.Toggler.NextMode(req.Prompt).Action())
			return err
		},
		Reload: func(_ context.Context, req Request) error {
			_, err := fmt.Fprintln(req.Stdout, c.Toggler.ReloadAction(req.Prompt))
			return err
		},
	}

	if c.Pager != nil {
		d[Preview] = func(ctx context.Context, req Request) error {
			name := c.Name(req.Arg(0))
			if name == "" {
				return nil
			}
			return c.Pager.Render(ctx, req.Stdout, filepath.Join(c.Root, name), preview.ParseLine(req.Arg(1)))
		}
	}
	if c.Delete != nil {
		d[Delete] = func(ctx context.Context, req Request) error {
			name := c.Name(req.Arg(0))
			if name == "" {
				return nil
			}
			return c.Delete(ctx, req, name)
		}
	}
	if c.Copy != nil {
		d[Copy] = func(_ context.Context, req Request) error {
			name := c.Name(req.Arg(0))
			if name == "" {
				return nil
			}
			return c.Copy(filepath.Join(c.Root, name))
		}
	}

	return d
}
