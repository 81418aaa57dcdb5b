package callback

import (
	"context"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/fzf"
	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/note"
	"github.com/Paintersrp/keepnote/internal/state"
)

var (
	writeClipboard = clipboard.WriteAll
	confirmDelete  = note.Confirm
)

// NewCmdCallback is the hidden command fzf runs for key bindings and the
// preview pane. Its output is read back by fzf.
func NewCmdCallback(s *state.State) *cobra.Command {
	var root, initialMode string

	cmd := &cobra.Command{
		Use:    fzf.CallbackSubcommand + " <event> [fields...]",
		Short:  "Handle an fzf key binding.",
		Hidden: true,
		Args:   cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := fzf.ParseEvent(args[0])
			if err != nil {
				return err
			}
			if root == "" {
				root = s.Notes
			}
			initial := s.Config.InitialMode()
			if initialMode != "" {
				if initial, err = mode.Parse(initialMode); err != nil {
					return err
				}
			}

			req := fzf.Request{
				Prompt: os.Getenv("FZF_PROMPT"),
				Args:   args[1:],
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}
			s.Logger.Debug("callback", "event", event, "prompt", req.Prompt, "args", req.Args)
			return Callbacks(s, root, initial).Dispatcher().Dispatch(cmd.Context(), event, req)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Notes directory the session searches.")
	cmd.Flags().StringVar(&initialMode, "mode", "", "Mode the session started in (default from config).")
	return cmd
}

// Callbacks wires the session handlers to the configured components.
// initial is the mode an unrecognised prompt falls back to on reload.
func Callbacks(s *state.State, root string, initial mode.Mode) fzf.Callbacks {
	return fzf.Callbacks{
		Root:      root,
		Delimiter: s.Builder().Delimiter,
		Toggler:   s.Toggler(root, initial),
		Pager:     s.Pager(),
		Delete: func(_ context.Context, req fzf.Request, name string) error {
			d := s.Deleter(root, req.Stdout)
			d.Confirm = confirmDelete
			return d.Delete(name)
		},
		Copy: writeClipboard,
	}
}
