package new

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/note"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
	"github.com/Paintersrp/keepnote/pkg/shared/arg"
	"github.com/Paintersrp/keepnote/pkg/shared/flags"
)

var readClipboard = clipboard.ReadAll

// Options control how a note is created.
type Options struct {
	Date   time.Time
	Paste  bool
	NoOpen bool
}

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [title]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			This command creates a new note in your notes directory and opens it
			in your editor with the cursor below the title.

			The file is named after the date and a slug of the title, for example
			2024-05-01_weekly-review.md. Existing notes are never overwritten.
		`),
		Example: heredoc.Doc(`
			keepnote new weekly review
			keepnote new "meeting notes" --date yesterday --no-open
			keepnote new snippet --paste
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := handleOptions(cmd)
			if err != nil {
				return err
			}
			return Run(cmd, s, args, opts)
		},
	}

	flags.AddDate(cmd)
	flags.AddPaste(cmd)
	cmd.Flags().Bool("no-open", false, "Create the note without opening the editor.")
	return cmd
}

func handleOptions(cmd *cobra.Command) (Options, error) {
	date, err := flags.HandleDate(cmd)
	if err != nil {
		return Options{}, err
	}
	paste, err := flags.HandlePaste(cmd)
	if err != nil {
		return Options{}, err
	}
	noOpen, err := cmd.Flags().GetBool("no-open")
	if err != nil {
		return Options{}, err
	}
	return Options{Date: date, Paste: paste, NoOpen: noOpen}, nil
}

// Run creates a note titled by args, runs the post-create hooks and opens it.
func Run(cmd *cobra.Command, s *state.State, args []string, opts Options) error {
	title, err := arg.HandleTitle(args)
	if err != nil {
		return err
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}

	var body string
	if opts.Paste {
		body, err = readClipboard()
		if err != nil {
			return fmt.Errorf("error reading clipboard: %w", err)
		}
		body = strings.TrimRight(body, "\r\n")
	}

	path, err := note.Create(s.Notes, title, opts.Date, body)
	if errors.Is(err, note.ErrExists) {
		cmd.Println("hint: Try again with a different title or --date, or open the note with 'keepnote open'")
		return err
	}
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	cmd.Printf("Created note: %s\n", path)
	s.Logger.Info("note created", "path", path)

	hooks := s.Hooks(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err := hooks.RunPostCreate(cmd.Context(), path); err != nil {
		return fmt.Errorf("post-create hook failed: %w", err)
	}

	if opts.NoOpen {
		return nil
	}
	return cmdpkg.OpenNote(cmd, s, path, note.CursorLine)
}
