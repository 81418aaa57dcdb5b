package search

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Options control one search.
type Options struct {
	// Mode is the starting mode name; empty means the configured one.
	Mode  string
	Print bool
}

func NewCmdSearch(s *state.State) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:     "search",
		Aliases: []string{"s", "find"},
		Short:   "Fuzzy-search your notes and open the selection.",
		Long: heredoc.Doc(`
			This command searches the notes directory with ripgrep and lets you pick
			a match with fzf. The chosen note opens in your editor at the matched line.

			Keys inside the search (configurable under [keys]):
			  tab     switch between content and file name search
			  ctrl-d  move the highlighted note to the trash
			  ctrl-y  copy the highlighted note's path

			When stdout is not a terminal, or with --print, the selection is printed
			as path:line instead of being opened.
		`),
		Example: "keepnote search --mode files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Mode to start in: content or files (default from config).")
	cmd.Flags().BoolVarP(&opts.Print, "print", "p", false, "Print the selection as path:line instead of opening it.")
	return cmd
}

// Run starts a search session and opens or prints what the user selects.
// Leaving the session without a selection is not an error.
func Run(cmd *cobra.Command, s *state.State, opts Options) error {
	initial := s.Config.InitialMode()
	if opts.Mode != "" {
		m, err := mode.Parse(opts.Mode)
		if err != nil {
			return err
		}
		initial = m
	}

	session, err := s.Session(initial, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	sel, err := session.Run(cmd.Context())
	if err != nil {
		return err
	}
	if sel == nil {
		return nil
	}

	if opts.Print || !stdoutIsTerminal() {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\n", sel.Filepath, sel.LineNumber)
		return err
	}
	return cmdpkg.OpenNote(cmd, s, sel.Filepath, sel.LineNumber)
}
