package open

import (
	"errors"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/fzf"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

// finder is replaced in tests.
var finder = func(root, header, query string) (string, error) {
	return fzf.NewFuzzyFinder(root, header).Run(query)
}

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Pick a note by name and open it.",
		Long: heredoc.Doc(`
			This command lists the notes in your notes directory in a built-in fuzzy
			finder with a rendered markdown preview, and opens the chosen note in
			your editor. It does not need fzf, ripgrep or bat.

			An optional query pre-fills the finder.
		`),
		Example: "keepnote open review",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			path, err := finder(s.Notes, "Select a note to open.", query)
			if errors.Is(err, fzf.ErrNoSelection) {
				cmd.Println("No file selected")
				return nil
			}
			if err != nil {
				return err
			}
			return cmdpkg.OpenNote(cmd, s, path, 0)
		},
	}

	return cmd
}
