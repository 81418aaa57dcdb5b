package git

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/state"
	"github.com/Paintersrp/keepnote/internal/vcs"
)

func NewCmdGit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git [args...]",
		Short: "Run git inside the notes directory.",
		Long: heredoc.Doc(`
			Runs git with the given arguments in your notes directory, so you can
			set up and inspect the repository without changing directories.
			git's exit status becomes keepnote's.
		`),
		Example: heredoc.Doc(`
			keepnote git init
			keepnote git remote add origin git@github.com:you/notes.git
			keepnote git log --oneline
		`),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return vcs.Git(cmd.Context(), s.Notes, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
