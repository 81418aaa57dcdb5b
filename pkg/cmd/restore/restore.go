package restore

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/pathutil"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

func NewCmdRestore(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "restore [path]",
		Aliases: []string{"untrash"},
		Short:   "Restore a note from the trash.",
		Long: heredoc.Doc(`
			This command moves a note out of the '.trash' directory back to where
			it was deleted from. Relative paths are looked up in the trash.

			Example:
			  keepnote restore 2024-05-01_weekly-review.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("path argument is required")
			}
			path, err := cmdpkg.ResolveNotePath(cmd, s, args[0])
			if err != nil {
				return err
			}

			restored, err := s.Handler.Untrash(path)
			if err != nil {
				return fmt.Errorf("error restoring note: %w", err)
			}
			rel, err := pathutil.Relative(s.Notes, restored)
			if err != nil {
				rel = restored
			}
			cmd.Printf("Restored: %s\n", rel)
			return nil
		},
	}

	return cmd
}
