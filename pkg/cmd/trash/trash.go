package trash

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/pathutil"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

func NewCmdTrash(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash [path]",
		Short: "Move a note to the trash.",
		Long: heredoc.Doc(`
			This command moves a note to the '.trash' directory inside your notes
			directory. Paths are relative to the notes directory.
			Use 'keepnote restore' to bring it back.

			Example:
			  keepnote trash 2024-05-01_weekly-review.md
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

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("file does not exist: %s", path)
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("not a note file: %s", path)
			}

			trashed, err := s.Handler.Trash(path)
			if err != nil {
				return fmt.Errorf("error moving file to trash: %w", err)
			}
			rel, err := pathutil.Relative(s.Notes, trashed)
			if err != nil {
				rel = trashed
			}
			cmd.Printf("Moved to trash: %s\n", rel)
			return nil
		},
	}

	return cmd
}
