package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/constants"
	"github.com/Paintersrp/keepnote/internal/logger"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
	"github.com/Paintersrp/keepnote/pkg/cmd/callback"
	"github.com/Paintersrp/keepnote/pkg/cmd/doctor"
	"github.com/Paintersrp/keepnote/pkg/cmd/git"
	"github.com/Paintersrp/keepnote/pkg/cmd/new"
	"github.com/Paintersrp/keepnote/pkg/cmd/open"
	"github.com/Paintersrp/keepnote/pkg/cmd/restore"
	"github.com/Paintersrp/keepnote/pkg/cmd/search"
	"github.com/Paintersrp/keepnote/pkg/cmd/settings"
	"github.com/Paintersrp/keepnote/pkg/cmd/sync"
	"github.com/Paintersrp/keepnote/pkg/cmd/trash"
	"github.com/Paintersrp/keepnote/pkg/cmd/version"
)

func NewCmdRoot(s *state.State) *cobra.Command {
	var configPath, logLevel string

	cmd := &cobra.Command{
		Use:   "keepnote [title]",
		Short: "Search and write markdown notes from the terminal.",
		Long: heredoc.Doc(`
			keepnote keeps a directory of markdown notes and drives ripgrep, fzf,
			bat, git and your editor around it.

			Run without arguments to fuzzy-search your notes and open the match in
			your editor. Any arguments are joined into the title of a new note.

			  keepnote                  search notes
			  keepnote weekly review    create 2024-05-01_weekly-review.md
		`),
		Version:       constants.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.Logger = logger.Setup(logLevel)
			if cmdpkg.SkipsLoad(cmd) {
				return nil
			}
			return s.Load(configPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return search.Run(cmd, s, search.Options{})
			}
			return new.Run(cmd, s, args, new.Options{})
		},
	}

	cmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Configuration file (default ~/.config/keepnote/config.toml).")
	cmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "Diagnostic log level: error, warn, info or verbose (default $LOG_LEVEL or error).")

	cmd.SetUsageTemplate(constants.Help)

	cmd.AddCommand(
		new.NewCmdNew(s),
		search.NewCmdSearch(s),
		open.NewCmdOpen(s),
		trash.NewCmdTrash(s),
		restore.NewCmdRestore(s),
		settings.NewCmdConfig(s),
		sync.NewCmdSync(s),
		git.NewCmdGit(s),
		doctor.NewCmdDoctor(s),
		version.NewCmdVersion(),
		callback.NewCmdCallback(s),
	)

	return cmd
}
