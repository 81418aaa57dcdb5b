package doctor

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/deps"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

func NewCmdDoctor(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that keepnote's external programs are installed.",
		Long: heredoc.Doc(`
			This command looks up ripgrep, fzf, bat and git on your PATH and checks
			that the configuration loads. Anything missing is listed with where to
			get it.
		`),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdpkg.SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			statuses := deps.Check(deps.Searcher, deps.Selector, deps.Pager, deps.Git)
			fmt.Fprintln(out, "Dependencies:")
			fmt.Fprintln(out, deps.Format(statuses))
			fmt.Fprintln(out)

			configPath := ""
			if f := cmd.Flag("config"); f != nil {
				configPath = f.Value.String()
			}
			configErr := s.Load(configPath)
			fmt.Fprintln(out, "Configuration:")
			if configErr != nil {
				fmt.Fprintf(out, "  %s %v\n", color.RedString("✗"), configErr)
			} else {
				fmt.Fprintf(out, "  %s %s\n", color.GreenString("✓"), s.Config.Path())
				fmt.Fprintf(out, "  %s Notes in %s\n", color.GreenString("✓"), s.Notes)
			}

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d missing dependencies", len(missing))
			}
			return configErr
		},
	}

	return cmd
}
