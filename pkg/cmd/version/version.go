package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/constants"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the keepnote version.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdpkg.SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.Version)
			return err
		},
	}
}
