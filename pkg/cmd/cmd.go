package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/state"
	"github.com/Paintersrp/keepnote/internal/vcs"
)

// SkipLoad is the annotation for commands that must run even when the
// configuration cannot be loaded.
const SkipLoad = "keepnote/skip-load"

// SkipsLoad reports whether cmd carries the SkipLoad annotation.
func SkipsLoad(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[SkipLoad]
	return ok
}

// OpenNote opens path at line in the configured editor, then prints the git
// status of the notes directory when it is a repository.
func OpenNote(cmd *cobra.Command, s *state.State, path string, line int) error {
	launcher, err := s.Launcher()
	if err != nil {
		return err
	}
	if err := launcher.Open(cmd.Context(), path, line); err != nil {
		return err
	}

	header, err := vcs.Header(s.Notes)
	if err != nil {
		s.Logger.Debug("git status unavailable", "root", s.Notes, "err", err)
		return nil
	}
	cmd.Println(header)
	return nil
}
