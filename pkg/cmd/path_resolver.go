package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/handler"
	"github.com/Paintersrp/keepnote/internal/pathutil"
	"github.com/Paintersrp/keepnote/internal/state"
)

// ResolveNotePath turns a command argument into a path under the notes
// directory. Relative paths given to restore are looked up in the trash.
func ResolveNotePath(cmd *cobra.Command, s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	notes := filepath.Clean(s.Notes)
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	if filepath.IsAbs(arg) {
		return pathutil.Resolve(notes, arg)
	}
	return pathutil.Resolve(notes, resolveRelative(cmd, arg))
}

func resolveRelative(cmd *cobra.Command, arg string) string {
	relPath := filepath.Clean(arg)

	targetDir := inferTargetDir(cmd)
	if targetDir == "" {
		return relPath
	}

	firstSegment := relPath
	if idx := strings.Index(relPath, string(filepath.Separator)); idx != -1 {
		firstSegment = relPath[:idx]
	}

	if firstSegment == targetDir {
		return relPath
	}

	return filepath.Join(targetDir, relPath)
}

func inferTargetDir(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	switch cmd.Name() {
	case "restore":
		return handler.TrashDir
	default:
		return ""
	}
}
