package git

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/keepnote/internal/state"
)

func TestGitRunsInNotesDirectory(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	notes := t.TempDir()
	cmd := NewCmdGit(&state.State{Notes: notes})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--quiet"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("git init returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(notes, ".git")); err != nil {
		t.Fatalf("expected a repository in the notes directory: %v", err)
	}
}

func TestGitExitStatusIsReturned(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}

	cmd := NewCmdGit(&state.State{Notes: t.TempDir()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{"not-a-git-command"})

	err := cmd.Execute()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() == 0 {
		t.Fatalf("expected git's exit status, got %v", err)
	}
}
