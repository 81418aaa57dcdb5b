package search

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/keepnote/internal/state"
)

const fzfStub = `#!/bin/sh
printf '%s\n' "$@" > "$FZF_STUB_ARGS"
cat > /dev/null
printf '%s' "$FZF_STUB_OUTPUT"
exit ${FZF_STUB_EXIT:-0}
`

const rgStub = `#!/bin/sh
printf 'a.md//3//hello\n'
`

const editorStub = `#!/bin/sh
printf '%s\n' "$@" > "$NOTE_TEST_LOG"
`

type fixture struct {
	state    *state.State
	argsFile string
	logFile  string
}

func setup(t *testing.T) fixture {
	t.Helper()

	binDir := t.TempDir()
	for name, script := range map[string]string{"fzf": fzfStub, "rg": rgStub, "nvim": editorStub} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755); err != nil {
			t.Fatalf("failed to create %s stub: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	scratch := t.TempDir()
	f := fixture{
		argsFile: filepath.Join(scratch, "args"),
		logFile:  filepath.Join(scratch, "editor.log"),
	}
	t.Setenv("FZF_STUB_ARGS", f.argsFile)
	t.Setenv("FZF_STUB_OUTPUT", "a.md//3//hello\n")
	t.Setenv("FZF_STUB_EXIT", "0")
	t.Setenv("NOTE_TEST_LOG", f.logFile)
	t.Setenv("EDITOR", "nvim")
	t.Setenv("KEEPNOTE_SEARCH_PAGER", "builtin")

	f.state = state.NewState(t.TempDir())
	if err := f.state.Load(""); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	return f
}

func fakeTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stdoutIsTerminal = orig })
}

func execute(t *testing.T, s *state.State, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdSearch(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchPrintsSelection(t *testing.T) {
	f := setup(t)
	fakeTerminal(t, true)

	out, err := execute(t, f.state, "--print")
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	want := filepath.Join(f.state.Notes, "a.md") + ":3\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if _, err := os.Stat(f.logFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected editor not to run, stat err = %v", err)
	}
}

func TestSearchPrintsWhenNotATerminal(t *testing.T) {
	f := setup(t)
	fakeTerminal(t, false)

	out, err := execute(t, f.state)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if !strings.HasSuffix(out, "a.md:3\n") {
		t.Fatalf("expected printed selection, got %q", out)
	}
}

func TestSearchOpensSelectionInEditor(t *testing.T) {
	f := setup(t)
	fakeTerminal(t, true)

	if _, err := execute(t, f.state); err != nil {
		t.Fatalf("search returned error: %v", err)
	}

	logged, err := os.ReadFile(f.logFile)
	if err != nil {
		t.Fatalf("editor was not started: %v", err)
	}
	want := "+3\n" + filepath.Join(f.state.Notes, "a.md") + "\n"
	if string(logged) != want {
		t.Fatalf("editor args = %q, want %q", logged, want)
	}
}

func TestSearchCancelledIsNotAnError(t *testing.T) {
	f := setup(t)
	fakeTerminal(t, true)
	t.Setenv("FZF_STUB_OUTPUT", "")
	t.Setenv("FZF_STUB_EXIT", "130")

	out, err := execute(t, f.state)
	if err != nil {
		t.Fatalf("expected no error on cancel, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if _, err := os.Stat(f.logFile); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected editor not to run, stat err = %v", err)
	}
}

func TestSearchModeFlag(t *testing.T) {
	f := setup(t)
	fakeTerminal(t, true)

	if _, err := execute(t, f.state, "--print", "--mode", "files"); err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	args, err := os.ReadFile(f.argsFile)
	if err != nil {
		t.Fatalf("fzf was not started: %v", err)
	}
	if !strings.Contains(string(args), "--prompt=Files> ") {
		t.Fatalf("expected files prompt in fzf args:\n%s", args)
	}

	if _, err := execute(t, f.state, "--mode", "lines"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
