package fzf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Paintersrp/keepnote/internal/deps"
	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/ripgrep"
	"github.com/Paintersrp/keepnote/internal/selection"
)

const fzfStub = `#!/bin/sh
printf '%s\n' "$@" > "$FZF_STUB_ARGS"
cat > "$FZF_STUB_STDIN"
printf '%s' "$FZF_STUB_OUTPUT"
exit ${FZF_STUB_EXIT:-0}
`

const rgStub = `#!/bin/sh
printf 'a.md//3//hello\nb.md//1//see https://example.com\n'
`

type stubEnv struct {
	root      string
	argsFile  string
	stdinFile string
}

func setupStubs(t *testing.T, withFzf bool) stubEnv {
	t.Helper()

	binDir := t.TempDir()
	writeScript(t, filepath.Join(binDir, "rg"), rgStub)
	if withFzf {
		writeScript(t, filepath.Join(binDir, "fzf"), fzfStub)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	scratch := t.TempDir()
	env := stubEnv{
		root:      t.TempDir(),
		argsFile:  filepath.Join(scratch, "args"),
		stdinFile: filepath.Join(scratch, "stdin"),
	}
	t.Setenv("FZF_STUB_ARGS", env.argsFile)
	t.Setenv("FZF_STUB_STDIN", env.stdinFile)
	t.Setenv("FZF_STUB_OUTPUT", "")
	t.Setenv("FZF_STUB_EXIT", "0")
	return env
}

func writeScript(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to create stub %s: %v", path, err)
	}
}

func newTestSession(root string, header HeaderFunc) *Session {
	builder := ripgrep.NewBuilder()
	return NewSession(Options{
		Root:    root,
		Builder: builder,
		Toggler: mode.Toggler{
			Prompts: mode.DefaultPrompts,
			Initial: mode.Content,
			Source:  builder,
			Root:    root,
		},
		Callback:     Callback{Executable: "/usr/local/bin/keepnote", Root: root},
		Header:       header,
		Requirements: []deps.Requirement{deps.Selector, deps.Searcher},
		Stderr:       io.Discard,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestRunDecodesSelection(t *testing.T) {
	env := setupStubs(t, true)
	t.Setenv("FZF_STUB_OUTPUT", "a.md//3//hello\n")

	sel, err := newTestSession(env.root, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if sel == nil {
		t.Fatal("expected a selection")
	}

	want := selection.Selection{Filename: "a.md", LineNumber: 3, Filepath: filepath.Join(env.root, "a.md")}
	if *sel != want {
		t.Fatalf("Run() = %+v, want %+v", *sel, want)
	}

	stdin := readLines(t, env.stdinFile)
	if len(stdin) != 2 || stdin[0] != "a.md//3//hello" {
		t.Fatalf("fzf did not receive the searcher output: %q", stdin)
	}
}

func TestRunPassesSessionArguments(t *testing.T) {
	env := setupStubs(t, true)

	header := func(string) (string, error) { return "", errors.New("not a repo") }
	if _, err := newTestSession(env.root, header).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	args := readLines(t, env.argsFile)
	for _, want := range []string{
		"--ansi",
		"--layout=reverse",
		"--header=" + HeaderUnavailable,
		"--delimiter=//",
		"--prompt=Content> ",
		"--bind=change:first",
	} {
		if !slices.Contains(args, want) {
			t.Fatalf("expected %q in fzf args %q", want, args)
		}
	}

	var toggle string
	for _, arg := range args {
		if strings.HasPrefix(arg, "--bind=tab:") {
			toggle = arg
		}
	}
	if !strings.Contains(toggle, "transform(") || !strings.Contains(toggle, "_callback toggle") {
		t.Fatalf("unexpected toggle binding %q", toggle)
	}
}

func TestRunCancelledIsNotAnError(t *testing.T) {
	env := setupStubs(t, true)
	t.Setenv("FZF_STUB_EXIT", "130")
	t.Setenv("FZF_STUB_OUTPUT", "weird//not-a-number//rest")

	sel, err := newTestSession(env.root, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("expected cancellation to return no error, got %v", err)
	}
	if sel != nil {
		t.Fatalf("expected no selection, got %+v", sel)
	}
}

func TestRunEmptyOutputIsNoSelection(t *testing.T) {
	env := setupStubs(t, true)

	sel, err := newTestSession(env.root, nil).Run(context.Background())
	if err != nil || sel != nil {
		t.Fatalf("Run() = %+v, %v; want nil, nil", sel, err)
	}
}

func TestRunOtherExitWithoutOutputIsNoSelection(t *testing.T) {
	env := setupStubs(t, true)
	t.Setenv("FZF_STUB_EXIT", "2")

	sel, err := newTestSession(env.root, nil).Run(context.Background())
	if err != nil || sel != nil {
		t.Fatalf("Run() = %+v, %v; want nil, nil", sel, err)
	}
}

func TestRunReportsMalformedLineNumber(t *testing.T) {
	env := setupStubs(t, true)
	t.Setenv("FZF_STUB_OUTPUT", "weird//not-a-number//rest\n")

	sel, err := newTestSession(env.root, nil).Run(context.Background())
	if !errors.Is(err, selection.ErrNonIntegerLineNumber) {
		t.Fatalf("expected ErrNonIntegerLineNumber, got %v", err)
	}
	if sel != nil {
		t.Fatalf("expected no selection on decode failure, got %+v", sel)
	}
}

func TestRunMissingSelector(t *testing.T) {
	env := setupStubs(t, false)
	binDir := filepath.Dir(env.argsFile)
	t.Setenv("PATH", binDir)

	_, err := newTestSession(env.root, nil).Run(context.Background())
	if !errors.Is(err, deps.ErrSelectorUnavailable) {
		t.Fatalf("expected ErrSelectorUnavailable, got %v", err)
	}
	if _, statErr := os.Stat(env.argsFile); !os.IsNotExist(statErr) {
		t.Fatal("fzf must not start when dependencies are missing")
	}
}

func TestRunUsesHeader(t *testing.T) {
	env := setupStubs(t, true)

	header := func(root string) (string, error) {
		if root != env.root {
			t.Errorf("header computed for %q, want %q", root, env.root)
		}
		return "Git status: clean", nil
	}
	if _, err := newTestSession(env.root, header).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !slices.Contains(readLines(t, env.argsFile), "--header=Git status: clean") {
		t.Fatal("expected computed header to be passed to fzf")
	}
}
