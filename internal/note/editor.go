package note

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Paintersrp/keepnote/internal/shell"
)

// EditorKind is how an editor is told which line to open at.
type EditorKind int

const (
	// Plain editors only receive the file.
	Plain EditorKind = iota
	// VSCode family: --wait -g file:line.
	VSCode
	// Vim style: +line file. Also nano, emacs, micro and kakoune.
	Vim
	// Helix style: file:line. Also sublime and zed.
	Helix
)

var editorKinds = map[string]EditorKind{
	"code":          VSCode,
	"code-insiders": VSCode,
	"codium":        VSCode,
	"cursor":        VSCode,
	"windsurf":      VSCode,
	"vi":            Vim,
	"vim":           Vim,
	"nvim":          Vim,
	"gvim":          Vim,
	"nano":          Vim,
	"emacs":         Vim,
	"emacsclient":   Vim,
	"micro":         Vim,
	"kak":           Vim,
	"hx":            Helix,
	"helix":         Helix,
	"subl":          Helix,
	"zed":           Helix,
}

func (k EditorKind) String() string {
	switch k {
	case VSCode:
		return "vscode"
	case Vim:
		return "vim"
	case Helix:
		return "helix"
	default:
		return "plain"
	}
}

// KindOf classifies an editor executable by its base name, ignoring a
// Windows .exe or .cmd suffix.
func KindOf(command string) EditorKind {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(command, `\`, "/")))
	for _, ext := range []string{".exe", ".cmd", ".bat"} {
		name = strings.TrimSuffix(name, ext)
	}
	return editorKinds[name]
}

// Editor is a parsed editor setting such as "code -w".
type Editor struct {
	Command string
	Args    []string
	Kind    EditorKind
}

// ParseEditor splits an editor setting into its command and arguments.
func ParseEditor(line string) (Editor, error) {
	words, err := shell.Split(line)
	if err != nil {
		return Editor{}, fmt.Errorf("invalid editor %q: %w", line, err)
	}
	if len(words) == 0 {
		return Editor{}, fmt.Errorf("editor not configured")
	}
	return Editor{Command: words[0], Args: words[1:], Kind: KindOf(words[0])}, nil
}

// Argv returns the full command line that opens path at line. A line below
// 1 opens the file without positioning.
func (e Editor) Argv(path string, line int) []string {
	argv := append([]string{e.Command}, e.Args...)

	switch e.Kind {
	case VSCode:
		if !slices.Contains(e.Args, "--wait") && !slices.Contains(e.Args, "-w") {
			argv = append(argv, "--wait")
		}
		if line > 0 {
			return append(argv, "-g", path+":"+strconv.Itoa(line))
		}
	case Vim:
		if line > 0 {
			argv = append(argv, "+"+strconv.Itoa(line))
		}
	case Helix:
		if line > 0 {
			return append(argv, path+":"+strconv.Itoa(line))
		}
	}

	return append(argv, path)
}

// Launcher opens notes in the configured editor, running the open hooks
// around it.
type Launcher struct {
	Editor Editor
	Hooks  Hooks

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLauncher parses the editor setting and attaches the terminal.
func NewLauncher(editor string, hooks Hooks) (*Launcher, error) {
	e, err := ParseEditor(editor)
	if err != nil {
		return nil, err
	}
	return &Launcher{
		Editor: e,
		Hooks:  hooks,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Command prepares the editor process without starting it.
func (l *Launcher) Command(ctx context.Context, path string, line int) *exec.Cmd {
	argv := l.Editor.Argv(path, line)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return cmd
}

// Open blocks until the editor exits. A failing editor is returned wrapped
// so its exit status can be recovered with errors.As.
func (l *Launcher) Open(ctx context.Context, path string, line int) error {
	if err := l.Hooks.RunPreOpen(ctx, path); err != nil {
		return fmt.Errorf("pre-open hook failed: %w", err)
	}

	if err := l.Command(ctx, path, line).Run(); err != nil {
		return fmt.Errorf("editor %s: %w", l.Editor.Command, err)
	}

	if err := l.Hooks.RunPostOpen(ctx, path); err != nil {
		return fmt.Errorf("post-open hook failed: %w", err)
	}
	return nil
}
