// Package preview renders the file shown in fzf's preview pane.
package preview

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// Pager renders path to w, highlighting line when it is positive.
type Pager interface {
	Render(ctx context.Context, w io.Writer, path string, line int) error
}

// Kind names a pager in the configuration.
type Kind string

const (
	KindBat     Kind = "bat"
	KindBuiltin Kind = "builtin"
)

// ParseKind validates a configured pager name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindBat:
		return KindBat, nil
	case KindBuiltin:
		return KindBuiltin, nil
	default:
		return "", fmt.Errorf("invalid pager %q: use 'bat' or 'builtin'", s)
	}
}

// New returns the pager for kind. above is the number of lines kept above a
// highlighted line; zero shows the file from the top.
func New(kind Kind, above int) Pager {
	if kind == KindBuiltin {
		return &Builtin{Context: above}
	}
	return &Bat{Executable: "bat", Context: above}
}

// ParseLine reads the optional line argument fzf passes as {2}. Anything
// that is not a positive integer means no highlight.
func ParseLine(arg string) int {
	n, err := strconv.Atoi(strings.TrimSpace(stripansi.Strip(arg)))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// Bat renders through the bat pager.
type Bat struct {
	Executable string
	Context    int
	Stderr     io.Writer
}

// Args returns the bat arguments for path and line.
func (b *Bat) Args(path string, line int) []string {
	args := []string{"--color=always", "--style=numbers"}
	if line > 0 {
		args = append(args, fmt.Sprintf("--highlight-line=%d", line))
		if b.Context > 0 {
			args = append(args, fmt.Sprintf("--line-range=%d:", max(1, line-b.Context)))
		}
	}
	return append(args, path)
}

// Render runs bat. A non-zero bat exit is returned as *exec.ExitError so the
// caller can exit with the same code.
func (b *Bat) Render(ctx context.Context, w io.Writer, path string, line int) error {
	exe := b.Executable
	if exe == "" {
		exe = "bat"
	}

	cmd := exec.CommandContext(ctx, exe, b.Args(path, line)...)
	cmd.Stdout = w
	cmd.Stderr = b.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}
