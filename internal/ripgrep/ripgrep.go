// Package ripgrep builds the rg invocations that feed the search session.
package ripgrep

import (
	"github.com/samber/lo"

	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/selection"
	"github.com/Paintersrp/keepnote/internal/shell"
)

// DefaultExecutable is the searcher looked up on PATH.
const DefaultExecutable = "rg"

// ReservedNames are device names reserved by Windows. rg must never list them
// as notes.
var ReservedNames = []string{"CON", "PRN", "AUX", "NUL", "COM[1-9]", "LPT[1-9]"}

// Builder produces rg argument vectors and their shell forms for a notes root.
type Builder struct {
	Executable string
	Delimiter  string
	Excludes   []string
}

// NewBuilder returns a Builder for rg with the default delimiter and the
// reserved-name exclusions.
func NewBuilder() Builder {
	return Builder{
		Executable: DefaultExecutable,
		Delimiter:  selection.DefaultDelimiter,
		Excludes:   ReservedNames,
	}
}

// Args returns the rg arguments, without the executable, for m. They expect
// to run with the notes root as working directory.
func (b Builder) Args(m mode.Mode) []string {
	if m == mode.Files {
		return append([]string{"--files", "--color=always"}, b.globs()...)
	}

	args := []string{
		"--line-number",
		"--color=always",
		"--with-filename",
		"--follow",
		"--field-match-separator=" + b.delimiter(),
	}
	args = append(args, b.globs()...)
	return append(args, ".")
}

// Argv returns the executable followed by Args(m).
func (b Builder) Argv(m mode.Mode) []string {
	return append([]string{b.executable()}, b.Args(m)...)
}

// Command returns "cd <root> && rg ..." for m with every word quoted.
func (b Builder) Command(root string, m mode.Mode) string {
	return shell.InDir(root, b.Argv(m)...)
}

// ContentCommand returns the content search as shell text.
func (b Builder) ContentCommand(root string) string {
	return b.Command(root, mode.Content)
}

// FilesCommand returns the file listing as shell text.
func (b Builder) FilesCommand(root string) string {
	return b.Command(root, mode.Files)
}

func (b Builder) globs() []string {
	return lo.Flatten(lo.Map(b.Excludes, func(name string, _ int) []string {
		return []string{"--glob", "!" + name}
	}))
}

func (b Builder) executable() string {
	if b.Executable == "" {
		return DefaultExecutable
	}
	return b.Executable
}

func (b Builder) delimiter() string {
	if b.Delimiter == "" {
		return selection.DefaultDelimiter
	}
	return b.Delimiter
}
