package fzf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Paintersrp/keepnote/internal/deps"
	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/ripgrep"
	"github.com/Paintersrp/keepnote/internal/selection"
)

// ExitCancelled is the status fzf exits with on escape or interrupt.
const ExitCancelled = 130

// HeaderUnavailable is shown when the header cannot be computed.
const HeaderUnavailable = "Git status: unavailable"

const (
	defaultColors        = "header:yellow,info:8,bg+:237,prompt:39"
	defaultPreviewWindow = "right:30%:wrap"
	defaultShell         = "/bin/sh"
)

// HeaderFunc computes the header line for a notes root.
type HeaderFunc func(root string) (string, error)

// Options configure one search session.
type Options struct {
	Root     string
	Builder  ripgrep.Builder
	Toggler  mode.Toggler
	Codec    selection.Codec
	Callback Callback
	Keys     Keys
	Header   HeaderFunc

	// Executable is the fzf binary; "fzf" when empty.
	Executable    string
	Colors        string
	PreviewWindow string
	// Shell runs fzf's reload and execute commands. The commands are quoted
	// for a POSIX shell.
	Shell        string
	Requirements []deps.Requirement

	Stderr io.Writer
	Logger *slog.Logger
}

// Session runs rg piped into fzf and decodes what the user confirms.
type Session struct {
	opts Options
}

// NewSession fills defaults into opts.
func NewSession(opts Options) *Session {
	if opts.Executable == "" {
		opts.Executable = "fzf"
	}
	if opts.Colors == "" {
		opts.Colors = defaultColors
	}
	if opts.PreviewWindow == "" {
		opts.PreviewWindow = defaultPreviewWindow
	}
	if opts.Shell == "" {
		opts.Shell = defaultShell
	}
	if opts.Keys == nil {
		opts.Keys = DefaultKeys
	}
	if opts.Codec.Delimiter == "" {
		opts.Codec = selection.NewCodec(opts.Builder.Delimiter)
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Session{opts: opts}
}

// Args returns the fzf command line for a header.
func (s *Session) Args(header string) []string {
	o := s.opts
	args := []string{
		"--ansi",
		"--no-mouse",
		"--layout=reverse",
		"--header=" + header,
		"--header-first",
		"--color=" + o.Colors,
		"--delimiter=" + o.Codec.Delimiter,
		"--prompt=" + o.Toggler.Prompts.For(o.Toggler.Initial),
		"--preview=" + o.Callback.PreviewCommand(),
		"--preview-window=" + o.PreviewWindow,
	}
	for _, b := range o.Callback.Bindings(o.Keys) {
		args = append(args, "--bind="+b)
	}
	return args
}

func (s *Session) header() string {
	if s.opts.Header == nil {
		return HeaderUnavailable
	}
	h, err := s.opts.Header(s.opts.Root)
	if err != nil {
		s.opts.Logger.Debug("header unavailable", "root", s.opts.Root, "err", err)
		return HeaderUnavailable
	}
	return h
}

// Run blocks until the user confirms a line or leaves fzf. A nil selection
// with a nil error means nothing was selected.
func (s *Session) Run(ctx context.Context) (*selection.Selection, error) {
	o := s.opts
	if err := deps.Require(o.Requirements...); err != nil {
		return nil, err
	}

	argv := o.Builder.Argv(o.Toggler.Initial)
	search := exec.CommandContext(ctx, argv[0], argv[1:]...)
	search.Dir = o.Root
	var searchErr bytes.Buffer
	search.Stderr = &searchErr

	finder := exec.CommandContext(ctx, o.Executable, s.Args(s.header())...)
	finder.Dir = o.Root
	finder.Env = append(os.Environ(), "SHELL="+o.Shell)
	finder.Stderr = o.Stderr
	var out bytes.Buffer
	finder.Stdout = &out

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	search.Stdout = pw
	finder.Stdin = pr

	if err := search.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}
	if err := finder.Start(); err != nil {
		pr.Close()
		pw.Close()
		stop(search)
		return nil, fmt.Errorf("failed to start %s: %w", o.Executable, err)
	}
	// Both children hold their own ends now.
	pr.Close()
	pw.Close()

	waitErr := finder.Wait()
	stop(search)
	if searchErr.Len() > 0 {
		o.Logger.Debug("searcher stderr", "output", strings.TrimSpace(searchErr.String()))
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	line := firstLine(out.String())

	var exitErr *exec.ExitError
	switch {
	case errors.As(waitErr, &exitErr) && exitErr.ExitCode() == ExitCancelled:
		o.Logger.Info("search cancelled")
		return nil, nil
	case waitErr != nil && line == "":
		o.Logger.Info("fzf exited without a selection", "err", waitErr)
		return nil, nil
	case waitErr != nil:
		return nil, fmt.Errorf("fzf: %w", waitErr)
	case line == "":
		return nil, nil
	}

	sel, err := o.Codec.Decode(line, o.Root)
	if err != nil {
		return nil, err
	}
	o.Logger.Info("selected", "file", sel.Filepath, "line", sel.LineNumber)
	return &sel, nil
}

// stop kills the searcher in case fzf left before it finished writing, then
// reaps it.
func stop(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "\r")
}
