package note

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/pathutil"
)

// Hooks runs the commands configured under [hooks] for a note. Arguments
// may use {file}, {notes}, {relative} and {filename}.
type Hooks struct {
	Root   string
	Config config.HookConfig
	Stdout io.Writer
	Stderr io.Writer
}

type hookContext struct {
	File     string
	Notes    string
	Relative string
	Filename string
}

func (h Hooks) RunPreOpen(ctx context.Context, path string) error {
	return h.execute(ctx, "preOpen", h.Config.PreOpen, path)
}

func (h Hooks) RunPostOpen(ctx context.Context, path string) error {
	return h.execute(ctx, "postOpen", h.Config.PostOpen, path)
}

func (h Hooks) RunPostCreate(ctx context.Context, path string) error {
	return h.execute(ctx, "postCreate", h.Config.PostCreate, path)
}

func (h Hooks) execute(ctx context.Context, phase string, commands []config.CommandTemplate, path string) error {
	if len(commands) == 0 {
		return nil
	}

	hc := h.newHookContext(path)
	for _, command := range commands {
		cmd, wait := h.buildHookCommand(ctx, command, hc)
		if cmd == nil {
			continue
		}
		name := cmd.Args[0]

		if err := cmd.Start(); err != nil {
			return fmt.Errorf("%s hook %q failed to start: %w", phase, name, err)
		}

		if wait {
			if err := cmd.Wait(); err != nil {
				return fmt.Errorf("%s hook %q failed: %w", phase, name, err)
			}
			continue
		}

		if err := cmd.Process.Release(); err != nil {
			return fmt.Errorf("%s hook %q release failed: %w", phase, name, err)
		}
	}

	return nil
}

func (h Hooks) buildHookCommand(ctx context.Context, template config.CommandTemplate, hc hookContext) (*exec.Cmd, bool) {
	execName := strings.TrimSpace(applyHookPlaceholders(template.Exec, hc))
	if execName == "" {
		return nil, false
	}

	wait := true
	if template.Wait != nil {
		wait = *template.Wait
	}

	var cmd *exec.Cmd
	if wait {
		cmd = exec.CommandContext(ctx, execName, expandHookArgs(template.Args, hc)...)
	} else {
		// Detached hooks outlive the command that started them.
		cmd = exec.Command(execName, expandHookArgs(template.Args, hc)...)
	}
	cmd.Dir = h.Root

	if template.Silence == nil || !*template.Silence {
		cmd.Stdout = h.Stdout
		cmd.Stderr = h.Stderr
	}

	return cmd, wait
}

func (h Hooks) newHookContext(path string) hookContext {
	relative, err := pathutil.Relative(h.Root, path)
	if err != nil {
		relative = path
	}

	return hookContext{
		File:     path,
		Notes:    h.Root,
		Relative: relative,
		Filename: filepath.Base(path),
	}
}

func expandHookArgs(args []string, hc hookContext) []string {
	if len(args) == 0 {
		return nil
	}

	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		expanded = append(expanded, applyHookPlaceholders(arg, hc))
	}

	return expanded
}

func applyHookPlaceholders(value string, hc hookContext) string {
	return strings.NewReplacer(
		"{file}", hc.File,
		"{notes}", hc.Notes,
		"{relative}", hc.Relative,
		"{filename}", hc.Filename,
	).Replace(value)
}
