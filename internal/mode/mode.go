// Package mode implements the two-state search mode cycle used inside one
// fzf session: searching note contents and searching note file names.
package mode

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/keepnote/internal/shell"
)

// Mode selects what the searcher lists.
type Mode int

const (
	// Content lists every line of every note.
	Content Mode = iota
	// Files lists note file names.
	Files
)

func (m Mode) String() string {
	switch m {
	case Content:
		return "content"
	case Files:
		return "files"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Parse converts a configuration value into a Mode.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content", "contents":
		return Content, nil
	case "files", "file", "filename", "filenames":
		return Files, nil
	default:
		return Content, fmt.Errorf("invalid search mode %q: use 'content' or 'files'", s)
	}
}

// Prompts holds the prompt label shown by fzf for each mode. The label is
// also the only state fzf hands back to the toggle callback, through
// FZF_PROMPT, so the two labels must differ.
type Prompts struct {
	Content string
	Files   string
}

// DefaultPrompts are the labels used unless configured otherwise.
var DefaultPrompts = Prompts{Content: "Content> ", Files: "Files> "}

// For returns the prompt label for m.
func (p Prompts) For(m Mode) string {
	if m == Files {
		return p.Files
	}
	return p.Content
}

// CommandSource builds the reload command for each mode.
type CommandSource interface {
	ContentCommand(root string) string
	FilesCommand(root string) string
}

// Toggler computes mode transitions from the prompt label fzf reports.
type Toggler struct {
	Prompts Prompts
	Initial Mode
	Source  CommandSource
	Root    string
}

// Transition is the result of a toggle: the mode entered, its prompt label
// and the command that repopulates the candidate list.
type Transition struct {
	Mode   Mode
	Prompt string
	Reload string
}

// Action renders the transition as an fzf transform action.
func (t Transition) Action() string {
	return shell.Action("change-prompt", t.Prompt) + "+" + shell.Action("reload", t.Reload)
}

// ModeFor reports which mode a prompt label belongs to.
func (t Toggler) ModeFor(prompt string) (Mode, bool) {
	switch prompt {
	case t.Prompts.Content:
		return Content, true
	case t.Prompts.Files:
		return Files, true
	default:
		return t.Initial, false
	}
}

// NextMode returns the transition away from the mode shown by prompt. Only
// the Content label leads to Files; the Files label and any unrecognised or
// empty label lead to Content.
func (t Toggler) NextMode(prompt string) Transition {
	if prompt == t.Prompts.Content {
		return t.transition(Files)
	}
	return t.transition(Content)
}

// ReloadForCurrentMode returns the reload command for the mode shown by
// prompt without changing it. An unrecognised label reloads the initial
// mode.
func (t Toggler) ReloadForCurrentMode(prompt string) string {
	m, _ := t.ModeFor(prompt)
	return t.command(m)
}

// ReloadAction renders ReloadForCurrentMode as an fzf action that also
// refreshes the preview.
func (t Toggler) ReloadAction(prompt string) string {
	return shell.Action("reload", t.ReloadForCurrentMode(prompt)) + "+refresh-preview"
}

// Command returns the reload command for m.
func (t Toggler) Command(m Mode) string {
	return t.command(m)
}

func (t Toggler) transition(m Mode) Transition {
	return Transition{Mode: m, Prompt: t.Prompts.For(m), Reload: t.command(m)}
}

func (t Toggler) command(m Mode) string {
	if m == Files {
		return t.Source.FilesCommand(t.Root)
	}
	return t.Source.ContentCommand(t.Root)
}
