// Package deps checks that the external programs keepnote drives are
// installed.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

var (
	ErrSelectorUnavailable = errors.New("fzf is not installed")
	ErrSearcherUnavailable = errors.New("ripgrep is not installed")
	ErrPagerUnavailable    = errors.New("bat is not installed")
	ErrGitUnavailable      = errors.New("git is not installed")
)

// Requirement is an external executable and where to get it.
type Requirement struct {
	Command string
	Name    string
	URL     string
	Err     error
}

var (
	Searcher = Requirement{Command: "rg", Name: "ripgrep", URL: "https://github.com/BurntSushi/ripgrep", Err: ErrSearcherUnavailable}
	Selector = Requirement{Command: "fzf", Name: "fzf", URL: "https://github.com/junegunn/fzf", Err: ErrSelectorUnavailable}
	Pager    = Requirement{Command: "bat", Name: "bat", URL: "https://github.com/sharkdp/bat", Err: ErrPagerUnavailable}
	Git      = Requirement{Command: "git", Name: "git", URL: "https://git-scm.com/downloads", Err: ErrGitUnavailable}
)

// Required lists what a search session needs with the bat pager.
var Required = []Requirement{Searcher, Selector, Pager}

// Status is the outcome of looking a requirement up on PATH.
type Status struct {
	Requirement
	Path      string
	Installed bool
}

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// Check looks every requirement up on PATH.
func Check(reqs ...Requirement) []Status {
	return lo.Map(reqs, func(req Requirement, _ int) Status {
		path, err := exec.LookPath(req.Command)
		return Status{Requirement: req, Path: path, Installed: err == nil}
	})
}

// Missing returns the statuses that are not installed.
func Missing(statuses []Status) []Status {
	return lo.Filter(statuses, func(s Status, _ int) bool {
		return !s.Installed
	})
}

// Format renders one line per status with a check or cross mark.
func Format(statuses []Status) string {
	lines := lo.Map(statuses, func(s Status, _ int) string {
		if s.Installed {
			return fmt.Sprintf("  %s Installed %s", green("✓"), s.Name)
		}
		return fmt.Sprintf("  %s Missing %s - %s", red("✗"), s.Name, s.URL)
	})
	return strings.Join(lines, "\n")
}

// MissingError reports the requirements that could not be found. It unwraps
// to the sentinel of each missing requirement.
type MissingError struct {
	Statuses []Status
}

func (e *MissingError) Error() string {
	return "missing required dependencies:\n" + Format(e.Statuses)
}

func (e *MissingError) Unwrap() []error {
	return lo.Map(Missing(e.Statuses), func(s Status, _ int) error {
		return s.Err
	})
}

// Require returns a *MissingError when any requirement is not on PATH.
func Require(reqs ...Requirement) error {
	statuses := Check(reqs...)
	if len(Missing(statuses)) == 0 {
		return nil
	}
	return &MissingError{Statuses: statuses}
}
