// Package vcs reads and records the git state of the notes directory.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// ErrNotRepository is returned when the notes directory is not inside a git
// work tree.
var ErrNotRepository = errors.New("not a git repository")

// ErrNothingToCommit is returned by CommitAll on a clean work tree.
var ErrNothingToCommit = errors.New("nothing to commit")

// InitHint is printed when the notes directory is not a repository.
const InitHint = `Initialize with:
  keepnote git init
  keepnote git remote add origin <url>
  keepnote git push -u origin main`

// Counts summarises a porcelain status.
type Counts struct {
	Modified  int
	Untracked int
}

// Clean reports whether nothing changed.
func (c Counts) Clean() bool {
	return c.Modified == 0 && c.Untracked == 0
}

// Header renders the one-line summary shown above the search results.
func (c Counts) Header() string {
	if c.Clean() {
		return color.GreenString("Git status: clean")
	}

	var parts []string
	if c.Modified > 0 {
		parts = append(parts, fmt.Sprintf("modified: %d", c.Modified))
	}
	if c.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("untracked: %d", c.Untracked))
	}
	return color.YellowString("Git status (%s)", strings.Join(parts, ", "))
}

// Repo wraps the repository holding the notes.
type Repo struct {
	Root string
	repo *git.Repository
}

// Open finds the repository containing root.
func Open(root string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", root, ErrNotRepository)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", root, err)
	}
	return &Repo{Root: root, repo: r}, nil
}

// Status returns the work tree status.
func (r *Repo) Status() (git.Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	return wt.Status()
}

// Counts classifies every changed path as untracked or modified.
func (r *Repo) Counts() (Counts, error) {
	status, err := r.Status()
	if err != nil {
		return Counts{}, err
	}
	return CountStatus(status), nil
}

// CountStatus classifies the entries of a status.
func CountStatus(status git.Status) Counts {
	var c Counts
	for _, fs := range status {
		switch {
		case fs.Staging == git.Untracked || fs.Worktree == git.Untracked:
			c.Untracked++
		case fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified:
			c.Modified++
		}
	}
	return c
}

// Ahead counts commits on HEAD that its upstream does not have. ok is false
// when the current branch has no upstream.
func (r *Repo) Ahead() (n int, ok bool, err error) {
	head, err := r.repo.Head()
	if err != nil {
		return 0, false, err
	}
	if !head.Name().IsBranch() {
		return 0, false, nil
	}

	branch, err := r.repo.Branch(head.Name().Short())
	if err != nil || branch.Remote == "" || branch.Merge == "" {
		return 0, false, nil
	}

	upstreamName := plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())
	upstream, err := r.repo.Reference(upstreamName, true)
	if err != nil {
		return 0, false, nil
	}

	known := make(map[plumbing.Hash]struct{})
	if err := r.walk(upstream.Hash(), func(c *object.Commit) error {
		known[c.Hash] = struct{}{}
		return nil
	}); err != nil {
		return 0, true, err
	}

	err = r.walk(head.Hash(), func(c *object.Commit) error {
		if _, seen := known[c.Hash]; seen {
			return storer.ErrStop
		}
		n++
		return nil
	})
	return n, true, err
}

func (r *Repo) walk(from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return err
	}
	defer iter.Close()
	return iter.ForEach(fn)
}

// CommitAll stages every change, deletions included, and commits it. The
// author comes from the git configuration.
func (r *Repo) CommitAll(message string) (plumbing.Hash, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	status, err := wt.Status()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		return plumbing.ZeroHash, ErrNothingToCommit
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to stage changes: %w", err)
	}

	// go-git sees a staged-only deletion as a clean tree; emptiness was
	// checked above.
	hash, err := wt.Commit(message, &git.CommitOptions{AllowEmptyCommits: true})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to commit: %w", err)
	}
	return hash, nil
}

// Push runs `git push` in the notes directory so the user's credential
// helpers and ssh agent apply.
func Push(ctx context.Context, root string, stdout, stderr io.Writer) error {
	if err := Git(ctx, root, []string{"push"}, stdout, stderr); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}

// Git runs the git executable in root with the terminal's stdin attached.
func Git(ctx context.Context, root string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = root
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Header returns the status line for root, or an error when it cannot be
// computed.
func Header(root string) (string, error) {
	r, err := Open(root)
	if err != nil {
		return "", err
	}
	c, err := r.Counts()
	if err != nil {
		return "", err
	}
	return c.Header(), nil
}
