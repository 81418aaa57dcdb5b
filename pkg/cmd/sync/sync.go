package sync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/note"
	"github.com/Paintersrp/keepnote/internal/state"
	"github.com/Paintersrp/keepnote/internal/vcs"
)

var (
	confirm = note.Confirm
	push    = vcs.Push

	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// Options control one sync.
type Options struct {
	Yes     bool
	Message string
	NoPush  bool
}

func NewCmdSync(s *state.State) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Commit and push changes in the notes directory.",
		Long: heredoc.Doc(`
			This command shows the git status of your notes directory and how many
			commits are waiting to be pushed, then asks before it stages every
			change, commits and pushes to the upstream branch.

			Pushing uses the git executable so your credential helpers and ssh
			agent apply.
		`),
		Example: "keepnote sync --yes -m \"weekly notes\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, s, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation.")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Commit message (default \"Sync notes <date>\").")
	cmd.Flags().BoolVar(&opts.NoPush, "no-push", false, "Commit without pushing.")
	return cmd
}

// Run commits pending changes and pushes them.
func Run(cmd *cobra.Command, s *state.State, opts Options) error {
	repo, err := vcs.Open(s.Notes)
	if errors.Is(err, vcs.ErrNotRepository) {
		cmd.Println(color.RedString("Error: Not a git repository"))
		cmd.Println()
		cmd.Println(vcs.InitHint)
		return err
	}
	if err != nil {
		return err
	}

	status, err := repo.Status()
	if err != nil {
		return fmt.Errorf("failed to read git status: %w", err)
	}
	clean := status.IsClean()

	out := cmd.OutOrStdout()
	if clean {
		fmt.Fprintf(out, "%s %s\n\n", bold("Git status:"), green("clean"))
	} else {
		fmt.Fprintln(out, bold("Git status:"))
		fmt.Fprintf(out, "%s\n\n", yellow(strings.TrimRight(status.String(), "\n")))
	}

	ahead, tracked, err := repo.Ahead()
	if err != nil {
		s.Logger.Debug("failed to count unpushed commits", "err", err)
		tracked = false
	}
	switch {
	case !tracked:
		fmt.Fprintf(out, "%s %s\n\n", bold("Push pending:"), yellow("N/A (no upstream branch)"))
	case ahead > 0:
		fmt.Fprintf(out, "%s %s\n\n", bold("Push pending:"), yellow(plural(ahead, "commit")))
	default:
		fmt.Fprintf(out, "%s %s\n\n", bold("Push pending:"), green("none"))
	}

	willPush := !opts.NoPush && tracked
	if clean && (!willPush || ahead == 0) {
		fmt.Fprintln(out, "Nothing to sync.")
		return nil
	}

	if !opts.Yes {
		ok, err := confirm(prompt(clean, willPush))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	if !clean {
		message := opts.Message
		if message == "" {
			message = "Sync notes " + time.Now().Format("2006-01-02 15:04")
		}
		hash, err := repo.CommitAll(message)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Committed %s %s\n", hash.String()[:7], message)
	}

	if !willPush {
		if !opts.NoPush {
			fmt.Fprintln(out, "No upstream branch; skipping push.")
		}
		return nil
	}
	if err := push(cmd.Context(), s.Notes, out, cmd.ErrOrStderr()); err != nil {
		return err
	}
	fmt.Fprintln(out, green("Notes synced."))
	return nil
}

func prompt(clean, willPush bool) string {
	switch {
	case clean:
		return "Push commits?"
	case willPush:
		return "Commit all changes and push?"
	default:
		return "Commit all changes?"
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
