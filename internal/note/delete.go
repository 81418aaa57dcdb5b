package note

import (
	"fmt"
	"io"
	"os"

	"github.com/erikgeiser/promptkit/confirmation"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/handler"
	"github.com/Paintersrp/keepnote/internal/pathutil"
)

// Confirm asks a yes/no question on the terminal, defaulting to no.
func Confirm(prompt string) (bool, error) {
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

// Deleter removes notes named relative to the notes root.
type Deleter struct {
	Root    string
	Mode    config.DeleteMode
	Confirm func(prompt string) (bool, error)
	Out     io.Writer
}

// Delete asks for confirmation, then trashes or removes the note. Names
// that resolve outside the root are refused with pathutil.ErrOutsideRoot.
func (d Deleter) Delete(name string) error {
	path, err := pathutil.Resolve(d.Root, name)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a note file: %s", path)
	}

	prompt := fmt.Sprintf("Move %s to trash?", name)
	if d.Mode == config.DeleteRemove {
		prompt = fmt.Sprintf("Delete %s?", name)
	}

	confirm := d.Confirm
	if confirm == nil {
		confirm = Confirm
	}
	ok, err := confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(d.Out, "Cancelled")
		return nil
	}

	h := handler.NewFileHandler(d.Root)
	if d.Mode == config.DeleteRemove {
		if err := h.Remove(path); err != nil {
			return fmt.Errorf("error deleting file: %w", err)
		}
		fmt.Fprintf(d.Out, "Deleted: %s\n", name)
		return nil
	}

	trashed, err := h.Trash(path)
	if err != nil {
		return fmt.Errorf("error moving file to trash: %w", err)
	}
	rel, err := pathutil.Relative(d.Root, trashed)
	if err != nil {
		rel = trashed
	}
	fmt.Fprintf(d.Out, "Moved to trash: %s\n", rel)
	return nil
}
