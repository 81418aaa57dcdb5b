package arg

import (
	"fmt"
	"strings"
)

// HandleTitle joins the words of a title argument list.
func HandleTitle(args []string) (string, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return "", fmt.Errorf("error: No title given. Try again with 'keepnote new [title]'")
	}
	return title, nil
}
