// Package note creates, opens and deletes note files.
package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// CursorLine is where the editor cursor lands in a new note: the first line
// after the title and a blank line.
const CursorLine = 4

// DateLayout prefixes every new note file name.
const DateLayout = "2006-01-02"

// ErrExists is returned when the file for a new note is already there.
var ErrExists = errors.New("note already exists")

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashes       = regexp.MustCompile(`-+`)
)

// reservedNames cannot be used as file names on Windows.
var reservedNames = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[1-9]|lpt[1-9])$`)

// Slug turns a title into a file name fragment: characters that are invalid
// in file names and runs of whitespace become single dashes, and leading or
// trailing dashes and dots are trimmed.
func Slug(title string) string {
	s := invalidChars.ReplaceAllString(title, "-")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")
	if reservedNames.MatchString(s) {
		s += "-"
	}
	return s
}

// Filename returns "<date>_<slug>.md".
func Filename(title string, date time.Time) string {
	return date.Format(DateLayout) + "_" + Slug(title) + ".md"
}

// Content is the initial text of a note: a heading, a blank line and body.
func Content(title, body string) string {
	return "# " + title + "\n\n" + body + "\n"
}

// Create writes a new note for title under root and returns its path. An
// existing file is never overwritten.
func Create(root, title string, date time.Time, body string) (string, error) {
	title = strings.TrimSpace(title)
	if Slug(title) == "" {
		return "", fmt.Errorf("title %q has no usable characters", title)
	}

	path := filepath.Join(root, Filename(title, date))

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return "", err
	}

	if _, err := file.WriteString(Content(title, body)); err != nil {
		file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write to file: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}
