// Package selection decodes the lines exchanged between ripgrep, fzf and
// keepnote.
//
// A selection line has the form
//
//	<filename>[<delim><line number>][<delim><content>]
//
// where the delimiter defaults to "//". A line with a single field comes from
// a file listing; two or more fields come from a content search, and only the
// first two are authoritative since the content may contain the delimiter.
package selection

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// DefaultDelimiter separates the fields of a selection line. It cannot occur
// inside a file name, so changing it breaks every producer and consumer.
const DefaultDelimiter = "//"

var (
	// ErrInvalidSelectionFormat is returned when a line has no fields at all.
	ErrInvalidSelectionFormat = errors.New("invalid selection format")

	// ErrNonIntegerLineNumber is returned when the line number field of a
	// content match is not a positive integer.
	ErrNonIntegerLineNumber = errors.New("line number is not a positive integer")
)

// Selection is a decoded selection line.
type Selection struct {
	Filename   string
	LineNumber int
	Filepath   string
}

// Codec decodes selection lines for one delimiter.
type Codec struct {
	Delimiter string
}

// NewCodec returns a codec for delimiter, falling back to DefaultDelimiter
// when it is empty.
func NewCodec(delimiter string) Codec {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return Codec{Delimiter: delimiter}
}

// Decode parses line with the default delimiter.
func Decode(line, root string) (Selection, error) {
	return NewCodec(DefaultDelimiter).Decode(line, root)
}

// Decode parses one selection line and resolves its file against root.
// Colour escapes left by the searcher are ignored. The filename is joined to
// root as is; callers that act on the path check containment themselves.
func (c Codec) Decode(line, root string) (Selection, error) {
	line = strings.TrimRight(stripansi.Strip(line), "\r\n")
	if line == "" {
		return Selection{}, ErrInvalidSelectionFormat
	}

	delim := c.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	parts := strings.SplitN(line, delim, 3)
	filename := strings.TrimPrefix(parts[0], "./")
	if filename == "" {
		return Selection{}, fmt.Errorf("%w: %q has no filename", ErrInvalidSelectionFormat, line)
	}

	lineNumber := 1
	if len(parts) >= 2 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || n < 1 {
			return Selection{}, fmt.Errorf("%w: %q", ErrNonIntegerLineNumber, parts[1])
		}
		lineNumber = n
	}

	return Selection{
		Filename:   filename,
		LineNumber: lineNumber,
		Filepath:   filepath.Join(root, filename),
	}, nil
}

// Encode renders a selection back into its wire form without content. It is
// the format ripgrep produces with --field-match-separator.
func (c Codec) Encode(s Selection, withLine bool) string {
	if !withLine {
		return s.Filename
	}
	return s.Filename + c.Delimiter + strconv.Itoa(s.LineNumber)
}
