package preview

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Builtin renders without external tools. Markdown files opened without a
// line are rendered with glamour; everything else is printed with line
// numbers and the requested line highlighted.
type Builtin struct {
	Context int
	Width   int
}

func (b *Builtin) width() int {
	if b.Width > 0 {
		return b.Width
	}
	if cols, err := strconv.Atoi(os.Getenv("FZF_PREVIEW_COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return 80
}

// Render writes the preview of path to w.
func (b *Builtin) Render(_ context.Context, w io.Writer, path string, line int) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if line == 0 && strings.EqualFold(filepath.Ext(path), ".md") {
		if out, err := Markdown(content, b.width()); err == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}

	return b.renderLines(w, content, line)
}

// Markdown renders a note for a terminal of the given width.
func Markdown(content []byte, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", err
	}
	return r.Render(string(content))
}

func (b *Builtin) renderLines(w io.Writer, content []byte, line int) error {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)

	number := renderer.NewStyle().Foreground(lipgloss.Color("8"))
	highlight := renderer.NewStyle().Background(lipgloss.Color("237")).Bold(true)

	start := 1
	if line > 0 && b.Context > 0 {
		start = max(1, line-b.Context)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	digits := len(strconv.Itoa(len(lines)))
	bw := bufio.NewWriter(w)
	for i := start - 1; i < len(lines); i++ {
		n := number.Render(fmt.Sprintf("%*d", digits, i+1))
		text := lines[i]
		if i+1 == line {
			text = highlight.Render(text)
		}
		fmt.Fprintf(bw, "%s  %s\n", n, text)
	}
	return bw.Flush()
}
