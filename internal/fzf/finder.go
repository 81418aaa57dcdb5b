package fzf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/keepnote/internal/cache"
	"github.com/Paintersrp/keepnote/internal/handler"
	"github.com/Paintersrp/keepnote/internal/preview"
)

// previewCacheSize is how many rendered previews the picker keeps.
const previewCacheSize = 64

// ErrNoSelection is returned when the in-process finder is aborted.
var ErrNoSelection = errors.New("no file selected")

// FuzzyFinder is the in-process note picker used when an external fzf is
// not wanted.
type FuzzyFinder struct {
	handler  *handler.FileHandler
	previews *cache.Previews
	root     string
	Header   string
	files    []string
}

func NewFuzzyFinder(root, header string) *FuzzyFinder {
	h := handler.NewFileHandler(root)
	return &FuzzyFinder{root: root, Header: header, handler: h}
}

// Run lists the notes under the root and returns the chosen path.
func (f *FuzzyFinder) Run(query string) (string, error) {
	files, err := f.handler.WalkFiles()
	if err != nil {
		return "", fmt.Errorf("error listing files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no notes found in %s", f.root)
	}
	f.files = files

	if f.previews == nil {
		previews, err := cache.New(previewCacheSize, preview.Markdown)
		if err != nil {
			return "", err
		}
		f.previews = previews
	}

	idx, err := f.fuzzySelectFile(query)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", err
	}

	return f.files[idx], nil
}

// fuzzySelectFile performs fuzzy selection on files based on query
func (f *FuzzyFinder) fuzzySelectFile(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, len(f.files))
	for i, file := range f.files {
		labels[i] = f.label(file)
	}

	return fuzzyfinder.Find(f.files, func(i int) string {
		return labels[i]
	}, options...)
}

// label shows the path relative to the root and the note's title when it
// has one.
func (f *FuzzyFinder) label(path string) string {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}

	title := Title(path)
	if title == "" {
		return rel
	}
	return fmt.Sprintf("%s [%s]", rel, title)
}

// Title returns the text of the first "# " heading in the first lines of a
// note.
func Title(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for i := 0; i < 5 && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}

func (f *FuzzyFinder) renderMarkdownPreview(
	i, w, h int,
) string {
	if i == -1 {
		return ""
	}

	markdown, err := f.previews.Get(f.files[i], max(20, w-4))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
