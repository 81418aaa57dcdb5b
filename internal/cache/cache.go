// Package cache keeps rendered note previews so returning to a note in the
// picker does not render it again.
package cache

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderFunc renders note content for a preview pane width.
type RenderFunc func(content []byte, width int) (string, error)

type key struct {
	path    string
	width   int
	modTime time.Time
	size    int64
}

// Previews is safe for concurrent use.
type Previews struct {
	entries *lru.Cache[key, string]
	render  RenderFunc
}

func New(size int, render RenderFunc) (*Previews, error) {
	entries, err := lru.New[key, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &Previews{entries: entries, render: render}, nil
}

// Get returns the rendered preview of path at width. A note that changed on
// disk since it was cached is rendered again.
func (p *Previews) Get(path string, width int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	k := key{path: path, width: width, modTime: info.ModTime(), size: info.Size()}
	if out, ok := p.entries.Get(k); ok {
		return out, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	out, err := p.render(content, width)
	if err != nil {
		return "", err
	}
	p.entries.Add(k, out)
	return out, nil
}

// Len returns the number of cached previews.
func (p *Previews) Len() int {
	return p.entries.Len()
}
