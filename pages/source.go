package pages

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/glyphtab/format"
)

// Source provides page descriptions by 0-based page index.
type Source interface {
	// Name identifies the document, e.g. its path
	Name() string

	// PageCount returns the number of pages in the document
	PageCount(ctx context.Context) (int, error)

	// Description returns the SVG description of one page
	Description(ctx context.Context, index int) (string, error)
}

// Open returns a DirSource for a directory of exported pages and a
// CommandSource for a PDF. Other files are rejected.
func Open(input string) (Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", input, err)
	}
	if info.IsDir() {
		return NewDirSource(input), nil
	}

	f, err := format.DetectFile(input)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", input, err)
	}
	switch f {
	case format.PDF:
		return NewCommandSource(input), nil
	case format.SVG:
		return nil, fmt.Errorf("%s: single page description; export all pages into a directory", input)
	default:
		return nil, fmt.Errorf("%s: unsupported input format %s", input, f)
	}
}

// MemorySource serves page descriptions held in memory.
type MemorySource struct {
	name  string
	pages []string
}

// NewMemorySource creates a source whose page i is descriptions[i].
func NewMemorySource(name string, descriptions ...string) *MemorySource {
	return &MemorySource{
		name:  name,
		pages: append([]string(nil), descriptions...),
	}
}

// Add appends a page.
func (s *MemorySource) Add(description string) {
	s.pages = append(s.pages, description)
}

// Name returns the name given at construction.
func (s *MemorySource) Name() string {
	return s.name
}

// PageCount returns the number of pages added.
func (s *MemorySource) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.pages), nil
}

// Description returns page index.
func (s *MemorySource) Description(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 || index >= len(s.pages) {
		return "", fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(s.pages))
	}
	return s.pages[index], nil
}
