package pages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPattern names exported page files by 0-based index.
const DefaultPattern = "page-%03d.svg"

// DirSource reads pages exported to a directory, one SVG file per page.
// The page count is the length of the run of files starting at index 0.
type DirSource struct {
	dir     string
	pattern string
}

// NewDirSource creates a source for dir using DefaultPattern.
func NewDirSource(dir string) *DirSource {
	return NewDirSourceWithPattern(dir, DefaultPattern)
}

// NewDirSourceWithPattern creates a source for dir. pattern is a format
// string taking the page index, e.g. "p%d.svg".
func NewDirSourceWithPattern(dir, pattern string) *DirSource {
	return &DirSource{dir: dir, pattern: pattern}
}

// Name returns the directory.
func (s *DirSource) Name() string {
	return s.dir
}

func (s *DirSource) path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, index))
}

// PageCount counts consecutive page files from index 0.
func (s *DirSource) PageCount(ctx context.Context) (int, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return 0, fmt.Errorf("page directory: %w", err)
	}

	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		_, err := os.Stat(s.path(n))
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return 0, err
		}
		n++
	}
	tracer().Debugf("%s: %d page files", s.dir, n)
	return n, nil
}

// Description reads the file of page index.
func (s *DirSource) Description(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 {
		return "", fmt.Errorf("%w: %d", ErrPageOutOfRange, index)
	}
	data, err := os.ReadFile(s.path(index))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %d (%s)", ErrPageOutOfRange, index, s.path(index))
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
