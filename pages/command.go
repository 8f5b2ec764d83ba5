package pages

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Placeholders substituted in CommandConfig.Args.
const (
	PlaceholderInput = "{input}" // document path
	PlaceholderPage  = "{page}"  // 1-based page number
	PlaceholderOut   = "{out}"   // file the vectorizer must write
)

// CommandConfig describes the external vectorizer
type CommandConfig struct {
	// Program is the executable to run (default: "mutool")
	Program string

	// Args are passed to Program after placeholder substitution
	// (default: draw -q -F svg -O text=path -o {out} {input} {page})
	Args []string

	// TempDir holds the per-page output files. Empty means os.TempDir()
	TempDir string

	// PageCounter overrides how the page count is obtained. Nil reads the
	// document with pdfcpu
	PageCounter func(ctx context.Context, input string) (int, error)
}

// DefaultCommandConfig renders pages with MuPDF, text drawn as glyph uses.
func DefaultCommandConfig() CommandConfig {
	return CommandConfig{
		Program: "mutool",
		Args: []string{
			"draw", "-q", "-F", "svg", "-O", "text=path",
			"-o", PlaceholderOut, PlaceholderInput, PlaceholderPage,
		},
	}
}

// CommandSource vectorizes the pages of a PDF with an external program.
type CommandSource struct {
	input  string
	config CommandConfig
}

// NewCommandSource creates a source for input with default configuration
func NewCommandSource(input string) *CommandSource {
	return NewCommandSourceWithConfig(input, DefaultCommandConfig())
}

// NewCommandSourceWithConfig creates a source for input with custom configuration
func NewCommandSourceWithConfig(input string, config CommandConfig) *CommandSource {
	return &CommandSource{input: input, config: config}
}

// Name returns the document path.
func (s *CommandSource) Name() string {
	return s.input
}

// PageCount returns the number of pages of the document.
func (s *CommandSource) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.config.PageCounter != nil {
		return s.config.PageCounter(ctx, s.input)
	}
	return pdfPageCount(s.input)
}

var disablePDFConfig sync.Once

// pdfPageCount reads the page tree with pdfcpu.
func pdfPageCount(input string) (int, error) {
	// keep pdfcpu from creating a configuration directory
	disablePDFConfig.Do(func() { model.ConfigPath = "disable" })

	n, err := api.PageCountFile(input)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", input, err)
	}
	return n, nil
}

// Description runs the vectorizer for page index and returns what it wrote.
func (s *CommandSource) Description(ctx context.Context, index int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if index < 0 {
		return "", fmt.Errorf("%w: %d", ErrPageOutOfRange, index)
	}

	dir, err := os.MkdirTemp(s.config.TempDir, "glyphtab-page-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "page.svg")
	args := s.args(out, index)

	cmd := exec.CommandContext(ctx, s.config.Program, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	tracer().Debugf("running %s %s", s.config.Program, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		return "", fmt.Errorf("vectorizing page %d of %s: %w: %s", index, s.input, err, msg)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("vectorizer wrote no output for page %d: %w", index, err)
	}
	return string(data), nil
}

func (s *CommandSource) args(out string, index int) []string {
	r := strings.NewReplacer(
		PlaceholderInput, s.input,
		PlaceholderPage, strconv.Itoa(index+1),
		PlaceholderOut, out,
	)
	args := make([]string, len(s.config.Args))
	for i, a := range s.config.Args {
		args[i] = r.Replace(a)
	}
	return args
}
