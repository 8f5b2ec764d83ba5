package glyphtab

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal observation made during conversion.
type WarningCode int

const (
	// WarnRowTooWide marks a row with more cells than the column limit.
	// The extra cells are written outside the bordered block.
	WarnRowTooWide WarningCode = iota

	// WarnEmptyPage marks a selected page without any code label.
	WarnEmptyPage

	// WarnNoPages means the page range selected nothing.
	WarnNoPages

	// WarnGlyphMismatch marks a glyph that OCR read as another character.
	WarnGlyphMismatch

	// WarnOCRFailed marks a glyph the recognizer could not process.
	WarnOCRFailed
)

// String returns a short name for the code
func (c WarningCode) String() string {
	switch c {
	case WarnRowTooWide:
		return "row-too-wide"
	case WarnEmptyPage:
		return "empty-page"
	case WarnNoPages:
		return "no-pages"
	case WarnGlyphMismatch:
		return "glyph-mismatch"
	case WarnOCRFailed:
		return "ocr-failed"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal issue; the workbook is still written.
type Warning struct {
	Code    WarningCode
	Page    int // 0-based page index, -1 for the whole document
	Message string
}

func (w Warning) String() string {
	if w.Page < 0 {
		return fmt.Sprintf("[%s] %s", w.Code, w.Message)
	}
	return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
}

// FormatWarnings joins warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
