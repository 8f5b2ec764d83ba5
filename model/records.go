package model

import (
	"fmt"
	"image"
	"math"
)

// Instruction is one positioned character use taken from a page description.
type Instruction struct {
	// Text is the decoded character(s) of the use element
	Text string

	// GlyphRef is the id of the glyph path the use element references
	GlyphRef string

	// Transform places and scales the glyph on the page
	Transform Matrix
}

// GlyphPathDictionary maps a glyph id to its path data. It is built once per
// page and only read afterwards.
type GlyphPathDictionary map[string]string

// SourceRecord is a run of transliteration characters sharing a baseline.
type SourceRecord struct {
	Text string
	XMin float64
	XMax float64
	Y    float64
}

// CodeRecord is a run of hexadecimal digits naming a codepoint.
type CodeRecord struct {
	Codepoint rune
	XMin      float64
	XMax      float64
	Y         float64
}

// Hex returns the codepoint as uppercase hexadecimal without prefix, e.g. "4E00".
func (c CodeRecord) Hex() string {
	return fmt.Sprintf("%X", c.Codepoint)
}

// GraphRecord is a single rendered chart glyph. Path is borrowed from the
// page's GlyphPathDictionary and must not outlive the page.
type GraphRecord struct {
	Character rune
	Path      string
	X         float64
	Y         float64
}

// Interval is an open band (Start, End) on one axis. The last interval of a
// derivation ends at +Inf.
type Interval struct {
	Start float64
	End   float64
}

// Contains reports whether v lies strictly inside the interval.
func (iv Interval) Contains(v float64) bool {
	return v > iv.Start && v < iv.End
}

// IsOpenEnded reports whether the interval extends to +Inf.
func (iv Interval) IsOpenEnded() bool {
	return math.IsInf(iv.End, 1)
}

// Cell is one data column of a table row: the transliteration text and the
// rasterized glyph drawn above it.
type Cell struct {
	SourceText string
	Glyph      *image.Gray
}

// TableRow is one logical output row keyed by its code label.
type TableRow struct {
	CodeHex string
	Cells   []Cell
}
