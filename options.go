package glyphtab

import (
	"github.com/tsawler/glyphtab/glyph"
	"github.com/tsawler/glyphtab/model"
	"github.com/tsawler/glyphtab/ocr"
	"github.com/tsawler/glyphtab/streams"
	"github.com/tsawler/glyphtab/tables"
	"github.com/tsawler/glyphtab/xlsx"
)

// DefaultPagesPerSheet is the number of pages written to one worksheet.
const DefaultPagesPerSheet = 100

// Progress describes a finished page.
type Progress struct {
	Page  int // 0-based page index
	Done  int // pages finished so far
	Total int // pages selected
	Rows  int // rows written for the page
	Sheet int // 0-based worksheet the rows went to
}

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Page and glyph selection
	pages      model.Range[int]
	codepoints model.Range[rune]

	// Workbook layout
	perSheet int
	workbook xlsx.Config

	// Pipeline stages
	classifier streams.Config
	tables     tables.Config
	detector   tables.Detector
	rasterizer glyph.Rasterizer
	verifier   ocr.Recognizer

	onPage func(Progress)
}

// defaultOptions selects every page and no extra codepoints.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		pages:      model.FullRange[int](),
		codepoints: model.HalfOpenRange[rune](0, 0),
		perSheet:   DefaultPagesPerSheet,
		workbook:   xlsx.DefaultConfig(),
		classifier: streams.DefaultConfig(),
		tables:     tables.DefaultConfig(),
	}
}
