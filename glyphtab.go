// Package glyphtab rebuilds glyph code charts as spreadsheets.
//
// A chart document shows, on every page, rows of rendered glyphs with a
// transliteration below each glyph and a hexadecimal code label in front of
// each row. The page carries no table structure, only positioned characters.
// glyphtab recovers the rows from the positions and writes one bordered
// block per code label, with the glyphs embedded as images.
//
// Basic usage:
//
//	warnings, err := glyphtab.Open("U4E00.pdf").Convert(ctx, "basic.xlsx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", glyphtab.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := glyphtab.Open("U20000.pdf").
//	    Codepoints(model.InclusiveRange[rune](0x20000, 0x2A6DF)).
//	    PerSheet(50).
//	    Rasterizer(glyph.NewFreetypeRasterizer()).
//	    Convert(ctx, "ext-b.xlsx")
//
// The first page of a chart explains the notation and is never converted.
//
// The lower-level packages (pagedesc, streams, layout, tables, glyph, xlsx)
// can be used on their own.
package glyphtab

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/tsawler/glyphtab/pages"
)

// tracer traces with key 'glyphtab.pipeline'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.pipeline")
}

// Open returns a Converter for a chart document. input is a PDF, rendered
// with an external vectorizer, or a directory of exported page files; see
// pages.Open. Nothing is read until a terminal operation runs.
//
// Example:
//
//	warnings, err := glyphtab.Open("U4E00.pdf").Convert(ctx, "basic.xlsx")
func Open(input string) *Converter {
	return &Converter{
		input:   input,
		options: defaultOptions(),
	}
}

// FromSource returns a Converter reading pages from src.
//
// Example:
//
//	src := pages.NewDirSource("svg/U4E00")
//	warnings, err := glyphtab.FromSource(src).Convert(ctx, "basic.xlsx")
func FromSource(src pages.Source) *Converter {
	return &Converter{
		input:   src.Name(),
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := glyphtab.Must(glyphtab.Open("U4E00.pdf").PageCount(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
