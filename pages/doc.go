// Package pages supplies the vector description of each page of a chart
// document.
//
// A [Source] numbers pages from 0 and returns each page as an SVG fragment
// with glyph outlines in its definitions and one use element per drawn
// character. Three sources are provided:
//
//   - [DirSource] reads pages exported beforehand, one file per page
//   - [CommandSource] runs an external vectorizer such as mutool per page
//   - [MemorySource] serves descriptions held in memory
//
// Sources honour the context passed to them; a [CommandSource] kills the
// vectorizer when the context is cancelled.
//
//	src := pages.NewCommandSource("U4E00.pdf")
//	n, err := src.PageCount(ctx)
//	svg, err := src.Description(ctx, 1)
package pages

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// ErrPageOutOfRange is returned for a page index outside [0, PageCount).
var ErrPageOutOfRange = errors.New("pages: page index out of range")

// tracer traces with key 'glyphtab.pages'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.pages")
}
