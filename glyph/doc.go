// Package glyph renders single glyph outlines to small bitmaps.
//
// Outlines arrive as SVG path data taken from the definitions region of a
// page description. [ParsePath] turns the data into a [Path] of absolute
// move, line, quadratic, cubic and close segments.
//
// A [Rasterizer] scales a path by [Config].EmSize, flips it into image
// orientation and centres it on a square white bitmap:
//
//	r := glyph.NewVectorRasterizer()
//	img, err := r.Rasterize("M .1 .1 L .9 .1 L .5 .9 Z")
//	data, err := glyph.EncodePNG(img)
//
// Two implementations are provided. [VectorRasterizer] uses
// golang.org/x/image/vector and is the default. [FreetypeRasterizer] uses
// the scan converter of github.com/golang/freetype with non-zero winding.
package glyph
