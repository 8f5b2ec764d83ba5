// Package tables rebuilds the implicit grid of a code chart page.
//
// A chart page has no drawn table structure. Its layout is recovered from
// the classified streams of the streams package: the code labels mark the
// top-left corner of every entry, each rendered glyph sits above its
// transliteration, and entries are arranged in columns.
//
// # Correlation
//
// [Correlate] assigns items to open intervals derived from the code label
// positions. Items beyond every interval go to an overflow bucket, which the
// detector folds into the last row of the column:
//
//	buckets := tables.Correlate(pairs, x, intervals)
//
// # Chart Detection
//
// The [ChartDetector] works in two passes:
//
//  1. Glyphs and transliterations are sorted into reading order, split into
//     row bands, checked against each other and paired by position.
//  2. Code labels define the columns; the pairs of every column are then
//     assigned to the rows of that column's labels.
//
// The n-th label of a column always receives the n-th band, so a label
// without any glyph yields an empty [Row] instead of shifting later rows.
//
// # Configuration
//
// Tolerances are controlled by [Config]:
//
//	detector := tables.NewChartDetector()
//	config := tables.DefaultConfig()
//	config.RowGap = 12
//	detector.Configure(config)
package tables
