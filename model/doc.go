// Package model defines the data passed between the stages of chart
// reconstruction.
//
// A page description is parsed into [Instruction] values and a
// [GlyphPathDictionary]. Classification turns instructions into three record
// streams:
//
//   - [SourceRecord] - transliteration runs
//   - [CodeRecord] - hexadecimal code labels
//   - [GraphRecord] - the chart glyphs themselves
//
// Grid reconstruction measures the streams against [Interval] bands derived
// from the code labels and produces [TableRow] values for the spreadsheet.
//
// # Geometry
//
//   - [Point] - 2D point with distance calculation
//   - [Matrix] - 2D affine transformation matrix; ScaleX carries the band signature
//
// # Ranges
//
// [Range] bounds page indices and codepoints. Each end is [Unbounded],
// [Included] or [Excluded]; [Range.Clamp] resolves it against the valid limits:
//
//	r, _ := model.ParseRange[rune]("0x4E00..=0x9FFF")
//	lo, hi, ok := r.Clamp(0, unicode.MaxRune)
package model
