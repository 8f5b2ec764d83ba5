// Package streams splits the character uses of a chart page into three
// streams by their horizontal scale.
//
// The chart renderer draws each kind of content at a fixed scale:
//
//   - transliteration text at [SourceScale]
//   - hexadecimal code labels at [CodeScale]
//   - the chart glyphs themselves at any larger scale
//
// Characters on one baseline are joined into runs with the layout package.
// Glyphs are additionally filtered by an acceptance set built from the CJK,
// Bopomofo and private use blocks and a caller supplied codepoint range.
package streams

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'glyphtab.streams'
func tracer() tracing.Trace {
	return tracing.Select("glyphtab.streams")
}
