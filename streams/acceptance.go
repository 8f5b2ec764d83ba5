package streams

import (
	"unicode"

	"github.com/tsawler/glyphtab/model"
	"golang.org/x/text/unicode/rangetable"
)

// chartBlocks lists the blocks whose characters are always treated as chart
// glyphs: Bopomofo, the CJK ideograph blocks with all extensions, radicals,
// strokes, ideographic description characters and the private use areas.
var chartBlocks = [][2]rune{
	{0x3100, 0x312F},     // Bopomofo
	{0x31A0, 0x31BF},     // Bopomofo Extended
	{0x4E00, 0x9FFF},     // CJK Unified Ideographs
	{0x3400, 0x4DBF},     // Extension A
	{0x20000, 0x2A6DF},   // Extension B
	{0x2A700, 0x2B73F},   // Extension C
	{0x2B740, 0x2B81F},   // Extension D
	{0x2B820, 0x2CEAF},   // Extension E
	{0x2CEB0, 0x2EBEF},   // Extension F
	{0x30000, 0x3134F},   // Extension G
	{0x31350, 0x323AF},   // Extension H
	{0xF900, 0xFAFF},     // CJK Compatibility Ideographs
	{0x2F800, 0x2FA1F},   // Compatibility Ideographs Supplement
	{0x2F00, 0x2FDF},     // Kangxi Radicals
	{0x2E80, 0x2EFF},     // CJK Radicals Supplement
	{0x31C0, 0x31EF},     // CJK Strokes
	{0x2FF0, 0x2FFF},     // Ideographic Description Characters
	{0xE000, 0xF8FF},     // Private Use Area
	{0xF0000, 0xFFFFD},   // Supplementary Private Use Area-A
	{0x100000, 0x10FFFD}, // Supplementary Private Use Area-B
}

// Acceptance builds the set of characters accepted as chart glyphs: the fixed
// chart blocks merged with the caller's codepoint range. An empty range adds
// nothing.
func Acceptance(extra model.Range[rune]) *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(chartBlocks)+1)
	for _, b := range chartBlocks {
		tables = append(tables, spanTable(b[0], b[1]))
	}
	if lo, hi, ok := extra.Clamp(0, unicode.MaxRune); ok {
		tables = append(tables, spanTable(lo, hi))
	}
	return rangetable.Merge(tables...)
}

// spanTable returns a table holding lo..=hi, split between the 16 and 32 bit
// sections as unicode.Is expects.
func spanTable(lo, hi rune) *unicode.RangeTable {
	rt := &unicode.RangeTable{}
	if lo <= 0xFFFF {
		top := hi
		if top > 0xFFFF {
			top = 0xFFFF
		}
		rt.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(top), Stride: 1}}
		if top <= unicode.MaxLatin1 {
			rt.LatinOffset = 1
		}
		lo = 0x10000
	}
	if hi >= lo {
		rt.R32 = []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}
	}
	return rt
}
