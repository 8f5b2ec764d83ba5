package streams

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/glyphtab/model"
)

func use(text, ref string, scale, x, y float64) model.Instruction {
	return model.Instruction{
		Text:      text,
		GlyphRef:  ref,
		Transform: model.Matrix{scale, 0, 0, -scale, x, y},
	}
}

func noExtra() model.Range[rune] {
	return model.HalfOpenRange[rune](0, 0)
}

func TestSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphtab.streams")
	defer teardown()

	c := NewClassifier(noExtra())
	instrs := []model.Instruction{
		use("z", "g", SourceScale, 10, 100),
		use("h", "g", SourceScale, 14, 100),
		use("i", "g", SourceScale, 18, 100),
		use("1", "g", SourceScale, 60, 100), // starts with a digit
		use("y", "g", SourceScale, 80, 100),
		use("x", "g", 7.0, 90, 100), // wrong scale
	}

	got := c.Sources(instrs)

	require.Len(t, got, 2)
	assert.Equal(t, model.SourceRecord{Text: "zhi", XMin: 10, XMax: 18, Y: 100}, got[0])
	assert.Equal(t, "y", got[1].Text)
}

func TestSources_NFC(t *testing.T) {
	c := NewClassifier(noExtra())
	// "a" followed by a combining macron
	instrs := []model.Instruction{
		use("a", "g", SourceScale, 0, 0),
		use("\u0304", "g", SourceScale, 3, 0),
	}

	got := c.Sources(instrs)

	require.Len(t, got, 1)
	assert.Equal(t, "\u0101", got[0].Text)

	cfg := DefaultConfig()
	cfg.NormalizeSource = false
	raw := NewClassifierWithConfig(cfg, noExtra()).Sources(instrs)
	require.Len(t, raw, 1)
	assert.Equal(t, "a\u0304", raw[0].Text)
}

func TestCodes(t *testing.T) {
	c := NewClassifier(noExtra())
	instrs := []model.Instruction{
		use("4", "g", CodeScale, 10, 200),
		use("E", "g", CodeScale, 16, 200),
		use("0", "g", CodeScale, 22, 200),
		use("0", "g", CodeScale, 28, 200),
		use("1", "g", CodeScale, 100, 200), // short run
		use("2", "g", CodeScale, 106, 200),
	}

	got, err := c.Codes(instrs)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rune(0x4E00), got[0].Codepoint)
	assert.Equal(t, "4E00", got[0].Hex())
	assert.Equal(t, 10.0, got[0].XMin)
	assert.Equal(t, 28.0, got[0].XMax)
}

func TestCodes_Invalid(t *testing.T) {
	c := NewClassifier(noExtra())

	for _, label := range []string{"ZZZZ", "D800", "110000"} {
		var instrs []model.Instruction
		for i, r := range label {
			instrs = append(instrs, use(string(r), "g", CodeScale, float64(i*5), 0))
		}
		_, err := c.Codes(instrs)
		assert.ErrorIs(t, err, model.ErrInvalidCodepoint, label)
	}
}

func TestGraphs(t *testing.T) {
	c := NewClassifier(noExtra())
	glyphs := model.GlyphPathDictionary{"g1": "M 0 0 L 1 1 Z", "g2": "M 1 1 L 2 2 Z"}
	instrs := []model.Instruction{
		use("一", "g1", 24, 50, 60),
		// not accepted
		use("A", "g2", 24, 90, 60),
		// drawn at source scale
		use("丁", "g2", 6, 120, 60),
		// private use area
		use("\ue000", "g2", 24, 150, 60),
		use("", "g2", 24, 180, 60),
	}

	got, err := c.Graphs(instrs, glyphs)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.GraphRecord{Character: '一', Path: "M 0 0 L 1 1 Z", X: 50, Y: 60}, got[0])
	assert.Equal(t, '\ue000', got[1].Character)
}

func TestGraphs_CallerRange(t *testing.T) {
	c := NewClassifier(model.InclusiveRange[rune]('A', 'Z'))
	glyphs := model.GlyphPathDictionary{"g": "M 0 0"}

	got, err := c.Graphs([]model.Instruction{use("A", "g", 24, 0, 0)}, glyphs)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, c.Accepts('Q'))
	assert.False(t, c.Accepts('a'))
}

func TestGraphs_MissingGlyph(t *testing.T) {
	c := NewClassifier(noExtra())

	_, err := c.Graphs([]model.Instruction{use("一", "nope", 24, 0, 0)}, model.GlyphPathDictionary{})

	assert.ErrorIs(t, err, model.ErrMalformedDescription)
}

func TestAcceptance(t *testing.T) {
	rt := Acceptance(noExtra())
	c := &Classifier{acceptance: rt}

	for _, r := range []rune{0x3100, 0x4E00, 0x9FFF, 0x20000, 0x323AF, 0xE000, 0x10FFFD, 0x2FF0} {
		assert.True(t, c.Accepts(r), "%U should be accepted", r)
	}
	for _, r := range []rune{'a', 0x3041, 0xAC00, 0x2A6E0, 0xFFFFE} {
		assert.False(t, c.Accepts(r), "%U should not be accepted", r)
	}
}

func TestAcceptance_RangeAcrossPlanes(t *testing.T) {
	c := &Classifier{acceptance: Acceptance(model.InclusiveRange[rune](0xFFF0, 0x10010))}

	assert.True(t, c.Accepts(0xFFF5))
	assert.True(t, c.Accepts(0x10005))
	assert.False(t, c.Accepts(0x10011))
}

// A page with two transliterations sharing one code row yields two sources,
// two graphs and one code record.
func TestClassify_TwoSourcesOneCode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceScale = 7.0
	cfg.SourceRunGap = 10
	c := NewClassifierWithConfig(cfg, noExtra())

	glyphs := model.GlyphPathDictionary{"g": "M 0 0 L 1 1 Z"}
	instrs := []model.Instruction{
		use("A", "s", 7.0, 100, 50),
		use("B", "s", 7.0, 108, 50),
		use("一", "g", 24, 100, 30),
		use("4", "c", CodeScale, 20, 50),
		use("E", "c", CodeScale, 26, 50),
		use("0", "c", CodeScale, 32, 50),
		use("0", "c", CodeScale, 38, 50),
	}

	set, err := c.Classify(instrs, glyphs)

	require.NoError(t, err)
	// gap 8 is within 10, so both letters form one run
	require.Len(t, set.Sources, 1)
	assert.Equal(t, model.SourceRecord{Text: "AB", XMin: 100, XMax: 108, Y: 50}, set.Sources[0])
	assert.Len(t, set.Graphs, 1)
	require.Len(t, set.Codes, 1)
	assert.Equal(t, rune(0x4E00), set.Codes[0].Codepoint)
	assert.Equal(t, 50.0, set.Codes[0].Y)

	// the default gap of 7 keeps them apart
	set, err = NewClassifierWithConfig(DefaultConfig(), noExtra()).Classify(
		[]model.Instruction{use("A", "s", SourceScale, 100, 50), use("B", "s", SourceScale, 108, 50)}, glyphs)
	require.NoError(t, err)
	require.Len(t, set.Sources, 2)
	assert.Equal(t, "A", set.Sources[0].Text)
	assert.Equal(t, "B", set.Sources[1].Text)
}

func TestParseCodepoint(t *testing.T) {
	r, err := ParseCodepoint("2A6DF")
	require.NoError(t, err)
	assert.Equal(t, rune(0x2A6DF), r)

	_, err = ParseCodepoint("")
	assert.ErrorIs(t, err, model.ErrInvalidCodepoint)
}
