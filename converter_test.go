package glyphtab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/glyphtab/glyph"
	"github.com/tsawler/glyphtab/model"
	"github.com/tsawler/glyphtab/pages"
	"github.com/tsawler/glyphtab/xlsx"
)

// entry is one code label with the glyphs drawn in its row.
type entry struct {
	code    rune
	glyphs  []rune
	sources []string
}

// chartPage renders entries as a page description in the layout of the
// reference charts: code labels at scale 9.9998, glyphs at scale 24 and
// transliterations at scale 6 below their glyph. Each column is 300 units
// wide and each row 100 units high.
func chartPage(columns ...[]entry) string {
	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` + "\n")
	sb.WriteString(`<defs>` + "\n")
	sb.WriteString(`<path id="font_1_1" d="M 0.1 0.1 L 0.9 0.1 L 0.9 0.9 L 0.1 0.9 Z"/>` + "\n")
	sb.WriteString(`<path id="font_2_1" d="M 0 0 L 0.5 0 L 0.5 0.7 Z"/>` + "\n")
	sb.WriteString(`</defs>` + "\n")
	sb.WriteString(`<g>` + "\n")

	use := func(text, ref string, scale, x, y float64) {
		fmt.Fprintf(&sb, `<use data-text="%s" xlink:href="#%s" transform="matrix(%g,0,0,-%g,%g,%g)"/>`+"\n",
			text, ref, scale, scale, x, y)
	}

	for c, column := range columns {
		x0 := 20 + float64(c)*300
		for r, e := range column {
			y := 40 + float64(r)*100
			for i, ch := range fmt.Sprintf("%04X", e.code) {
				use(string(ch), "font_2_1", 9.9998, x0+float64(i)*6, y)
			}
			for j, g := range e.glyphs {
				x := x0 + 80 + float64(j)*60
				use(fmt.Sprintf("&#x%x;", g), "font_1_1", 24, x, y-10)
				for k, ch := range e.sources[j] {
					use(string(ch), "font_2_1", 6, x+float64(k)*5, y+10)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// chartDoc returns a document whose page 0 is the explanatory page.
func chartDoc(name string, descriptions ...string) *pages.MemorySource {
	return pages.NewMemorySource(name, append([]string{`<svg><defs/><g/></svg>`}, descriptions...)...)
}

func simplePage(base rune) string {
	return chartPage(
		[]entry{
			{code: base, glyphs: []rune{base, base + 0x100}, sources: []string{"yi", "er"}},
			{code: base + 1, glyphs: []rune{base + 1}, sources: []string{"ding"}},
		},
		[]entry{
			{code: base + 2, glyphs: []rune{base + 2}, sources: []string{"kao"}},
		},
	)
}

func inspect(t *testing.T, data []byte) *xlsx.Reader {
	t.Helper()
	r, err := xlsx.OpenBytes(data)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestConvert_SinglePage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphtab.pipeline")
	defer teardown()

	var buf bytes.Buffer
	warnings, err := FromSource(chartDoc("mem", simplePage(0x4E00))).ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	r := inspect(t, buf.Bytes())
	require.Equal(t, 1, r.SheetCount())

	entries := r.Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "4E00", entries[0].Code)
	assert.Equal(t, []string{"yi", "er"}, entries[0].Sources)
	assert.Len(t, entries[0].Pictures, 2)

	assert.Equal(t, "4E01", entries[1].Code)
	assert.Equal(t, []string{"ding"}, entries[1].Sources)

	// second column follows the first
	assert.Equal(t, "4E02", entries[2].Code)
	assert.Equal(t, []string{"kao"}, entries[2].Sources)
	assert.Equal(t, 6, entries[2].Row)
}

func TestConvert_Pagination(t *testing.T) {
	src := chartDoc("mem", simplePage(0x4E00), simplePage(0x4F00), simplePage(0x5000))

	var progress []Progress
	var buf bytes.Buffer
	_, err := FromSource(src).
		PerSheet(2).
		OnPage(func(p Progress) { progress = append(progress, p) }).
		ConvertTo(context.Background(), &buf)
	require.NoError(t, err)

	r := inspect(t, buf.Bytes())
	require.Equal(t, 2, r.SheetCount())

	first, err := r.Sheet(0)
	require.NoError(t, err)
	assert.Len(t, first.Entries(), 6)

	second, err := r.Sheet(1)
	require.NoError(t, err)
	entries := second.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "5000", entries[0].Code)
	assert.Equal(t, 0, entries[0].Row)

	require.Len(t, progress, 3)
	assert.Equal(t, Progress{Page: 1, Done: 1, Total: 3, Rows: 3, Sheet: 0}, progress[0])
	assert.Equal(t, 0, progress[1].Sheet)
	assert.Equal(t, 1, progress[2].Sheet)
	assert.Equal(t, 3, progress[2].Page)
}

func TestConvert_NoTrailingSheet(t *testing.T) {
	// the limit divides the page count exactly: no empty sheet at the end
	src := chartDoc("mem", simplePage(0x4E00), simplePage(0x4F00))

	var buf bytes.Buffer
	_, err := FromSource(src).PerSheet(2).ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, inspect(t, buf.Bytes()).SheetCount())
}

func TestConvert_PageRange(t *testing.T) {
	src := chartDoc("mem", simplePage(0x4E00), simplePage(0x4F00), simplePage(0x5000))
	conv := FromSource(src)

	selected, err := conv.Pages(model.From(2)).SelectedPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, selected)

	// page 0 is never selected and the end is clamped
	selected, err = conv.ParsePages("..=10").SelectedPages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, selected)

	var buf bytes.Buffer
	_, err = conv.ParsePages("3").ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
	entries := inspect(t, buf.Bytes()).Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "5000", entries[0].Code)
}

func TestConvert_NoPages(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := FromSource(chartDoc("mem")).ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNoPages, warnings[0].Code)
}

func TestConvert_LayoutMismatch(t *testing.T) {
	// one transliteration without a glyph
	broken := strings.Replace(simplePage(0x4F00), "</g>",
		`<use data-text="x" xlink:href="#font_2_1" transform="matrix(6,0,0,-6,500,500)"/></g>`, 1)
	src := chartDoc("chart.pdf", simplePage(0x4E00), broken)

	out := filepath.Join(t.TempDir(), "out.xlsx")
	_, err := FromSource(src).Convert(context.Background(), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	var pe *PageError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Page)
	assert.Equal(t, "chart.pdf", pe.Input)
	assert.Contains(t, err.Error(), "chart.pdf: page 2")

	// no partial output
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvert_SourceLevelWithLabel(t *testing.T) {
	// the transliteration shares the y of its code label
	page := strings.Replace(chartPage([]entry{{code: 0x4E00}}), "</g>",
		`<use data-text="&#x4e00;" xlink:href="#font_1_1" transform="matrix(24,0,0,-24,100,30)"/>`+
			`<use data-text="a" xlink:href="#font_2_1" transform="matrix(6,0,0,-6,100,40)"/></g>`, 1)

	var buf bytes.Buffer
	_, err := FromSource(chartDoc("mem", page)).ConvertTo(context.Background(), &buf)
	require.NoError(t, err)

	entries := inspect(t, buf.Bytes()).Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "4E00", entries[0].Code)
	assert.Equal(t, []string{"a"}, entries[0].Sources)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
}

func TestConvert_MalformedPage(t *testing.T) {
	src := chartDoc("mem", "<svg><g></g></svg>")
	_, err := FromSource(src).ConvertTo(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrMalformedDescription)
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	src := chartDoc("mem", simplePage(0x4E00), simplePage(0x4F00))

	_, err := FromSource(src).
		OnPage(func(Progress) {
			calls++
			cancel()
		}).
		ConvertTo(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestConvert_RowTooWide(t *testing.T) {
	page := chartPage([]entry{{
		code:    0x4E00,
		glyphs:  []rune{0x4E00, 0x4E01, 0x4E02},
		sources: []string{"a", "b", "c"},
	}})

	var buf bytes.Buffer
	warnings, err := FromSource(chartDoc("mem", page)).Columns(2).ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnRowTooWide, warnings[0].Code)
	assert.Equal(t, 1, warnings[0].Page)

	entries := inspect(t, buf.Bytes()).Entries()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Sources, 3)
}

func TestConvert_Codepoints(t *testing.T) {
	// Latin glyphs are only kept when their codepoints are requested
	page := chartPage([]entry{{code: 0x41, glyphs: []rune{'A'}, sources: []string{"a"}}})

	src := chartDoc("mem", page)
	_, err := FromSource(src).ConvertTo(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	var buf bytes.Buffer
	_, err = FromSource(src).ParseCodepoints("0x41..=0x5A").ConvertTo(context.Background(), &buf)
	require.NoError(t, err)
}

type fakeRecognizer struct{ text string }

func (f fakeRecognizer) RecognizeGlyph([]byte) (string, error) { return f.text, nil }

func TestConvert_Verify(t *testing.T) {
	page := chartPage([]entry{{code: 0x4E00, glyphs: []rune{0x4E00, 0x4E01}, sources: []string{"yi", "ding"}}})

	warnings, err := FromSource(chartDoc("mem", page)).
		Verify(fakeRecognizer{text: "一"}).
		Rasterizer(glyph.NewFreetypeRasterizer()).
		ConvertTo(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnGlyphMismatch, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "U+4E01")
}

func TestConverter_Immutable(t *testing.T) {
	base := FromSource(chartDoc("mem"))
	derived := base.PerSheet(5).Columns(3)

	assert.Equal(t, DefaultPagesPerSheet, base.options.perSheet)
	assert.Equal(t, 7, base.options.workbook.ColMax)
	assert.Equal(t, 5, derived.options.perSheet)
	assert.Equal(t, 3, derived.options.workbook.ColMax)
}

func TestConverter_OptionErrors(t *testing.T) {
	ctx := context.Background()
	src := chartDoc("mem", simplePage(0x4E00))

	_, err := FromSource(src).ParsePages("a..b").ConvertTo(ctx, &bytes.Buffer{})
	assert.ErrorContains(t, err, "page range")

	_, err = FromSource(src).ParseCodepoints("..=").ConvertTo(ctx, &bytes.Buffer{})
	assert.ErrorContains(t, err, "codepoint range")

	_, err = FromSource(src).PerSheet(0).ConvertTo(ctx, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = FromSource(src).Columns(0).ConvertTo(ctx, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = Open("").PageCount(ctx)
	assert.Error(t, err)
}

func TestConvert_File(t *testing.T) {
	dir := t.TempDir()
	svgDir := filepath.Join(dir, "svg")
	require.NoError(t, os.Mkdir(svgDir, 0o755))
	for i, desc := range []string{`<svg><defs/><g/></svg>`, simplePage(0x4E00)} {
		name := filepath.Join(svgDir, fmt.Sprintf(pages.DefaultPattern, i))
		require.NoError(t, os.WriteFile(name, []byte(desc), 0o644))
	}

	out := filepath.Join(dir, "chart.xlsx")
	_, err := Open(svgDir).Convert(context.Background(), out)
	require.NoError(t, err)

	r, err := xlsx.Open(out)
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, r.Entries(), 3)
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{
		{Code: WarnEmptyPage, Page: 3, Message: "no code labels found"},
		{Code: WarnNoPages, Page: -1, Message: "nothing"},
	})
	assert.Equal(t, "[empty-page] page 3: no code labels found\n[no-pages] nothing", got)
}
