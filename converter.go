package glyphtab

import (
	"context"
	"fmt"
	"io"

	"github.com/tsawler/glyphtab/glyph"
	"github.com/tsawler/glyphtab/model"
	"github.com/tsawler/glyphtab/ocr"
	"github.com/tsawler/glyphtab/pagedesc"
	"github.com/tsawler/glyphtab/pages"
	"github.com/tsawler/glyphtab/streams"
	"github.com/tsawler/glyphtab/tables"
	"github.com/tsawler/glyphtab/xlsx"
)

// Converter provides a fluent interface for converting a chart document.
// Each configuration method returns a new Converter instance, so a base
// configuration can be shared and specialised.
type Converter struct {
	// Source
	input  string
	source pages.Source // opened lazily from input when nil

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter. Options are plain values.
func (c *Converter) clone() *Converter {
	newConv := *c
	return &newConv
}

// ensureSource opens the page source if not already open.
func (c *Converter) ensureSource() (pages.Source, error) {
	if c.source != nil {
		return c.source, nil
	}
	if c.input == "" {
		return nil, fmt.Errorf("no input specified")
	}
	return pages.Open(c.input)
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Pages selects pages by 0-based index. The range is clamped to the
// document and page 0 is always skipped.
//
// Example:
//
//	glyphtab.Open("U4E00.pdf").Pages(model.InclusiveRange(1, 10))
func (c *Converter) Pages(r model.Range[int]) *Converter {
	newConv := c.clone()
	newConv.options.pages = r
	return newConv
}

// ParsePages selects pages with range syntax such as "1..", "3..=7" or "5".
// A syntax error is reported by the terminal operation.
func (c *Converter) ParsePages(expr string) *Converter {
	newConv := c.clone()
	r, err := model.ParseRange[int](expr)
	if err != nil && newConv.err == nil {
		newConv.err = fmt.Errorf("page range: %w", err)
	}
	newConv.options.pages = r
	return newConv
}

// Codepoints accepts glyphs in r in addition to the CJK, Bopomofo and
// private use blocks.
func (c *Converter) Codepoints(r model.Range[rune]) *Converter {
	newConv := c.clone()
	newConv.options.codepoints = r
	return newConv
}

// ParseCodepoints is Codepoints with range syntax, e.g. "0x20000..=0x2A6DF".
func (c *Converter) ParseCodepoints(expr string) *Converter {
	newConv := c.clone()
	r, err := model.ParseRange[rune](expr)
	if err != nil && newConv.err == nil {
		newConv.err = fmt.Errorf("codepoint range: %w", err)
	}
	newConv.options.codepoints = r
	return newConv
}

// PerSheet sets how many pages go into one worksheet (default: 100).
func (c *Converter) PerSheet(n int) *Converter {
	newConv := c.clone()
	if n < 1 && newConv.err == nil {
		newConv.err = fmt.Errorf("pages per sheet must be positive, got %d", n)
	}
	newConv.options.perSheet = n
	return newConv
}

// Columns sets the number of data columns every row is bordered to (default: 7).
func (c *Converter) Columns(n int) *Converter {
	newConv := c.clone()
	newConv.options.workbook.ColMax = n
	return newConv
}

// CompressionLevel sets the deflate level of the written workbook, -2 to 9
// (default: 6).
func (c *Converter) CompressionLevel(level int) *Converter {
	newConv := c.clone()
	newConv.options.workbook.CompressionLevel = level
	return newConv
}

// Workbook replaces the whole workbook layout.
func (c *Converter) Workbook(config xlsx.Config) *Converter {
	newConv := c.clone()
	newConv.options.workbook = config
	return newConv
}

// Classification replaces the scale signatures and run gaps used to split
// the page into streams.
func (c *Converter) Classification(config streams.Config) *Converter {
	newConv := c.clone()
	newConv.options.classifier = config
	return newConv
}

// Tolerances replaces the clustering tolerances of the table detector.
func (c *Converter) Tolerances(config tables.Config) *Converter {
	newConv := c.clone()
	newConv.options.tables = config
	return newConv
}

// Detector replaces the chart detector. It is configured with the
// converter's tolerances before use.
func (c *Converter) Detector(d tables.Detector) *Converter {
	newConv := c.clone()
	newConv.options.detector = d
	return newConv
}

// Rasterizer replaces the glyph rasterizer (default: glyph.VectorRasterizer).
func (c *Converter) Rasterizer(r glyph.Rasterizer) *Converter {
	newConv := c.clone()
	newConv.options.rasterizer = r
	return newConv
}

// Verify checks every rendered glyph with rec. Disagreements are reported
// as warnings.
func (c *Converter) Verify(rec ocr.Recognizer) *Converter {
	newConv := c.clone()
	newConv.options.verifier = rec
	return newConv
}

// OnPage registers a callback invoked after every converted page.
func (c *Converter) OnPage(fn func(Progress)) *Converter {
	newConv := c.clone()
	newConv.options.onPage = fn
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages of the document, including the
// explanatory first page.
func (c *Converter) PageCount(ctx context.Context) (int, error) {
	src, err := c.ensureSource()
	if err != nil {
		return 0, err
	}
	return src.PageCount(ctx)
}

// SelectedPages returns the 0-based indices the conversion will visit.
func (c *Converter) SelectedPages(ctx context.Context) ([]int, error) {
	if c.err != nil {
		return nil, c.err
	}
	count, err := c.PageCount(ctx)
	if err != nil {
		return nil, err
	}
	return c.options.pages.Indices(1, count-1), nil
}

// Convert writes the workbook to out. The file is only created after every
// page converted successfully. Errors are *PageError values.
//
// Example:
//
//	warnings, err := glyphtab.Open("U4E00.pdf").Convert(ctx, "basic.xlsx")
//	var pe *glyphtab.PageError
//	if errors.As(err, &pe) {
//	    log.Printf("page %d: %v", pe.Page, pe.Err)
//	}
func (c *Converter) Convert(ctx context.Context, out string) ([]Warning, error) {
	w, warnings, err := c.build(ctx)
	if err != nil {
		return warnings, err
	}
	defer w.Close()

	if err := w.SaveAs(out); err != nil {
		return warnings, &PageError{Input: c.input, Page: -1, Err: err}
	}
	return warnings, nil
}

// ConvertTo writes the workbook to out once every page converted.
func (c *Converter) ConvertTo(ctx context.Context, out io.Writer) ([]Warning, error) {
	w, warnings, err := c.build(ctx)
	if err != nil {
		return warnings, err
	}
	defer w.Close()

	if _, err := w.WriteTo(out); err != nil {
		return warnings, &PageError{Input: c.input, Page: -1, Err: err}
	}
	return warnings, nil
}

// pipeline holds the stages of one conversion run.
type pipeline struct {
	classifier *streams.Classifier
	detector   tables.Detector
	rasterizer glyph.Rasterizer
	verifier   ocr.Recognizer
	writer     *xlsx.Writer
}

// build runs the page loop and returns the filled workbook.
func (c *Converter) build(ctx context.Context) (*xlsx.Writer, []Warning, error) {
	fail := func(page int, err error) (*xlsx.Writer, []Warning, error) {
		return nil, nil, &PageError{Input: c.input, Page: page, Err: err}
	}

	if c.err != nil {
		return fail(-1, c.err)
	}
	src, err := c.ensureSource()
	if err != nil {
		return fail(-1, err)
	}
	count, err := src.PageCount(ctx)
	if err != nil {
		return fail(-1, err)
	}
	indices := c.options.pages.Indices(1, count-1)

	p, err := c.newPipeline()
	if err != nil {
		return fail(-1, err)
	}

	var warnings []Warning
	if len(indices) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNoPages,
			Page:    -1,
			Message: fmt.Sprintf("range %s selects no page of %d", c.options.pages, count),
		})
	}

	tracer().Infof("%s: converting %d of %d pages", c.input, len(indices), count)
	for done, index := range indices {
		if err := ctx.Err(); err != nil {
			p.writer.Close()
			return fail(index, err)
		}

		rows, pageWarnings, err := c.convertPage(ctx, p, src, index)
		warnings = append(warnings, pageWarnings...)
		if err != nil {
			tracer().Errorf("%s: page %d: %v", c.input, index, err)
			p.writer.Close()
			return nil, warnings, &PageError{Input: c.input, Page: index, Err: err}
		}

		sheet, _ := p.writer.Cursor()
		tracer().Infof("page %03d done, %d rows", index, rows)
		if c.options.onPage != nil {
			c.options.onPage(Progress{
				Page:  index,
				Done:  done + 1,
				Total: len(indices),
				Rows:  rows,
				Sheet: sheet,
			})
		}

		if (done+1)%c.options.perSheet == 0 && done+1 < len(indices) {
			if err := p.writer.NextSheet(); err != nil {
				p.writer.Close()
				return nil, warnings, &PageError{Input: c.input, Page: index, Err: err}
			}
		}
	}

	return p.writer, warnings, nil
}

func (c *Converter) newPipeline() (*pipeline, error) {
	detector := c.options.detector
	if detector == nil {
		detector = tables.NewChartDetector()
	}
	if err := detector.Configure(c.options.tables); err != nil {
		return nil, err
	}

	rasterizer := c.options.rasterizer
	if rasterizer == nil {
		rasterizer = glyph.NewVectorRasterizer()
	}

	writer, err := xlsx.NewWriterWithConfig(c.options.workbook)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		classifier: streams.NewClassifierWithConfig(c.options.classifier, c.options.codepoints),
		detector:   detector,
		rasterizer: rasterizer,
		verifier:   c.options.verifier,
		writer:     writer,
	}, nil
}

// convertPage runs one page through parse, classify, detect, rasterize and
// emit. It returns the number of rows written.
func (c *Converter) convertPage(ctx context.Context, p *pipeline, src pages.Source, index int) (int, []Warning, error) {
	desc, err := src.Description(ctx, index)
	if err != nil {
		return 0, nil, err
	}

	page, err := pagedesc.Parse(desc)
	if err != nil {
		return 0, nil, err
	}
	set, err := p.classifier.Classify(page.Instructions, page.Glyphs)
	if err != nil {
		return 0, nil, err
	}
	rows, err := p.detector.Detect(set)
	if err != nil {
		return 0, nil, err
	}

	var warnings []Warning
	if len(rows) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyPage,
			Page:    index,
			Message: "no code labels found",
		})
	}

	colMax := p.writer.Config().ColMax
	for _, row := range rows {
		cells := make([]model.Cell, len(row.Pairs))
		for i, pair := range row.Pairs {
			img, err := p.rasterizer.Rasterize(pair.Graph.Path)
			if err != nil {
				return 0, warnings, fmt.Errorf("glyph U+%04X: %w", pair.Graph.Character, err)
			}
			cells[i] = model.Cell{SourceText: pair.Source.Text, Glyph: img}

			if p.verifier != nil {
				warnings = append(warnings, verifyGlyph(p.verifier, index, cells[i], pair.Graph.Character)...)
			}
		}

		if len(cells) > colMax {
			warnings = append(warnings, Warning{
				Code:    WarnRowTooWide,
				Page:    index,
				Message: fmt.Sprintf("code %s has %d cells, limit %d", row.Code.Hex(), len(cells), colMax),
			})
		}
		if err := p.writer.AddRow(row.Code.Hex(), cells); err != nil {
			return 0, warnings, err
		}
	}
	return len(rows), warnings, nil
}

func verifyGlyph(rec ocr.Recognizer, page int, cell model.Cell, want rune) []Warning {
	result, err := ocr.Verify(rec, cell.Glyph, want)
	if err != nil {
		return []Warning{{Code: WarnOCRFailed, Page: page, Message: err.Error()}}
	}
	if !result.Match() {
		return []Warning{{Code: WarnGlyphMismatch, Page: page, Message: result.String()}}
	}
	return nil
}
