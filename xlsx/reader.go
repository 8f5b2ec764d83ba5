package xlsx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Reader gives access to the sheets of a workbook. All parts are parsed when
// the reader is created.
type Reader struct {
	parts         map[string]*zip.File
	sharedStrings []string
	sheets        []*Sheet
}

// Open reads a workbook file.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return OpenBytes(data)
}

// OpenBytes reads a workbook held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// NewReader reads a workbook from ra, which holds size bytes.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		r.parts[f.Name] = f
	}

	for _, name := range []string{"[Content_Types].xml", "xl/workbook.xml"} {
		if _, ok := r.parts[name]; !ok {
			return nil, fmt.Errorf("missing required file: %s", name)
		}
	}

	// Shared strings are optional
	if err := r.parseSharedStrings(); err != nil {
		return nil, fmt.Errorf("parsing shared strings: %w", err)
	}
	if err := r.parseWorksheets(); err != nil {
		return nil, fmt.Errorf("parsing worksheets: %w", err)
	}
	return r, nil
}

// Close releases the reader. Parts are read eagerly, so it never fails.
func (r *Reader) Close() error {
	r.parts = nil
	return nil
}

// Sheets returns all worksheets in workbook order.
func (r *Reader) Sheets() []*Sheet {
	return r.sheets
}

// SheetCount returns the number of worksheets.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// Sheet returns the sheet at the given 0-based index.
func (r *Reader) Sheet(index int) (*Sheet, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	return r.sheets[index], nil
}

// SheetByName returns the sheet with the given name.
func (r *Reader) SheetByName(name string) (*Sheet, error) {
	for _, s := range r.sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet not found: %s", name)
}

// Entries returns the chart blocks of all sheets in order.
func (r *Reader) Entries() []Entry {
	var all []Entry
	for _, s := range r.sheets {
		all = append(all, s.Entries()...)
	}
	return all
}

func (r *Reader) content(name string) ([]byte, error) {
	f, ok := r.parts[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) unmarshal(name string, v any) error {
	data, err := r.content(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// relationships returns the targets of a part's relationships by id,
// resolved to archive paths. A part without relationships yields an empty map.
func (r *Reader) relationships(part string) (map[string]string, error) {
	relsPart := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	targets := make(map[string]string)
	if _, ok := r.parts[relsPart]; !ok {
		return targets, nil
	}

	var rels relationshipsXML
	if err := r.unmarshal(relsPart, &rels); err != nil {
		return nil, err
	}
	for _, rel := range rels.Relationship {
		targets[rel.ID] = resolvePart(part, rel.Target)
	}
	return targets, nil
}

// resolvePart resolves a relationship target against the part owning it.
func resolvePart(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(base), target)
}

func (r *Reader) parseSharedStrings() error {
	if _, ok := r.parts["xl/sharedStrings.xml"]; !ok {
		return nil
	}

	var sst sharedStringsXML
	if err := r.unmarshal("xl/sharedStrings.xml", &sst); err != nil {
		return err
	}
	r.sharedStrings = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		r.sharedStrings[i] = joinRuns(si.T, si.R)
	}
	return nil
}

func (r *Reader) parseWorksheets() error {
	var wb workbookXML
	if err := r.unmarshal("xl/workbook.xml", &wb); err != nil {
		return err
	}
	targets, err := r.relationships("xl/workbook.xml")
	if err != nil {
		return err
	}

	for i, ref := range wb.Sheets {
		part := targets[ref.RID]
		if part == "" {
			part = fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		}
		sheet, err := r.parseWorksheet(part, ref.Name, i)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", ref.Name, err)
		}
		r.sheets = append(r.sheets, sheet)
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}
	return nil
}

func (r *Reader) parseWorksheet(part, name string, index int) (*Sheet, error) {
	var ws worksheetXML
	if err := r.unmarshal(part, &ws); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:       name,
		Index:      index,
		RowHeights: make(map[int]float64),
		ColWidths:  make(map[int]float64),
	}

	for _, c := range ws.Cols {
		for col := c.Min; col <= c.Max; col++ {
			sheet.ColWidths[col-1] = c.Width
		}
	}

	// First pass: dimensions
	maxRow, maxCol := 0, 0
	for _, row := range ws.Rows {
		maxRow = max(maxRow, row.R)
		for _, c := range row.Cells {
			if col, _, err := parseCellRef(c.R); err == nil {
				maxCol = max(maxCol, col)
			}
		}
	}

	sheet.Rows = make([][]Cell, maxRow)
	for i := range sheet.Rows {
		sheet.Rows[i] = make([]Cell, maxCol+1)
		for j := range sheet.Rows[i] {
			sheet.Rows[i][j] = Cell{Row: i, Col: j, MergeRows: 1, MergeCols: 1}
		}
	}

	// Second pass: values
	for _, row := range ws.Rows {
		rowIdx := row.R - 1
		if rowIdx < 0 {
			continue
		}
		if row.Height > 0 {
			sheet.RowHeights[rowIdx] = row.Height
		}
		for _, c := range row.Cells {
			col, _, err := parseCellRef(c.R)
			if err != nil {
				continue
			}
			cell := &sheet.Rows[rowIdx][col]
			cell.Style = c.S
			cell.Value = r.cellValue(c)
		}
	}

	for _, mc := range ws.MergeCells {
		region, err := parseRangeRef(mc.Ref)
		if err != nil {
			continue
		}
		sheet.Merged = append(sheet.Merged, region)
		for row := region.StartRow; row <= region.EndRow && row < len(sheet.Rows); row++ {
			for col := region.StartCol; col <= region.EndCol && col < len(sheet.Rows[row]); col++ {
				cell := &sheet.Rows[row][col]
				cell.IsMerged = true
				if row == region.StartRow && col == region.StartCol {
					cell.IsMergeRoot = true
					cell.MergeRows = region.EndRow - region.StartRow + 1
					cell.MergeCols = region.EndCol - region.StartCol + 1
				}
			}
		}
	}

	if ws.Drawing != nil {
		pictures, err := r.parsePictures(part, ws.Drawing.RID)
		if err != nil {
			return nil, err
		}
		sheet.Pictures = pictures
	}

	return sheet, nil
}

func (r *Reader) cellValue(c cellXML) string {
	switch c.T {
	case "s":
		idx, err := strconv.Atoi(c.V)
		if err == nil && idx >= 0 && idx < len(r.sharedStrings) {
			return r.sharedStrings[idx]
		}
		return ""
	case "inlineStr":
		if c.Is != nil {
			return joinRuns(c.Is.T, c.Is.R)
		}
		return ""
	default:
		return c.V
	}
}

// parsePictures follows the sheet's drawing relationship to the anchored
// images.
func (r *Reader) parsePictures(sheetPart, drawingID string) ([]Picture, error) {
	sheetTargets, err := r.relationships(sheetPart)
	if err != nil {
		return nil, err
	}
	drawingPart, ok := sheetTargets[drawingID]
	if !ok {
		return nil, fmt.Errorf("drawing relationship %s not found", drawingID)
	}

	var dr drawingXML
	if err := r.unmarshal(drawingPart, &dr); err != nil {
		return nil, err
	}
	mediaTargets, err := r.relationships(drawingPart)
	if err != nil {
		return nil, err
	}

	var pictures []Picture
	for _, anchor := range append(dr.TwoCell, dr.OneCell...) {
		if anchor.From == nil || anchor.Pic == nil {
			continue
		}
		p := Picture{
			Row:  anchor.From.Row,
			Col:  anchor.From.Col,
			Name: anchor.Pic.Props.Name,
			Part: mediaTargets[anchor.Pic.Blip.Embed],
		}
		if p.Part != "" {
			data, err := r.content(p.Part)
			if err != nil {
				return nil, err
			}
			p.Data = data
		}
		pictures = append(pictures, p)
	}
	return pictures, nil
}

func joinRuns(text string, runs []rXML) string {
	if text != "" || len(runs) == 0 {
		return text
	}
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(run.T)
	}
	return sb.String()
}
