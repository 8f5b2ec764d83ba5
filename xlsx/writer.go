package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/glyphtab/glyph"
	"github.com/tsawler/glyphtab/model"
	"github.com/xuri/excelize/v2"
)

// rowsPerBlock is the number of spreadsheet rows one chart row occupies:
// source text, glyph image and a blank spacer.
const rowsPerBlock = 3

// Config holds workbook layout parameters
type Config struct {
	// ColMax is the number of data columns every block is bordered to (default: 7)
	ColMax int

	// ImageScale scales embedded glyph bitmaps (default: 0.65)
	ImageScale float64

	// ImageOffsetX and ImageOffsetY shift images inside their cell, in pixels (default: 1)
	ImageOffsetX int
	ImageOffsetY int

	// ImageRowHeight is the height of the glyph sub-row in pixels (default: 85)
	ImageRowHeight float64

	// ColumnWidth is the width of data columns in pixels (default: 85)
	ColumnWidth float64

	// CompressionLevel is the deflate level used when the workbook is
	// written, -2 to 9 (default: 6)
	CompressionLevel int
}

// DefaultConfig returns the chart workbook layout
func DefaultConfig() Config {
	return Config{
		ColMax:           7,
		ImageScale:       0.65,
		ImageOffsetX:     1,
		ImageOffsetY:     1,
		ImageRowHeight:   85,
		ColumnWidth:      85,
		CompressionLevel: 6,
	}
}

// Writer builds a chart workbook one block at a time. The cursor (sheet and
// row) only moves forward. A Writer is not safe for concurrent use.
type Writer struct {
	config Config
	file   *excelize.File
	styles *styles
	sheets []string
	row    int // 0-based first row of the next block
}

// NewWriter creates a writer with default configuration
func NewWriter() (*Writer, error) {
	return NewWriterWithConfig(DefaultConfig())
}

// NewWriterWithConfig creates a writer with custom configuration
func NewWriterWithConfig(config Config) (*Writer, error) {
	if config.ColMax < 1 {
		return nil, fmt.Errorf("xlsx: column limit must be positive, got %d", config.ColMax)
	}

	f := excelize.NewFile()
	s, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Writer{
		config: config,
		file:   f,
		styles: s,
		sheets: []string{f.GetSheetName(0)},
	}, nil
}

// Config returns the writer's layout parameters.
func (w *Writer) Config() Config {
	return w.config
}

// Cursor returns the 0-based index of the current sheet and the row the
// next block starts at.
func (w *Writer) Cursor() (sheet, row int) {
	return len(w.sheets) - 1, w.row
}

// SheetCount returns the number of worksheets created so far.
func (w *Writer) SheetCount() int {
	return len(w.sheets)
}

// AddRow appends a block for one code label. cells fill data columns 1..n
// from left to right. Cells beyond ColMax are written unframed on the right.
func (w *Writer) AddRow(codeHex string, cells []model.Cell) error {
	sheet := w.sheets[len(w.sheets)-1]
	r := w.row

	if err := w.file.SetRowHeight(sheet, r+2, pixelsToPoints(w.config.ImageRowHeight)); err != nil {
		return fmt.Errorf("setting row height: %w", err)
	}

	top, bottom := cellName(0, r), cellName(0, r+rowsPerBlock-1)
	if err := w.file.MergeCell(sheet, top, bottom); err != nil {
		return fmt.Errorf("merging code cell %s:%s: %w", top, bottom, err)
	}
	if err := w.file.SetCellValue(sheet, top, codeHex); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, top, bottom, w.styles.first); err != nil {
		return err
	}

	colMax := w.config.ColMax
	for i, cell := range cells {
		col := i + 1
		if err := w.writeCell(sheet, r, col, cell, col == colMax); err != nil {
			return fmt.Errorf("column %d: %w", col, err)
		}
	}
	if err := w.frame(sheet, r, len(cells)); err != nil {
		return err
	}

	tracer().Debugf("%s: row %d code %s with %d cells", sheet, r, codeHex, len(cells))
	w.row += rowsPerBlock
	return nil
}

// writeCell places source text above the glyph image of one data column.
func (w *Writer) writeCell(sheet string, r, col int, cell model.Cell, last bool) error {
	name := columnName(col)
	if err := w.file.SetColWidth(sheet, name, name, pixelsToWidth(w.config.ColumnWidth)); err != nil {
		return err
	}

	source := cellName(col, r)
	if err := w.file.SetCellValue(sheet, source, cell.SourceText); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, source, source, w.styles.top(last)); err != nil {
		return err
	}

	image := cellName(col, r+1)
	if cell.Glyph != nil {
		data, err := glyph.EncodePNG(cell.Glyph)
		if err != nil {
			return err
		}
		err = w.file.AddPictureFromBytes(sheet, image, &excelize.Picture{
			Extension: ".png",
			File:      data,
			Format: &excelize.GraphicOptions{
				ScaleX:  w.config.ImageScale,
				ScaleY:  w.config.ImageScale,
				OffsetX: w.config.ImageOffsetX,
				OffsetY: w.config.ImageOffsetY,
			},
		})
		if err != nil {
			return fmt.Errorf("inserting glyph at %s: %w", image, err)
		}
	}
	if err := w.file.SetCellStyle(sheet, image, image, w.styles.middleMiddle); err != nil {
		return err
	}

	spacer := cellName(col, r+2)
	return w.file.SetCellStyle(sheet, spacer, spacer, w.styles.middleBottom)
}

// frame borders the unused columns n+1..ColMax of a block and closes it with
// the right edge at ColMax.
func (w *Writer) frame(sheet string, r, n int) error {
	colMax := w.config.ColMax
	for col := n + 1; col <= colMax; col++ {
		for i, id := range []int{w.styles.middleTop, w.styles.middleMiddle, w.styles.middleBottom} {
			name := cellName(col, r+i)
			if err := w.file.SetCellStyle(sheet, name, name, id); err != nil {
				return err
			}
		}
	}

	edge := []int{w.styles.lastTop, w.styles.lastMiddle, w.styles.lastBottom}
	if n == colMax {
		// the source cell at ColMax already carries its top edge
		edge[0] = -1
	}
	for i, id := range edge {
		if id < 0 {
			continue
		}
		name := cellName(colMax, r+i)
		if err := w.file.SetCellStyle(sheet, name, name, id); err != nil {
			return err
		}
	}
	return nil
}

// NextSheet starts a new worksheet and moves the cursor to its first row.
func (w *Writer) NextSheet() error {
	name := fmt.Sprintf("Sheet%d", len(w.sheets)+1)
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("adding worksheet %s: %w", name, err)
	}
	w.sheets = append(w.sheets, name)
	w.row = 0
	tracer().Infof("started worksheet %s", name)
	return nil
}

// Bytes returns the workbook archive as excelize produces it.
func (w *Writer) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTo writes the workbook repackaged at the configured compression level.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	data, err := w.Bytes()
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := Repack(&buf, data, w.config.CompressionLevel); err != nil {
		return 0, err
	}
	return buf.WriteTo(out)
}

// SaveAs writes the workbook to a file. The file is only created once the
// archive has been built in memory.
func (w *Writer) SaveAs(path string) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Repack(&buf, data, w.config.CompressionLevel); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	tracer().Infof("wrote %s with %d sheets", path, len(w.sheets))
	return nil
}

// Close releases the workbook.
func (w *Writer) Close() error {
	return w.file.Close()
}

// cellName converts 0-based coordinates to an A1 reference.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return name
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return name
}

// pixelsToPoints converts a row height at 96 dpi.
func pixelsToPoints(px float64) float64 {
	return px * 0.75
}

// pixelsToWidth converts a column width to character units of the default
// font: 7px per character plus 5px of padding.
func pixelsToWidth(px float64) float64 {
	if px <= 12 {
		return px / 12
	}
	return (px - 5) / 7
}
