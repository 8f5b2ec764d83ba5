package xlsx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell is one cell read back from a worksheet. Coordinates are 0-based.
type Cell struct {
	Row   int
	Col   int
	Value string
	Style int // index into the workbook's cell formats

	IsMerged    bool // part of a merged region
	IsMergeRoot bool // top-left cell of a merged region
	MergeRows   int  // rows spanned by a merge root (1 = no merge)
	MergeCols   int  // columns spanned by a merge root (1 = no merge)
}

// MergedRegion is a merged cell range, inclusive and 0-based.
type MergedRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Picture is an image anchored at a cell.
type Picture struct {
	Row  int
	Col  int
	Name string
	Part string // archive path of the image, e.g. xl/media/image1.png
	Data []byte
}

// Entry is one chart block recovered from a sheet.
type Entry struct {
	Row      int       // first spreadsheet row of the block
	Code     string    // code label in the merged first column
	Sources  []string  // source text of data columns 1..n
	Pictures []Picture // glyph images of the block, left to right
}

// Sheet is a parsed worksheet.
type Sheet struct {
	Name       string
	Index      int
	Rows       [][]Cell
	RowHeights map[int]float64 // 0-based row -> points, custom heights only
	ColWidths  map[int]float64 // 0-based column -> character units
	Merged     []MergedRegion
	Pictures   []Picture
}

// Cell returns the cell at row and col, or nil when outside the sheet.
func (s *Sheet) Cell(row, col int) *Cell {
	if row < 0 || row >= len(s.Rows) {
		return nil
	}
	if col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return &s.Rows[row][col]
}

// Value returns the text of a cell, "" when it does not exist.
func (s *Sheet) Value(row, col int) string {
	if c := s.Cell(row, col); c != nil {
		return c.Value
	}
	return ""
}

// RowCount returns the number of rows up to the last one with cells.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// PictureAt returns the first picture anchored at row and col.
func (s *Sheet) PictureAt(row, col int) (Picture, bool) {
	for _, p := range s.Pictures {
		if p.Row == row && p.Col == col {
			return p, true
		}
	}
	return Picture{}, false
}

// Entries recovers the chart blocks of the sheet: every merge root in the
// first column spanning three rows starts one entry. Data columns run up to
// the last column that has source text or a glyph image.
func (s *Sheet) Entries() []Entry {
	var entries []Entry
	for _, m := range s.Merged {
		if m.StartCol != 0 || m.EndCol != 0 || m.EndRow-m.StartRow+1 != rowsPerBlock {
			continue
		}
		r := m.StartRow
		e := Entry{Row: r, Code: s.Value(r, 0)}

		width := 0
		if r < len(s.Rows) {
			for col := len(s.Rows[r]) - 1; col > 0; col-- {
				if s.Value(r, col) != "" {
					width = col
					break
				}
			}
		}
		for _, p := range s.Pictures {
			if p.Row == r+1 && p.Col > width {
				width = p.Col
			}
		}

		for col := 1; col <= width; col++ {
			e.Sources = append(e.Sources, s.Value(r, col))
			if p, ok := s.PictureAt(r+1, col); ok {
				e.Pictures = append(e.Pictures, p)
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Row < entries[j].Row
	})
	return entries
}

// parseCellRef converts an A1 reference to 0-based column and row.
func parseCellRef(ref string) (col, row int, err error) {
	col, row, err = excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, err
	}
	return col - 1, row - 1, nil
}

// parseRangeRef converts "A1:C3" (or a single cell) to a merged region.
func parseRangeRef(ref string) (MergedRegion, error) {
	first, last, found := strings.Cut(ref, ":")
	if !found {
		last = first
	}
	startCol, startRow, err := parseCellRef(first)
	if err != nil {
		return MergedRegion{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := parseCellRef(last)
	if err != nil {
		return MergedRegion{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	return MergedRegion{
		StartRow: min(startRow, endRow),
		StartCol: min(startCol, endCol),
		EndRow:   max(startRow, endRow),
		EndCol:   max(startCol, endCol),
	}, nil
}
