package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Border weights as excelize style indices.
const (
	thin  = 1
	thick = 5
)

// styles holds the ids of the seven cell formats a block uses. Blocks are
// framed by thick lines and divided by thin ones.
type styles struct {
	first        int // merged code column
	middleTop    int
	middleMiddle int
	middleBottom int
	lastTop      int // rightmost column
	lastMiddle   int
	lastBottom   int
}

// border weights in the order left, top, right, bottom
type border [4]int

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{}
	defs := []struct {
		id     *int
		border border
	}{
		{&s.first, border{thick, thick, thin, thick}},
		{&s.middleTop, border{thin, thick, thin, thin}},
		{&s.middleMiddle, border{thin, thin, thin, thin}},
		{&s.middleBottom, border{thin, thin, thin, thick}},
		{&s.lastTop, border{thin, thick, thick, thin}},
		{&s.lastMiddle, border{thin, thin, thick, thin}},
		{&s.lastBottom, border{thin, thin, thick, thick}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(cellStyle(d.border))
		if err != nil {
			return nil, fmt.Errorf("creating cell style: %w", err)
		}
		*d.id = id
	}
	return s, nil
}

func cellStyle(b border) *excelize.Style {
	sides := [4]string{"left", "top", "right", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for i, side := range sides {
		borders = append(borders, excelize.Border{
			Type:  side,
			Color: "000000",
			Style: b[i],
		})
	}
	return &excelize.Style{
		Border: borders,
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	}
}

// top returns the format of the source sub-row at a data column.
func (s *styles) top(last bool) int {
	if last {
		return s.lastTop
	}
	return s.middleTop
}
