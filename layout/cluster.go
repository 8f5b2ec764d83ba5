package layout

import (
	"math"
	"sort"
)

// Axis reads one coordinate of an element. Passing the accessor lets one
// clusterer serve source runs, code labels and glyphs alike.
type Axis[T any] func(T) float64

// SortDualKey sorts items in place by the secondary axis. When the secondary
// values of two elements differ by less than tolerance, the primary axis
// decides their order.
//
// The comparison is pairwise and therefore not transitive: three elements
// a, b, c with |a-b| < tolerance and |b-c| < tolerance but |a-c| >= tolerance
// may end up in an order that depends on where they started. Charts keep
// their bands far apart, so the result is stable in practice; pre-clustering
// with GroupByPosition would give a total order.
func SortDualKey[T any](items []T, primary, secondary Axis[T], tolerance float64) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if math.Abs(secondary(a)-secondary(b)) < tolerance {
			return primary(a) < primary(b)
		}
		return secondary(a) < secondary(b)
	})
}

// SortYX orders items top to bottom, left to right within a band.
func SortYX[T any](items []T, x, y Axis[T], tolerance float64) {
	SortDualKey(items, x, y, tolerance)
}

// SortXY orders items left to right, top to bottom within a band.
func SortXY[T any](items []T, x, y Axis[T], tolerance float64) {
	SortDualKey(items, y, x, tolerance)
}

// SplitBands partitions an already sorted sequence into groups, starting a
// new group whenever the secondary-axis gap between neighbours exceeds gap.
// The groups share the backing array of items.
func SplitBands[T any](items []T, secondary Axis[T], gap float64) [][]T {
	if len(items) == 0 {
		return nil
	}

	var bands [][]T
	start := 0
	for i := 0; i < len(items)-1; i++ {
		if math.Abs(secondary(items[i+1])-secondary(items[i])) > gap {
			bands = append(bands, items[start:i+1:i+1])
			start = i + 1
		}
	}

	return append(bands, items[start:len(items):len(items)])
}

// GroupByPosition groups consecutive items of a sorted sequence whose
// position lies within tolerance of the first item of the current group.
// It collapses positions exactly the way DedupPositions does, so the n-th
// group belongs to the n-th derived interval.
func GroupByPosition[T any](items []T, pos Axis[T], tolerance float64) [][]T {
	if len(items) == 0 {
		return nil
	}

	var groups [][]T
	start := 0
	anchor := pos(items[0])
	for i := 1; i < len(items); i++ {
		p := pos(items[i])
		if math.Abs(p-anchor) < tolerance {
			continue
		}
		groups = append(groups, items[start:i:i])
		start = i
		anchor = p
	}

	return append(groups, items[start:len(items):len(items)])
}
