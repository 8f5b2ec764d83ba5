package layout

import (
	"math"

	"github.com/tsawler/glyphtab/model"
)

// DedupPositions collapses a sorted sequence of positions. A position within
// tolerance of the last retained one is dropped.
func DedupPositions(positions []float64, tolerance float64) []float64 {
	if len(positions) == 0 {
		return nil
	}

	result := []float64{positions[0]}
	for _, p := range positions[1:] {
		if math.Abs(p-result[len(result)-1]) < tolerance {
			continue
		}
		result = append(result, p)
	}
	return result
}

// DeriveIntervals turns sorted positions into consecutive open bands. Each
// retained position is paired with the next one; the last band ends at +Inf.
// n retained positions therefore give n intervals, and an item beyond all of
// them falls into the overflow band at index n.
func DeriveIntervals(positions []float64, tolerance float64) []model.Interval {
	retained := DedupPositions(positions, tolerance)
	if len(retained) == 0 {
		return nil
	}

	intervals := make([]model.Interval, len(retained))
	for i, start := range retained {
		end := math.Inf(1)
		if i+1 < len(retained) {
			end = retained[i+1]
		}
		intervals[i] = model.Interval{Start: start, End: end}
	}
	return intervals
}

// ClusterPositions sorts nothing; it groups items of an already sorted
// sequence the same way DeriveIntervals collapses their positions and
// returns one interval per group alongside the groups.
func ClusterPositions[T any](items []T, pos Axis[T], tolerance float64) ([][]T, []model.Interval) {
	groups := GroupByPosition(items, pos, tolerance)
	positions := make([]float64, len(groups))
	for i, g := range groups {
		positions[i] = pos(g[0])
	}
	return groups, DeriveIntervals(positions, 0)
}
