// Package layout recovers rows and columns from positioned elements that
// carry no explicit structure.
//
// All functions are generic over the element type and read coordinates
// through [Axis] accessors, so the same code clusters transliteration runs,
// code labels and glyph uses.
//
// # Runs
//
// [RunExtractor] joins consecutive elements on one baseline into runs,
// splitting where the horizontal gap exceeds a threshold:
//
//	runs := layout.ExtractRuns(instrs, baseline, xpos, text, 7.0, startsWithLetter)
//
// # Sorting and bands
//
// [SortDualKey] orders by a secondary axis and lets the primary axis decide
// when two secondary values are within a tolerance. [SplitBands] then cuts
// the sorted sequence wherever the secondary gap exceeds a threshold:
//
//	layout.SortYX(records, x, y, 5.0)
//	rows := layout.SplitBands(records, y, 10.0)
//
// # Intervals
//
// [DeriveIntervals] collapses sorted positions and pairs each survivor with
// the next one. The last interval is open-ended, so every coordinate beyond
// the first boundary falls into exactly one band:
//
//	bands := layout.DeriveIntervals([]float64{10, 11, 50}, 2.0)
//	// (10, 50), (50, +Inf)
//
// [GroupByPosition] and [ClusterPositions] apply the same collapse to
// elements instead of raw positions.
package layout
