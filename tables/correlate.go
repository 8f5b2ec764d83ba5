package tables

import "github.com/tsawler/glyphtab/model"

// Bucket holds the items assigned to one interval. Index is the interval
// index, or the number of intervals for the overflow bucket.
type Bucket[T any] struct {
	Index int
	Items []T
}

// IsOverflow reports whether the bucket collects items outside all intervals
func (b Bucket[T]) IsOverflow(intervals []model.Interval) bool {
	return b.Index == len(intervals)
}

// Correlate assigns every item to the first interval whose open range
// strictly contains its coordinate. Items matching no interval go to the
// overflow bucket. Empty buckets are dropped and the result is ordered by
// bucket index, so each item appears in exactly one bucket.
func Correlate[T any](items []T, coord func(T) float64, intervals []model.Interval) []Bucket[T] {
	slots := make([][]T, len(intervals)+1)

	for _, item := range items {
		k := findInterval(coord(item), intervals)
		slots[k] = append(slots[k], item)
	}

	var buckets []Bucket[T]
	for i, s := range slots {
		if len(s) == 0 {
			continue
		}
		buckets = append(buckets, Bucket[T]{Index: i, Items: s})
	}
	return buckets
}

// findInterval returns the index of the interval containing v, or
// len(intervals) when none does.
func findInterval(v float64, intervals []model.Interval) int {
	for i, iv := range intervals {
		if iv.Contains(v) {
			return i
		}
	}
	return len(intervals)
}
