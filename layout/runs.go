package layout

import (
	"math"
	"strings"
)

// Run is a horizontal sequence of elements on one baseline whose positions
// follow each other without a gap wider than the extraction threshold.
type Run[T any] struct {
	Items []T
	Text  string  // concatenated text of all items
	Min   float64 // smallest primary position
	Max   float64 // largest primary position
	Key   float64 // shared secondary key (baseline)
}

// RunExtractor groups positioned text elements into runs
type RunExtractor[T any] struct {
	// Key returns the secondary key; only consecutive items with exactly
	// equal keys can form a run
	Key Axis[T]

	// Pos returns the primary position used for the gap test
	Pos Axis[T]

	// Text returns the text contributed by an item
	Text func(T) string

	// Gap closes a run when the distance to the next item exceeds it
	Gap float64

	// Accept filters finished runs; nil accepts all
	Accept func(Run[T]) bool
}

// Extract scans items in their original order. Consecutive items sharing an
// exactly equal key form a group; within a group a run is closed whenever
// the absolute distance between the current and the next position exceeds
// Gap, or the group ends. Runs rejected by Accept are dropped.
func (e RunExtractor[T]) Extract(items []T) []Run[T] {
	var runs []Run[T]

	i := 0
	for i < len(items) {
		key := e.Key(items[i])
		j := i
		for j < len(items) && e.Key(items[j]) == key {
			j++
		}
		runs = e.extractGroup(runs, items[i:j:j], key)
		i = j
	}

	return runs
}

func (e RunExtractor[T]) extractGroup(runs []Run[T], group []T, key float64) []Run[T] {
	start := 0
	for k := range group {
		last := k == len(group)-1
		if !last && math.Abs(e.Pos(group[k+1])-e.Pos(group[k])) <= e.Gap {
			continue
		}

		run := e.newRun(group[start:k+1:k+1], key)
		if e.Accept == nil || e.Accept(run) {
			runs = append(runs, run)
		}
		start = k + 1
	}
	return runs
}

func (e RunExtractor[T]) newRun(items []T, key float64) Run[T] {
	var sb strings.Builder
	minPos := math.MaxFloat64
	maxPos := -math.MaxFloat64

	for _, item := range items {
		sb.WriteString(e.Text(item))
		p := e.Pos(item)
		if p < minPos {
			minPos = p
		}
		if p > maxPos {
			maxPos = p
		}
	}

	return Run[T]{
		Items: items,
		Text:  sb.String(),
		Min:   minPos,
		Max:   maxPos,
		Key:   key,
	}
}

// ExtractRuns is a shorthand for a RunExtractor with the given accessors.
func ExtractRuns[T any](items []T, key, pos Axis[T], text func(T) string, gap float64, accept func(Run[T]) bool) []Run[T] {
	return RunExtractor[T]{
		Key:    key,
		Pos:    pos,
		Text:   text,
		Gap:    gap,
		Accept: accept,
	}.Extract(items)
}
