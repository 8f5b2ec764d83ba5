package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer is the set of index types a Range can bound.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint32
}

// BoundKind tells how one end of a Range is bounded
type BoundKind int

const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// String returns a string representation of the bound kind
func (k BoundKind) String() string {
	switch k {
	case Included:
		return "included"
	case Excluded:
		return "excluded"
	default:
		return "unbounded"
	}
}

// Bound is one end of a Range.
type Bound[T Integer] struct {
	Kind  BoundKind
	Value T
}

// Range is a span of page indices or codepoints whose ends may each be
// inclusive, exclusive or open.
type Range[T Integer] struct {
	Start Bound[T]
	End   Bound[T]
}

// FullRange returns a range that is unbounded on both ends.
func FullRange[T Integer]() Range[T] {
	return Range[T]{}
}

// InclusiveRange returns the range lo..=hi.
func InclusiveRange[T Integer](lo, hi T) Range[T] {
	return Range[T]{
		Start: Bound[T]{Kind: Included, Value: lo},
		End:   Bound[T]{Kind: Included, Value: hi},
	}
}

// HalfOpenRange returns the range lo..hi.
func HalfOpenRange[T Integer](lo, hi T) Range[T] {
	return Range[T]{
		Start: Bound[T]{Kind: Included, Value: lo},
		End:   Bound[T]{Kind: Excluded, Value: hi},
	}
}

// From returns the range lo.. (open end).
func From[T Integer](lo T) Range[T] {
	return Range[T]{Start: Bound[T]{Kind: Included, Value: lo}}
}

// Clamp resolves the range to inclusive limits inside [min, max]. ok is false
// when nothing of the range lies inside the limits.
func (r Range[T]) Clamp(min, max T) (lo, hi T, ok bool) {
	lo = min
	switch r.Start.Kind {
	case Included:
		lo = r.Start.Value
	case Excluded:
		if r.Start.Value >= max {
			return 0, 0, false
		}
		lo = r.Start.Value + 1
	}

	hi = max
	switch r.End.Kind {
	case Included:
		hi = r.End.Value
	case Excluded:
		if r.End.Value <= min {
			return 0, 0, false
		}
		hi = r.End.Value - 1
	}

	if lo < min {
		lo = min
	}
	if hi > max {
		hi = max
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Indices expands the range clamped to [min, max] into ascending values.
func (r Range[T]) Indices(min, max T) []T {
	lo, hi, ok := r.Clamp(min, max)
	if !ok {
		return nil
	}
	result := make([]T, 0, int(hi-lo)+1)
	for v := lo; ; v++ {
		result = append(result, v)
		if v == hi {
			break
		}
	}
	return result
}

// String renders the range in the syntax accepted by ParseRange. An excluded
// start has no literal form and is shown as "(v..".
func (r Range[T]) String() string {
	var sb strings.Builder
	switch r.Start.Kind {
	case Included:
		sb.WriteString(strconv.FormatInt(int64(r.Start.Value), 10))
	case Excluded:
		sb.WriteString("(" + strconv.FormatInt(int64(r.Start.Value), 10))
	}
	sb.WriteString("..")
	switch r.End.Kind {
	case Included:
		sb.WriteString("=" + strconv.FormatInt(int64(r.End.Value), 10))
	case Excluded:
		sb.WriteString(strconv.FormatInt(int64(r.End.Value), 10))
	}
	return sb.String()
}

// ParseRange parses "a..b", "a..=b", "a..", "..b", "..=b" and "..". A single
// value "a" is the range a..=a. Numbers may be decimal, 0x-prefixed hex or
// U+ codepoint notation.
func ParseRange[T Integer](s string) (Range[T], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range[T]{}, fmt.Errorf("empty range")
	}

	idx := strings.Index(s, "..")
	if idx < 0 {
		v, err := parseRangeValue[T](s)
		if err != nil {
			return Range[T]{}, err
		}
		return InclusiveRange(v, v), nil
	}

	var r Range[T]
	if start := strings.TrimSpace(s[:idx]); start != "" {
		v, err := parseRangeValue[T](start)
		if err != nil {
			return Range[T]{}, fmt.Errorf("range start: %w", err)
		}
		r.Start = Bound[T]{Kind: Included, Value: v}
	}

	end := strings.TrimSpace(s[idx+2:])
	kind := Excluded
	if strings.HasPrefix(end, "=") {
		kind = Included
		end = strings.TrimSpace(end[1:])
		if end == "" {
			return Range[T]{}, fmt.Errorf("range %q: inclusive end needs a value", s)
		}
	}
	if end != "" {
		v, err := parseRangeValue[T](end)
		if err != nil {
			return Range[T]{}, fmt.Errorf("range end: %w", err)
		}
		r.End = Bound[T]{Kind: kind, Value: v}
	}

	return r, nil
}

// parseRangeValue reads a decimal number, or hexadecimal after a 0x or U+
// prefix. Leading zeros stay decimal.
func parseRangeValue[T Integer](s string) (T, error) {
	digits, base := s, 10
	for _, prefix := range []string{"0x", "0X", "U+", "u+"} {
		if strings.HasPrefix(s, prefix) {
			digits, base = s[len(prefix):], 16
			break
		}
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	if int64(T(n)) != n {
		return 0, fmt.Errorf("value %q out of range", s)
	}
	return T(n), nil
}
