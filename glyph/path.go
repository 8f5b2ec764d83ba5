package glyph

import (
	"math"

	"github.com/tsawler/glyphtab/model"
)

// SegmentType defines the type of path segment
type SegmentType int

const (
	// MoveTo starts a new subpath
	MoveTo SegmentType = iota
	// LineTo draws a line to a point
	LineTo
	// QuadTo draws a quadratic Bézier curve
	QuadTo
	// CubeTo draws a cubic Bézier curve
	CubeTo
	// Close closes the current subpath
	Close
)

// String returns a string representation of the segment type
func (t SegmentType) String() string {
	switch t {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubeTo:
		return "C"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// Segment represents a single segment of a path
type Segment struct {
	Type SegmentType

	// For MoveTo and LineTo: single point
	// For QuadTo: control point, end point
	// For CubeTo: control point 1, control point 2, end point
	Points []model.Point
}

// Path is a glyph outline in absolute coordinates
type Path struct {
	// Segments contains all the path segments
	Segments []Segment

	// CurrentPoint is the current point
	CurrentPoint model.Point

	// SubpathStart is the start of the current subpath (for Close)
	SubpathStart model.Point

	// HasCurrentPoint indicates if a current point has been set
	HasCurrentPoint bool
}

// NewPath creates a new empty path
func NewPath() *Path {
	return &Path{
		Segments: make([]Segment, 0),
	}
}

// MoveTo starts a new subpath at the specified point
func (p *Path) MoveTo(x, y float64) {
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{
		Type:   MoveTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
	p.SubpathStart = pt
	p.HasCurrentPoint = true
}

// LineTo appends a line segment from the current point to (x, y)
func (p *Path) LineTo(x, y float64) {
	if !p.HasCurrentPoint {
		// Treat as moveto if no current point
		p.MoveTo(x, y)
		return
	}

	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{
		Type:   LineTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
}

// QuadTo appends a quadratic Bézier curve with control point (x1, y1)
func (p *Path) QuadTo(x1, y1, x2, y2 float64) {
	if !p.HasCurrentPoint {
		p.MoveTo(x1, y1)
	}

	p.Segments = append(p.Segments, Segment{
		Type:   QuadTo,
		Points: []model.Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
	})
	p.CurrentPoint = model.Point{X: x2, Y: y2}
}

// CubeTo appends a cubic Bézier curve.
// Control points (x1, y1) and (x2, y2), end point (x3, y3)
func (p *Path) CubeTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.HasCurrentPoint {
		p.MoveTo(x1, y1)
	}

	p.Segments = append(p.Segments, Segment{
		Type: CubeTo,
		Points: []model.Point{
			{X: x1, Y: y1},
			{X: x2, Y: y2},
			{X: x3, Y: y3},
		},
	})
	p.CurrentPoint = model.Point{X: x3, Y: y3}
}

// ClosePath closes the current subpath
func (p *Path) ClosePath() {
	if !p.HasCurrentPoint {
		return
	}

	p.Segments = append(p.Segments, Segment{
		Type: Close,
	})

	// Move current point back to subpath start
	p.CurrentPoint = p.SubpathStart
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Bounds returns the smallest rectangle holding every point of the path,
// control points included. ok is false for an empty path.
func (p *Path) Bounds() (min, max model.Point, ok bool) {
	min = model.Point{X: math.MaxFloat64, Y: math.MaxFloat64}
	max = model.Point{X: -math.MaxFloat64, Y: -math.MaxFloat64}

	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			min.X = math.Min(min.X, pt.X)
			min.Y = math.Min(min.Y, pt.Y)
			max.X = math.Max(max.X, pt.X)
			max.Y = math.Max(max.Y, pt.Y)
			ok = true
		}
	}

	if !ok {
		return model.Point{}, model.Point{}, false
	}
	return min, max, true
}

// Transform returns a copy of the path with every point mapped through m
func (p *Path) Transform(m model.Matrix) *Path {
	out := &Path{
		Segments:        make([]Segment, len(p.Segments)),
		CurrentPoint:    m.Transform(p.CurrentPoint),
		SubpathStart:    m.Transform(p.SubpathStart),
		HasCurrentPoint: p.HasCurrentPoint,
	}
	for i, seg := range p.Segments {
		pts := make([]model.Point, len(seg.Points))
		for j, pt := range seg.Points {
			pts[j] = m.Transform(pt)
		}
		out.Segments[i] = Segment{Type: seg.Type, Points: pts}
	}
	return out
}
