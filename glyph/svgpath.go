package glyph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tsawler/glyphtab/model"
)

var (
	// ErrPathSyntax is returned for path data that cannot be scanned
	ErrPathSyntax = errors.New("glyph: path syntax error")

	// ErrUnsupportedCommand is returned for elliptical arcs, which glyph
	// outlines never contain
	ErrUnsupportedCommand = errors.New("glyph: unsupported path command")
)

// PathParser parses SVG path data into a Path.
type PathParser struct {
	data []byte
	pos  int
	path *Path

	// reflection points for the smooth curve commands S and T
	lastCubic model.Point
	lastQuad  model.Point
	lastCmd   byte
}

// NewPathParser creates a new path parser for the given path data.
func NewPathParser(d string) *PathParser {
	return &PathParser{
		data: []byte(d),
		path: NewPath(),
	}
}

// ParsePath is a convenience wrapper around NewPathParser(d).Parse().
func ParsePath(d string) (*Path, error) {
	return NewPathParser(d).Parse()
}

// Parse scans the path data and returns the outline with all coordinates
// made absolute. Supported commands are M, L, H, V, C, S, Q, T and Z in both
// absolute and relative form.
func (p *PathParser) Parse() (*Path, error) {
	var cmd byte

	for {
		p.skipSeparators()
		if p.pos >= len(p.data) {
			break
		}

		c := p.data[p.pos]
		if isCommand(c) {
			cmd = c
			p.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("%w: at position %d: data must start with a command", ErrPathSyntax, p.pos)
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("%w: at position %d: number after close", ErrPathSyntax, p.pos)
		}

		if err := p.execute(cmd); err != nil {
			return nil, fmt.Errorf("at position %d: %w", p.pos, err)
		}

		// An implicit command after a moveto is a lineto
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}

	return p.path, nil
}

// execute runs one command with one set of arguments.
func (p *PathParser) execute(cmd byte) error {
	cur := p.path.CurrentPoint
	rel := cmd >= 'a' && cmd <= 'z'
	offset := func(x, y float64) (float64, float64) {
		if rel {
			return cur.X + x, cur.Y + y
		}
		return x, y
	}

	switch cmd {
	case 'M', 'm':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		x, y := offset(a[0], a[1])
		p.path.MoveTo(x, y)

	case 'L', 'l':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		x, y := offset(a[0], a[1])
		p.path.LineTo(x, y)

	case 'H', 'h':
		a, err := p.numbers(1)
		if err != nil {
			return err
		}
		x := a[0]
		if rel {
			x += cur.X
		}
		p.path.LineTo(x, cur.Y)

	case 'V', 'v':
		a, err := p.numbers(1)
		if err != nil {
			return err
		}
		y := a[0]
		if rel {
			y += cur.Y
		}
		p.path.LineTo(cur.X, y)

	case 'C', 'c':
		a, err := p.numbers(6)
		if err != nil {
			return err
		}
		x1, y1 := offset(a[0], a[1])
		x2, y2 := offset(a[2], a[3])
		x, y := offset(a[4], a[5])
		p.path.CubeTo(x1, y1, x2, y2, x, y)
		p.lastCubic = model.Point{X: x2, Y: y2}

	case 'S', 's':
		a, err := p.numbers(4)
		if err != nil {
			return err
		}
		x1, y1 := cur.X, cur.Y
		if isCubicCommand(p.lastCmd) {
			x1, y1 = 2*cur.X-p.lastCubic.X, 2*cur.Y-p.lastCubic.Y
		}
		x2, y2 := offset(a[0], a[1])
		x, y := offset(a[2], a[3])
		p.path.CubeTo(x1, y1, x2, y2, x, y)
		p.lastCubic = model.Point{X: x2, Y: y2}

	case 'Q', 'q':
		a, err := p.numbers(4)
		if err != nil {
			return err
		}
		x1, y1 := offset(a[0], a[1])
		x, y := offset(a[2], a[3])
		p.path.QuadTo(x1, y1, x, y)
		p.lastQuad = model.Point{X: x1, Y: y1}

	case 'T', 't':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		x1, y1 := cur.X, cur.Y
		if isQuadCommand(p.lastCmd) {
			x1, y1 = 2*cur.X-p.lastQuad.X, 2*cur.Y-p.lastQuad.Y
		}
		x, y := offset(a[0], a[1])
		p.path.QuadTo(x1, y1, x, y)
		p.lastQuad = model.Point{X: x1, Y: y1}

	case 'Z', 'z':
		p.path.ClosePath()

	case 'A', 'a':
		return fmt.Errorf("%w: %c", ErrUnsupportedCommand, cmd)
	}

	p.lastCmd = cmd
	return nil
}

// numbers reads n numbers separated by whitespace and/or commas.
func (p *PathParser) numbers(n int) ([]float64, error) {
	result := make([]float64, n)
	for i := range result {
		p.skipSeparators()
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// number scans one number. Numbers may run together where the grammar allows
// it, as in "1-2" or ".5.5".
func (p *PathParser) number() (float64, error) {
	start := p.pos
	if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		p.pos++
	}

	digits, dot := 0, false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		p.pos++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: expected number at position %d", ErrPathSyntax, start)
	}

	// Exponent
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		expDigits := 0
		for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
			p.pos++
			expDigits++
		}
		if expDigits == 0 {
			p.pos = save
		}
	}

	v, err := strconv.ParseFloat(string(p.data[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPathSyntax, err)
	}
	return v, nil
}

// skipSeparators skips whitespace and commas
func (p *PathParser) skipSeparators() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.pos++
		default:
			return
		}
	}
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'Z', 'z', 'A', 'a':
		return true
	}
	return false
}

func isCubicCommand(c byte) bool {
	return c == 'C' || c == 'c' || c == 'S' || c == 's'
}

func isQuadCommand(c byte) bool {
	return c == 'Q' || c == 'q' || c == 'T' || c == 't'
}
