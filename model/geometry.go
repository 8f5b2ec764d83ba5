package model

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Matrix represents a 2D affine transformation matrix [a b c d e f].
// a, b, c, d carry scale and shear, e and f the translation.
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a matrix that moves points by (tx, ty)
func Translate(tx, ty float64) Matrix {
	m := Identity()
	m[4], m[5] = tx, ty
	return m
}

// Scale returns a matrix that scales points by sx and sy
func Scale(sx, sy float64) Matrix {
	m := Identity()
	m[0], m[3] = sx, sy
	return m
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply multiplies two matrices. The result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// ScaleX returns the horizontal scale component (a). The renderer of the
// reference charts encodes the band of a glyph use in this value.
func (m Matrix) ScaleX() float64 {
	return m[0]
}

// X returns the horizontal translation (e).
func (m Matrix) X() float64 {
	return m[4]
}

// Y returns the vertical translation (f).
func (m Matrix) Y() float64 {
	return m[5]
}
