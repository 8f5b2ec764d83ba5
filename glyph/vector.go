package glyph

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// VectorRasterizer renders glyphs with golang.org/x/image/vector.
type VectorRasterizer struct {
	config Config
}

// NewVectorRasterizer creates a rasterizer with default configuration
func NewVectorRasterizer() *VectorRasterizer {
	return NewVectorRasterizerWithConfig(DefaultConfig())
}

// NewVectorRasterizerWithConfig creates a rasterizer with custom configuration
func NewVectorRasterizerWithConfig(config Config) *VectorRasterizer {
	return &VectorRasterizer{config: config}
}

// Rasterize draws the glyph black on white, centred on the bitmap.
func (r *VectorRasterizer) Rasterize(pathData string) (*image.Gray, error) {
	path, err := r.config.placement(pathData)
	if err != nil {
		return nil, err
	}

	img := r.config.blank()

	rast := vector.NewRasterizer(r.config.Size, r.config.Size)
	rast.DrawOp = draw.Over
	open := false
	for _, seg := range path.Segments {
		pts := seg.Points
		switch seg.Type {
		case MoveTo:
			// an unclosed subpath would fill to the edge of the bitmap
			if open {
				rast.ClosePath()
			}
			rast.MoveTo(float32(pts[0].X), float32(pts[0].Y))
			open = true
		case LineTo:
			rast.LineTo(float32(pts[0].X), float32(pts[0].Y))
		case QuadTo:
			rast.QuadTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
			)
		case CubeTo:
			rast.CubeTo(
				float32(pts[0].X), float32(pts[0].Y),
				float32(pts[1].X), float32(pts[1].Y),
				float32(pts[2].X), float32(pts[2].Y),
			)
		case Close:
			rast.ClosePath()
			open = false
		}
	}
	if open {
		rast.ClosePath()
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})

	return img, nil
}
