package glyph

import (
	"image"
	"image/draw"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"
)

// FreetypeRasterizer renders glyphs with the freetype scan converter using
// the non-zero winding rule.
type FreetypeRasterizer struct {
	config Config
}

// NewFreetypeRasterizer creates a rasterizer with default configuration
func NewFreetypeRasterizer() *FreetypeRasterizer {
	return NewFreetypeRasterizerWithConfig(DefaultConfig())
}

// NewFreetypeRasterizerWithConfig creates a rasterizer with custom configuration
func NewFreetypeRasterizerWithConfig(config Config) *FreetypeRasterizer {
	return &FreetypeRasterizer{config: config}
}

// Rasterize draws the glyph black on white, centred on the bitmap.
func (r *FreetypeRasterizer) Rasterize(pathData string) (*image.Gray, error) {
	path, err := r.config.placement(pathData)
	if err != nil {
		return nil, err
	}

	size := r.config.Size
	rast := raster.NewRasterizer(size, size)
	rast.UseNonZeroWinding = true

	var start fixed.Point26_6
	open := false
	for _, seg := range path.Segments {
		pts := seg.Points
		switch seg.Type {
		case MoveTo:
			if open {
				rast.Add1(start)
			}
			start = toFixed(pts[0].X, pts[0].Y)
			rast.Start(start)
			open = true
		case LineTo:
			rast.Add1(toFixed(pts[0].X, pts[0].Y))
		case QuadTo:
			rast.Add2(toFixed(pts[0].X, pts[0].Y), toFixed(pts[1].X, pts[1].Y))
		case CubeTo:
			rast.Add3(toFixed(pts[0].X, pts[0].Y), toFixed(pts[1].X, pts[1].Y), toFixed(pts[2].X, pts[2].Y))
		case Close:
			if open {
				rast.Add1(start)
				open = false
			}
		}
	}
	if open {
		rast.Add1(start)
	}

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	rast.Rasterize(raster.NewAlphaSrcPainter(mask))

	img := r.config.blank()
	draw.DrawMask(img, img.Bounds(), image.Black, image.Point{}, mask, image.Point{}, draw.Over)
	return img, nil
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}
}
