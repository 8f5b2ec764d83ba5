package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/tsawler/glyphtab/model"
)

// ErrEmptyPath is returned when path data holds no drawable segment
var ErrEmptyPath = errors.New("glyph: empty path")

// Rasterizer turns the path data of one glyph into a monochrome bitmap.
type Rasterizer interface {
	Rasterize(pathData string) (*image.Gray, error)
}

// Config holds rasterization parameters
type Config struct {
	// Size is the width and height of the bitmap in pixels (default: 128)
	Size int

	// EmSize is the number of pixels per path unit. Chart glyph outlines are
	// stored in em units, so this is the rendered font size (default: 100)
	EmSize float64

	// FlipY mirrors the outline vertically. Outlines use a y-up coordinate
	// system while images grow downward (default: true)
	FlipY bool
}

// DefaultConfig returns the parameters used for chart cells
func DefaultConfig() Config {
	return Config{
		Size:   128,
		EmSize: 100,
		FlipY:  true,
	}
}

// placement maps parsed path data into bitmap coordinates: scaled by EmSize,
// optionally flipped, and centred on the bitmap by its bounds.
func (c Config) placement(pathData string) (*Path, error) {
	if c.Size <= 0 || c.EmSize <= 0 {
		return nil, fmt.Errorf("glyph: invalid size %d or em size %v", c.Size, c.EmSize)
	}

	path, err := ParsePath(pathData)
	if err != nil {
		return nil, err
	}
	min, max, ok := path.Bounds()
	if !ok {
		return nil, ErrEmptyPath
	}

	sy := c.EmSize
	if c.FlipY {
		sy = -sy
	}
	centerX := (min.X + max.X) / 2
	centerY := (min.Y + max.Y) / 2
	half := float64(c.Size) / 2

	m := model.Translate(-centerX, -centerY).
		Multiply(model.Scale(c.EmSize, sy)).
		Multiply(model.Translate(half, half))
	return path.Transform(m), nil
}

// blank returns a white bitmap of the configured size
func (c Config) blank() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, c.Size, c.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	return img
}

// EncodePNG encodes a bitmap as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("glyph: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
