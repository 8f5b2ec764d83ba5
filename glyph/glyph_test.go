package glyph

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/glyphtab/model"
)

const unitSquare = "M 0 0 L 1 0 L 1 1 L 0 1 Z"

func TestParsePath_Absolute(t *testing.T) {
	path, err := ParsePath(unitSquare)
	require.NoError(t, err)

	require.Len(t, path.Segments, 5)
	assert.Equal(t, MoveTo, path.Segments[0].Type)
	assert.Equal(t, LineTo, path.Segments[2].Type)
	assert.Equal(t, model.Point{X: 1, Y: 1}, path.Segments[2].Points[0])
	assert.Equal(t, Close, path.Segments[4].Type)
	assert.Equal(t, model.Point{}, path.CurrentPoint)
}

func TestParsePath_Relative(t *testing.T) {
	path, err := ParsePath("m 1 1 l 1 0 v 1 h -1 z m .5 .5 l .1 .1")
	require.NoError(t, err)

	want := []model.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}
	for i, w := range want {
		assert.Equal(t, w, path.Segments[i].Points[0], "segment %d", i)
	}
	// relative moveto after close starts from the subpath start
	assert.Equal(t, model.Point{X: 1.5, Y: 1.5}, path.Segments[5].Points[0])
	assert.InDelta(t, 1.6, path.CurrentPoint.X, 1e-9)
}

func TestParsePath_ImplicitLineTo(t *testing.T) {
	path, err := ParsePath("M0,0 1,0 1,1")
	require.NoError(t, err)

	require.Len(t, path.Segments, 3)
	assert.Equal(t, LineTo, path.Segments[1].Type)
	assert.Equal(t, LineTo, path.Segments[2].Type)
}

func TestParsePath_CompactNumbers(t *testing.T) {
	path, err := ParsePath("M.5-.5L1e1.25")
	require.NoError(t, err)

	assert.Equal(t, model.Point{X: .5, Y: -.5}, path.Segments[0].Points[0])
	assert.Equal(t, model.Point{X: 10, Y: .25}, path.Segments[1].Points[0])
}

func TestParsePath_Curves(t *testing.T) {
	path, err := ParsePath("M 0 0 C 0 1 1 1 1 0 S 2 -1 2 0 Q 3 1 4 0 T 6 0")
	require.NoError(t, err)

	require.Len(t, path.Segments, 5)
	assert.Equal(t, CubeTo, path.Segments[1].Type)

	smooth := path.Segments[2]
	assert.Equal(t, CubeTo, smooth.Type)
	// first control point reflects (1,1) around (1,0)
	assert.Equal(t, model.Point{X: 1, Y: -1}, smooth.Points[0])

	quad := path.Segments[4]
	assert.Equal(t, QuadTo, quad.Type)
	// control point reflects (3,1) around (4,0)
	assert.Equal(t, model.Point{X: 5, Y: -1}, quad.Points[0])
	assert.Equal(t, model.Point{X: 6, Y: 0}, quad.Points[1])
}

func TestParsePath_Errors(t *testing.T) {
	_, err := ParsePath("0 0 L 1 1")
	assert.ErrorIs(t, err, ErrPathSyntax)

	_, err = ParsePath("M 0")
	assert.ErrorIs(t, err, ErrPathSyntax)

	_, err = ParsePath("M 0 0 Z 1 1")
	assert.ErrorIs(t, err, ErrPathSyntax)

	_, err = ParsePath("M 0 0 A 1 1 0 0 1 2 2")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}

func TestPath_Bounds(t *testing.T) {
	path, err := ParsePath("M -1 2 L 3 4 Q 5 -6 0 0")
	require.NoError(t, err)

	min, max, ok := path.Bounds()
	require.True(t, ok)
	assert.Equal(t, model.Point{X: -1, Y: -6}, min)
	assert.Equal(t, model.Point{X: 5, Y: 4}, max)

	_, _, ok = NewPath().Bounds()
	assert.False(t, ok)
}

func TestPath_Transform(t *testing.T) {
	path, err := ParsePath("M 1 1 L 2 2")
	require.NoError(t, err)

	moved := path.Transform(model.Matrix{2, 0, 0, 2, 10, 0})
	assert.Equal(t, model.Point{X: 12, Y: 2}, moved.Segments[0].Points[0])
	// original untouched
	assert.Equal(t, model.Point{X: 1, Y: 1}, path.Segments[0].Points[0])
}

func TestRasterizers(t *testing.T) {
	rasterizers := map[string]Rasterizer{
		"vector":   NewVectorRasterizer(),
		"freetype": NewFreetypeRasterizer(),
	}

	for name, r := range rasterizers {
		t.Run(name, func(t *testing.T) {
			img, err := r.Rasterize(unitSquare)
			require.NoError(t, err)

			assert.Equal(t, 128, img.Bounds().Dx())
			assert.Equal(t, 128, img.Bounds().Dy())

			// 100px square centred on a 128px bitmap covers 14..114
			assert.Equal(t, uint8(0), img.GrayAt(64, 64).Y, "centre should be black")
			assert.Equal(t, uint8(0), img.GrayAt(20, 108).Y, "inside corner should be black")
			assert.Equal(t, uint8(255), img.GrayAt(4, 4).Y, "margin should be white")
			assert.Equal(t, uint8(255), img.GrayAt(120, 64).Y, "right margin should be white")
		})
	}
}

func TestRasterize_FlipY(t *testing.T) {
	// A triangle wide at the bottom in y-up coordinates
	triangle := "M 0 0 L 1 0 L .5 1 Z"

	flipped, err := NewVectorRasterizer().Rasterize(triangle)
	require.NoError(t, err)

	config := DefaultConfig()
	config.FlipY = false
	straight, err := NewVectorRasterizerWithConfig(config).Rasterize(triangle)
	require.NoError(t, err)

	// With the flip the wide base is drawn at the bottom of the image
	assert.Equal(t, uint8(0), flipped.GrayAt(20, 110).Y)
	assert.Equal(t, uint8(255), flipped.GrayAt(20, 18).Y)
	assert.Equal(t, uint8(0), straight.GrayAt(20, 18).Y)
	assert.Equal(t, uint8(255), straight.GrayAt(20, 110).Y)
}

func TestRasterize_UnclosedSubpaths(t *testing.T) {
	// two triangles without Z, side by side
	triangles := "M 0 0 L .4 0 L .2 .5 M .6 0 L 1 0 L .8 .5"

	rasterizers := map[string]Rasterizer{
		"vector":   NewVectorRasterizer(),
		"freetype": NewFreetypeRasterizer(),
	}
	for name, r := range rasterizers {
		t.Run(name, func(t *testing.T) {
			img, err := r.Rasterize(triangles)
			require.NoError(t, err)

			assert.Equal(t, uint8(0), img.GrayAt(44, 79).Y, "left triangle should be black")
			assert.Equal(t, uint8(0), img.GrayAt(84, 79).Y, "right triangle should be black")
			assert.Equal(t, uint8(255), img.GrayAt(64, 79).Y, "gap between triangles should be white")
			assert.Equal(t, uint8(255), img.GrayAt(120, 79).Y, "right margin should be white")
			assert.Equal(t, uint8(255), img.GrayAt(4, 79).Y, "left margin should be white")
		})
	}
}

func TestPlacement_CentresOutline(t *testing.T) {
	path, err := DefaultConfig().placement("M 1 1 L 1.5 1 L 1.5 2 Z")
	require.NoError(t, err)

	min, max, ok := path.Bounds()
	require.True(t, ok)
	// 50 by 100 px, centred on 64 with y flipped
	assert.Equal(t, model.Point{X: 39, Y: 14}, min)
	assert.Equal(t, model.Point{X: 89, Y: 114}, max)
}

func TestRasterize_Errors(t *testing.T) {
	r := NewVectorRasterizer()

	_, err := r.Rasterize("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = r.Rasterize("M 0 0 A 1 1 0 0 1 2 2")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)

	bad := NewFreetypeRasterizerWithConfig(Config{Size: 0, EmSize: 10})
	_, err = bad.Rasterize(unitSquare)
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	img, err := NewVectorRasterizer().Rasterize(unitSquare)
	require.NoError(t, err)

	data, err := EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
