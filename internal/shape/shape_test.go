package shape_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/shape"
)

const red shape.Color = 0xFFFF0000

func render(s shape.Shape, preview bool) []canvas.Op {
	var rec canvas.Recorder
	shape.Render(s, &rec, preview)
	return rec.Ops
}

func TestNewProducesRequestedKind(t *testing.T) {
	for _, k := range shape.Kinds() {
		s := shape.New(k, 1, 2, 3, 4, red)
		assert.Equal(t, k, s.Kind())
		g := s.Geom()
		assert.Equal(t, shape.Geometry{ID: g.ID, StartX: 1, StartY: 2, EndX: 3, EndY: 4, Color: red}, g)
	}
	assert.Equal(t, shape.KindEllipse, shape.New(shape.Kind(99), 0, 0, 0, 0, red).Kind())
}

func TestNewAssignsFreshIdentity(t *testing.T) {
	a := shape.New(shape.KindLine, 0, 0, 1, 1, red)
	b := shape.New(shape.KindLine, 0, 0, 1, 1, red)
	assert.NotEqual(t, a.Geom().ID, b.Geom().ID)
}

func TestFinalRender(t *testing.T) {
	tests := []struct {
		kind   shape.Kind
		prim   canvas.Primitive
		coords []float64
		style  shape.Style
	}{
		{shape.KindEllipse, canvas.PrimOval, []float64{2, 5, 10, 20}, shape.StyleFill},
		{shape.KindRectangle, canvas.PrimRect, []float64{2, 5, 10, 20}, shape.StyleFill},
		{shape.KindCircle, canvas.PrimCircle, []float64{10, 20, math.Hypot(8, 15)}, shape.StyleFill},
		{shape.KindLine, canvas.PrimLine, []float64{10, 20, 2, 5}, shape.StyleStroke},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			// Dragged up and to the left: the box must still be normalised.
			ops := render(shape.New(tt.kind, 10, 20, 2, 5, red), false)
			require.Len(t, ops, 1)
			assert.Equal(t, tt.prim, ops[0].Prim)
			assert.InDeltaSlice(t, tt.coords, ops[0].Coords, 1e-9)
			assert.Equal(t, shape.Paint{Color: red, Style: tt.style, Width: shape.FinalStrokeWidth}, ops[0].Paint)
		})
	}
}

func TestPreviewRenderIgnoresColor(t *testing.T) {
	for _, k := range shape.Kinds() {
		for _, col := range []shape.Color{red, shape.Transparent, shape.White} {
			ops := render(shape.New(k, 0, 0, 5, 5, col), true)
			require.Len(t, ops, 1)
			assert.Equal(t, shape.Paint{Color: shape.Accent, Style: shape.StyleStroke, Width: shape.PreviewStrokeWidth}, ops[0].Paint, k.String())
		}
	}
}

func TestTransparentFillBecomesBlackOutline(t *testing.T) {
	for _, k := range []shape.Kind{shape.KindEllipse, shape.KindCircle, shape.KindRectangle, shape.KindLine} {
		ops := render(shape.New(k, 0, 0, 30, 40, shape.Transparent), false)
		require.Len(t, ops, 1)
		assert.Equal(t, shape.Black, ops[0].Paint.Color, k.String())
		assert.Equal(t, shape.StyleStroke, ops[0].Paint.Style, k.String())
	}
}

func TestRenderIsDeterministicAndPure(t *testing.T) {
	for _, k := range shape.Kinds() {
		s := shape.New(k, -3.5, 7.25, 12, -9, 0x80102030)
		before := s.Geom()
		assert.Equal(t, render(s, false), render(s, false))
		assert.Equal(t, render(s, true), render(s, true))
		assert.Equal(t, before, s.Geom())
	}
}

func TestDegenerateShapesRender(t *testing.T) {
	for _, k := range shape.Kinds() {
		ops := render(shape.New(k, 4, 4, 4, 4, red), false)
		assert.Len(t, ops, 1, k.String())
	}
}

func TestRenderNilIsNoop(t *testing.T) {
	var rec canvas.Recorder
	shape.Render(nil, &rec, false)
	assert.Empty(t, rec.Ops)
}

func TestBounds(t *testing.T) {
	r := shape.Bounds(shape.New(shape.KindRectangle, 10, 10, 20, 30, red))
	assert.True(t, r.Min.X <= 10-4 && r.Min.Y <= 10-4)
	assert.True(t, r.Max.X >= 20+4 && r.Max.Y >= 30+4)

	c := shape.Bounds(shape.New(shape.KindCircle, 50, 50, 53, 54, red))
	assert.True(t, c.Min.X <= 45 && c.Max.X >= 55)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]shape.Kind{
		"ellipse": shape.KindEllipse, "Oval": shape.KindEllipse,
		"circle": shape.KindCircle, "RECT": shape.KindRectangle,
		"rectangle": shape.KindRectangle, " line ": shape.KindLine,
	} {
		got, err := shape.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := shape.ParseKind("triangle")
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	c := shape.ARGB(0x80, 0x11, 0x22, 0x33)
	assert.Equal(t, shape.Color(0x80112233), c)
	assert.Equal(t, "#80112233", c.Hex())
	assert.Equal(t, "#FF0000", red.Hex())
	assert.Equal(t, c, shape.FromColor(c.NRGBA()))
}
