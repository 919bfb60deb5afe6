package canvas

import (
	"fmt"

	"github.com/example/shapepad/internal/shape"
)

// Primitive names the Target method an Op was recorded from.
type Primitive string

const (
	PrimOval   Primitive = "oval"
	PrimCircle Primitive = "circle"
	PrimRect   Primitive = "rect"
	PrimLine   Primitive = "line"
)

// Op is a single recorded draw call. Coords holds the arguments in call
// order: a box for ovals and rectangles, centre and radius for circles, the
// two endpoints for lines.
type Op struct {
	Prim   Primitive
	Coords []float64
	Paint  shape.Paint
}

func (o Op) String() string {
	return fmt.Sprintf("%-6s %v %s %s w=%g", o.Prim, o.Coords, o.Paint.Style, o.Paint.Color.Hex(), o.Paint.Width)
}

// Recorder is a Target that keeps the draw list instead of rasterising it.
type Recorder struct {
	Ops []Op
}

var _ shape.Target = (*Recorder)(nil)

func (r *Recorder) DrawOval(b shape.Rect, p shape.Paint) {
	r.Ops = append(r.Ops, Op{Prim: PrimOval, Coords: []float64{b.Left, b.Top, b.Right, b.Bottom}, Paint: p})
}

func (r *Recorder) DrawCircle(cx, cy, radius float64, p shape.Paint) {
	r.Ops = append(r.Ops, Op{Prim: PrimCircle, Coords: []float64{cx, cy, radius}, Paint: p})
}

func (r *Recorder) DrawRect(b shape.Rect, p shape.Paint) {
	r.Ops = append(r.Ops, Op{Prim: PrimRect, Coords: []float64{b.Left, b.Top, b.Right, b.Bottom}, Paint: p})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 float64, p shape.Paint) {
	r.Ops = append(r.Ops, Op{Prim: PrimLine, Coords: []float64{x0, y0, x1, y1}, Paint: p})
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
