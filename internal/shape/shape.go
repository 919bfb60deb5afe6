package shape

import (
	"image"
	"math"

	"github.com/google/uuid"
)

// Geometry holds the attributes every shape shares. All on-screen geometry
// is derived from the two corner points when the shape is drawn.
type Geometry struct {
	ID     uuid.UUID
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
	Color  Color
}

// Shape is a committed or previewed primitive. The set of implementations is
// closed: Ellipse, Circle, Rectangle and Line.
type Shape interface {
	Kind() Kind
	Geom() Geometry
	draw(t Target, p Paint)
}

// Ellipse fills the box spanned by its corner points.
type Ellipse struct{ Geometry }

// Circle is centred on its start point and passes through its end point.
type Circle struct{ Geometry }

// Rectangle fills the box spanned by its corner points.
type Rectangle struct{ Geometry }

// Line is a stroked segment between its two points.
type Line struct{ Geometry }

func (Ellipse) Kind() Kind   { return KindEllipse }
func (Circle) Kind() Kind    { return KindCircle }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Line) Kind() Kind      { return KindLine }

func (g Geometry) Geom() Geometry { return g }

// Box returns the normalised bounding box of the two corner points.
func (g Geometry) Box() Rect {
	return Rect{
		Left:   math.Min(g.StartX, g.EndX),
		Top:    math.Min(g.StartY, g.EndY),
		Right:  math.Max(g.StartX, g.EndX),
		Bottom: math.Max(g.StartY, g.EndY),
	}
}

// Radius returns the distance between the start and end points.
func (g Geometry) Radius() float64 {
	return math.Hypot(g.EndX-g.StartX, g.EndY-g.StartY)
}

// New creates a shape of the given kind. Every call produces a shape with a
// fresh identity, so two shapes with equal coordinates stay distinguishable.
// Unknown kinds produce an Ellipse.
func New(kind Kind, startX, startY, endX, endY float64, col Color) Shape {
	g := Geometry{
		ID:     uuid.New(),
		StartX: startX,
		StartY: startY,
		EndX:   endX,
		EndY:   endY,
		Color:  col,
	}
	switch kind {
	case KindCircle:
		return Circle{g}
	case KindRectangle:
		return Rectangle{g}
	case KindLine:
		return Line{g}
	default:
		return Ellipse{g}
	}
}

// Bounds returns the pixel rectangle a final render of s may touch,
// including stroke padding.
func Bounds(s Shape) image.Rectangle {
	g := s.Geom()
	var r Rect
	if s.Kind() == KindCircle {
		rad := g.Radius()
		r = Rect{Left: g.StartX - rad, Top: g.StartY - rad, Right: g.StartX + rad, Bottom: g.StartY + rad}
	} else {
		r = g.Box()
	}
	pad := FinalStrokeWidth/2 + 1
	return image.Rect(
		int(math.Floor(r.Left-pad)),
		int(math.Floor(r.Top-pad)),
		int(math.Ceil(r.Right+pad)),
		int(math.Ceil(r.Bottom+pad)),
	)
}
