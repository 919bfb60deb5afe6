package shape

const (
	// PreviewStrokeWidth is the rubber-band outline width.
	PreviewStrokeWidth = 3.0
	// FinalStrokeWidth is used for lines and transparent outlines.
	FinalStrokeWidth = 8.0
)

// Style selects whether a primitive is filled or outlined.
type Style int

const (
	StyleFill Style = iota
	StyleStroke
)

func (s Style) String() string {
	if s == StyleStroke {
		return "stroke"
	}
	return "fill"
}

// Paint carries everything a Target needs to draw one primitive.
type Paint struct {
	Color Color
	Style Style
	Width float64
}

// Rect is an axis-aligned box in canvas coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Target receives draw calls. Implementations decide how primitives are
// rasterised; shapes only choose geometry and paint.
type Target interface {
	DrawOval(r Rect, p Paint)
	DrawCircle(cx, cy, radius float64, p Paint)
	DrawRect(r Rect, p Paint)
	DrawLine(x0, y0, x1, y1 float64, p Paint)
}

// Render draws s onto t. In preview mode the shape's colour is ignored and
// every kind is outlined in Accent.
func Render(s Shape, t Target, preview bool) {
	if s == nil || t == nil {
		return
	}
	s.draw(t, paintFor(s.Geom().Color, preview))
}

func paintFor(col Color, preview bool) Paint {
	if preview {
		return Paint{Color: Accent, Style: StyleStroke, Width: PreviewStrokeWidth}
	}
	if col == Transparent {
		return Paint{Color: Black, Style: StyleStroke, Width: FinalStrokeWidth}
	}
	return Paint{Color: col, Style: StyleFill, Width: FinalStrokeWidth}
}

func (e Ellipse) draw(t Target, p Paint) { t.DrawOval(e.Box(), p) }

func (c Circle) draw(t Target, p Paint) { t.DrawCircle(c.StartX, c.StartY, c.Radius(), p) }

func (r Rectangle) draw(t Target, p Paint) { t.DrawRect(r.Box(), p) }

func (l Line) draw(t Target, p Paint) {
	p.Style = StyleStroke
	t.DrawLine(l.StartX, l.StartY, l.EndX, l.EndY, p)
}
