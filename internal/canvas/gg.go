package canvas

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/example/shapepad/internal/shape"
)

// GG rasterises shapes with anti-aliasing through a gg drawing context.
// The first fill or stroke failure is kept and reported by Err.
type GG struct {
	dc  *gg.Context
	err error
}

var _ shape.Target = (*GG)(nil)

// NewGG creates a width x height context cleared to background.
func NewGG(width, height int, background shape.Color) *GG {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(background.NRGBA()))
	return &GG{dc: dc}
}

// Image returns the rendered pixels.
func (g *GG) Image() image.Image { return g.dc.Image() }

// Err reports the first rendering failure, if any.
func (g *GG) Err() error { return g.err }

// Close releases the underlying context.
func (g *GG) Close() error { return g.dc.Close() }

func (g *GG) DrawOval(r shape.Rect, p shape.Paint) {
	g.dc.DrawEllipse((r.Left+r.Right)/2, (r.Top+r.Bottom)/2, r.Width()/2, r.Height()/2)
	g.finish(p)
}

func (g *GG) DrawCircle(cx, cy, radius float64, p shape.Paint) {
	g.dc.DrawCircle(cx, cy, radius)
	g.finish(p)
}

func (g *GG) DrawRect(r shape.Rect, p shape.Paint) {
	g.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	g.finish(p)
}

func (g *GG) DrawLine(x0, y0, x1, y1 float64, p shape.Paint) {
	g.dc.DrawLine(x0, y0, x1, y1)
	g.finish(p)
}

func (g *GG) finish(p shape.Paint) {
	g.dc.SetColor(p.Color.NRGBA())
	var err error
	if p.Style == shape.StyleStroke {
		g.dc.SetLineWidth(p.Width)
		err = g.dc.Stroke()
	} else {
		err = g.dc.Fill()
	}
	if err != nil && g.err == nil {
		g.err = err
	}
}
