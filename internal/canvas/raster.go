package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/shapepad/internal/shape"
)

// Raster draws shapes straight into an RGBA image using scanline and
// Bresenham primitives clipped to the image. It is aliased but needs no
// drawing context, so it also works on images owned by someone else.
type Raster struct {
	Img *image.RGBA
}

var _ shape.Target = (*Raster)(nil)

// NewRaster allocates a width x height image filled with background.
func NewRaster(width, height int, background shape.Color) *Raster {
	return &Raster{Img: NewImage(width, height, background)}
}

func (r *Raster) DrawOval(b shape.Rect, p shape.Paint) {
	cx, cy := (b.Left+b.Right)/2, (b.Top+b.Bottom)/2
	rx, ry := b.Width()/2, b.Height()/2
	if p.Style == shape.StyleStroke {
		strokeEllipse(r.Img, cx, cy, rx, ry, thickness(p), p.Color)
		return
	}
	fillEllipse(r.Img, cx, cy, rx, ry, p.Color)
}

func (r *Raster) DrawCircle(cx, cy, radius float64, p shape.Paint) {
	if p.Style == shape.StyleStroke {
		strokeEllipse(r.Img, cx, cy, radius, radius, thickness(p), p.Color)
		return
	}
	fillEllipse(r.Img, cx, cy, radius, radius, p.Color)
}

func (r *Raster) DrawRect(b shape.Rect, p shape.Paint) {
	thick := thickness(p)
	pad := float64(thick + 1)
	bounds := r.Img.Bounds()
	minX, maxX := float64(bounds.Min.X)-pad, float64(bounds.Max.X)+pad
	minY, maxY := float64(bounds.Min.Y)-pad, float64(bounds.Max.Y)+pad
	rect := image.Rect(
		round(clampf(b.Left, minX, maxX)), round(clampf(b.Top, minY, maxY)),
		round(clampf(b.Right, minX, maxX)), round(clampf(b.Bottom, minY, maxY)),
	)
	if p.Style == shape.StyleStroke {
		drawRect(r.Img, rect, p.Color, thick)
		return
	}
	draw.Draw(r.Img, rect.Intersect(bounds), image.NewUniform(p.Color.NRGBA()), image.Point{}, draw.Over)
}

func (r *Raster) DrawLine(x0, y0, x1, y1 float64, p shape.Paint) {
	drawLine(r.Img, x0, y0, x1, y1, p.Color, thickness(p))
}

func round(v float64) int { return int(math.Round(v)) }

// clampf bounds v to [lo, hi]; NaN maps to lo.
func clampf(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	return min(v, hi)
}

func thickness(p shape.Paint) int {
	t := round(p.Width)
	if t < 1 {
		return 1
	}
	return t
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.RGBA) {
	r := thick / 2
	area := image.Rect(x-r, y-r, x+r+1, y+r+1).Intersect(img.Bounds())
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			img.SetRGBA(px, py, col)
		}
	}
}

// clipSegment clips a segment to r grown by pad on every side
// (Liang-Barsky). ok is false when nothing of the segment is inside.
func clipSegment(x0, y0, x1, y1 float64, r image.Rectangle, pad float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	minX, maxX := float64(r.Min.X)-pad, float64(r.Max.X-1)+pad
	minY, maxY := float64(r.Min.Y)-pad, float64(r.Max.Y-1)+pad
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
	}
	// Rejects NaN input too.
	if !(t0 <= t1) {
		return 0, 0, 0, 0, false
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// drawLine clips the segment to the image before running Bresenham, so
// the cost depends on the visible part only.
func drawLine(img *image.RGBA, fx0, fy0, fx1, fy1 float64, c color.Color, thick int) {
	fx0, fy0, fx1, fy1, ok := clipSegment(fx0, fy0, fx1, fy1, img.Bounds(), float64(thick/2+1))
	if !ok {
		return
	}
	col := color.RGBAModel.Convert(c).(color.RGBA)
	x0, y0, x1, y1 := round(fx0), round(fy0), round(fx1), round(fy1)
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rows returns the image rows within [cy-r, cy+r].
func rows(b image.Rectangle, cy, r float64) (y0, y1 int, ok bool) {
	lo := max(math.Ceil(cy-r), float64(b.Min.Y))
	hi := min(math.Floor(cy+r), float64(b.Max.Y-1))
	if !(lo <= hi) {
		return 0, 0, false
	}
	return int(lo), int(hi), true
}

// span sets the pixels of row y whose centres lie in [x0, x1].
func span(img *image.RGBA, y int, x0, x1 float64, col color.RGBA) {
	b := img.Bounds()
	lo := max(math.Ceil(x0), float64(b.Min.X))
	hi := min(math.Floor(x1), float64(b.Max.X-1))
	if !(lo <= hi) {
		return
	}
	for x := int(lo); x <= int(hi); x++ {
		img.SetRGBA(x, y, col)
	}
}

// halfWidth is the horizontal half extent of an ellipse with semi-axes
// a and b at vertical offset dy, or -1 outside it.
func halfWidth(a, b, dy float64) float64 {
	t := 1.0
	if b > 0 {
		t = 1 - dy*dy/(b*b)
	} else if dy != 0 {
		return -1
	}
	if t < 0 {
		return -1
	}
	return a * math.Sqrt(t)
}

// fillEllipse scans only the rows and columns inside the image.
func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, c color.Color) {
	y0, y1, ok := rows(img.Bounds(), cy, ry)
	if !ok {
		return
	}
	col := color.RGBAModel.Convert(c).(color.RGBA)
	for y := y0; y <= y1; y++ {
		w := halfWidth(rx, ry, float64(y)-cy)
		if w < 0 {
			continue
		}
		span(img, y, cx-w, cx+w, col)
	}
}

// strokeEllipse fills the band between the ellipses grown and shrunk by
// half the stroke width, row by row within the image.
func strokeEllipse(img *image.RGBA, cx, cy, rx, ry float64, thick int, c color.Color) {
	h := float64(thick) / 2
	outerX, outerY := rx+h, ry+h
	innerX, innerY := rx-h, ry-h
	y0, y1, ok := rows(img.Bounds(), cy, outerY)
	if !ok {
		return
	}
	col := color.RGBAModel.Convert(c).(color.RGBA)
	for y := y0; y <= y1; y++ {
		dy := float64(y) - cy
		wo := halfWidth(outerX, outerY, dy)
		if wo < 0 {
			continue
		}
		wi := -1.0
		if innerX > 0 && innerY > 0 {
			wi = halfWidth(innerX, innerY, dy)
		}
		if wi < 0 {
			span(img, y, cx-wo, cx+wo, col)
			continue
		}
		// Keep at least one pixel per side so thin rings stay closed.
		left, right := math.Ceil(cx-wo), math.Floor(cx+wo)
		span(img, y, left, max(math.Floor(cx-wi), left), col)
		span(img, y, min(math.Ceil(cx+wi), right), right, col)
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	x0, y0 := float64(rect.Min.X), float64(rect.Min.Y)
	x1, y1 := float64(rect.Max.X), float64(rect.Max.Y)
	drawLine(img, x0, y0, x1, y0, col, thick)
	drawLine(img, x1, y0, x1, y1, col, thick)
	drawLine(img, x1, y1, x0, y1, col, thick)
	drawLine(img, x0, y1, x0, y0, col, thick)
}
