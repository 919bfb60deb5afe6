package window

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/render"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/theme"
)

// frameScene is what the canvas shows: the committed shapes, then the
// rubber-band preview on top.
type frameScene struct {
	shapes  []shape.Shape
	preview shape.Shape
}

func (f frameScene) Render(t shape.Target) {
	canvas.Shapes(f.shapes).Render(t)
	if f.preview != nil {
		shape.Render(f.preview, t, true)
	}
}

// paintState is everything one frame needs, copied off the event loop.
type paintState struct {
	size     image.Point
	canvas   image.Rectangle
	scene    frameScene
	kind     shape.Kind
	color    shape.Color
	count    int
	capacity int
	message  string
}

func colorLabel(c shape.Color) string {
	if name := palette.Name(c); name != palette.OtherName {
		return name
	}
	return c.Hex()
}

func statusText(st paintState) string {
	return fmt.Sprintf("%s  %s  %d/%d", st.kind, colorLabel(st.color), st.count, st.capacity)
}

// composeFrame renders a whole window frame into dst.
func composeFrame(dst *image.RGBA, st paintState, tb *toolbar, th *theme.Theme, r canvas.Renderer, bg shape.Color) error {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	img, err := canvas.Rasterize(st.scene, r, st.canvas.Dx(), st.canvas.Dy(), bg)
	if err != nil {
		return err
	}
	draw.Draw(dst, st.canvas, img, image.Point{}, draw.Src)

	tb.draw(dst, st.size.Y, st.kind, st.color)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.width+4, st.size.Y-6)}
	d.DrawString(statusText(st))

	if st.message != "" {
		drawMessage(dst, st.canvas, st.message)
	}
	return nil
}

// drawMessage shows a boxed notice centred over area.
func drawMessage(dst *image.RGBA, area image.Rectangle, msg string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	w := d.MeasureString(msg).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := area.Min.X + (area.Dx()-w)/2
	py := area.Min.Y + (area.Dy()-ascent-descent)/2 + ascent
	box := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	render.DropShadow(dst, box, render.DefaultShadowOptions())
	draw.Draw(dst, box, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	outline(dst, box, color.Black)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
