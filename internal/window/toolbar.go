package window

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/theme"
)

const (
	buttonHeight = 24
	swatchSize   = 16
	swatchGap    = 2
	statusHeight = 20
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// labelButton is a text button: a shape picker entry or a command.
type labelButton struct {
	label    string
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func()
}

func (b *labelButton) Draw(dst *image.RGBA, state ButtonState) {
	c := b.theme.ButtonBackground
	switch state {
	case StateHover:
		c = b.theme.ButtonBackgroundHover
	case StatePressed:
		c = b.theme.ButtonBackgroundActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	outline(dst, b.rect, b.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(b.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *labelButton) Rect() image.Rectangle     { return b.rect }
func (b *labelButton) SetRect(r image.Rectangle) { b.rect = r }
func (b *labelButton) Activate() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// swatchButton picks one palette colour. Transparent is shown as a
// checkerboard.
type swatchButton struct {
	entry    palette.Entry
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func()
}

func (s *swatchButton) Draw(dst *image.RGBA, state ButtonState) {
	if s.entry.Color.A() == 0 {
		drawCheckerboard(dst, s.rect, 4, color.RGBA{220, 220, 220, 255}, color.RGBA{160, 160, 160, 255})
	} else {
		draw.Draw(dst, s.rect, image.NewUniform(s.entry.Color), image.Point{}, draw.Src)
	}
	if state == StateHover {
		draw.Draw(dst, s.rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
	}
	outline(dst, s.rect, s.theme.SwatchBorder)
}

func (s *swatchButton) Rect() image.Rectangle     { return s.rect }
func (s *swatchButton) SetRect(r image.Rectangle) { s.rect = r }
func (s *swatchButton) Activate() {
	if s.onSelect != nil {
		s.onSelect()
	}
}

// toolbar is the left-hand column: shape pickers, the colour palette and
// the history/export commands.
type toolbar struct {
	theme    *theme.Theme
	width    int
	shapes   []*CacheButton
	kinds    []shape.Kind
	swatches []*CacheButton
	commands []*CacheButton
	hover    Button
}

var commandLabels = []struct {
	label string
	kind  actionKind
}{
	{"Undo", actUndo},
	{"Redo", actRedo},
	{"Clear", actClear},
	{"Save", actSave},
	{"Copy", actCopy},
}

var shapeLabels = map[shape.Kind]string{
	shape.KindEllipse:   "E:Oval",
	shape.KindCircle:    "O:Circle",
	shape.KindRectangle: "X:Rect",
	shape.KindLine:      "L:Line",
}

func newToolbar(th *theme.Theme, apply func(action)) *toolbar {
	tb := &toolbar{theme: th}
	labels := []string{"shapepad"}
	for _, k := range shape.Kinds() {
		tb.kinds = append(tb.kinds, k)
		tb.shapes = append(tb.shapes, &CacheButton{Button: &labelButton{
			label: shapeLabels[k], theme: th,
			onSelect: func() { apply(action{kind: actShape, shape: k}) },
		}})
		labels = append(labels, shapeLabels[k])
	}
	for i, e := range palette.Colors() {
		tb.swatches = append(tb.swatches, &CacheButton{Button: &swatchButton{
			entry: e, theme: th,
			onSelect: func() { apply(action{kind: actColor, color: i}) },
		}})
	}
	for _, c := range commandLabels {
		tb.commands = append(tb.commands, &CacheButton{Button: &labelButton{
			label: c.label, theme: th,
			onSelect: func() { apply(action{kind: c.kind}) },
		}})
		labels = append(labels, c.label)
	}

	// Wide enough for every label and at least two swatches per row.
	d := &font.Drawer{Face: basicfont.Face7x13}
	tb.width = 2*(swatchSize+swatchGap) + 4
	for _, l := range labels {
		if w := d.MeasureString(l).Ceil() + 8; w > tb.width {
			tb.width = w
		}
	}
	tb.layout()
	return tb
}

func (tb *toolbar) layout() {
	y := 0
	for _, b := range tb.shapes {
		b.SetRect(image.Rect(0, y, tb.width, y+buttonHeight))
		y += buttonHeight
	}
	y += 4
	x := 4
	for _, b := range tb.swatches {
		if x+swatchSize > tb.width {
			x = 4
			y += swatchSize + swatchGap
		}
		b.SetRect(image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
	}
	y += swatchSize + 6
	for _, b := range tb.commands {
		b.SetRect(image.Rect(0, y, tb.width, y+buttonHeight))
		y += buttonHeight
	}
}

// height is the minimum window height that shows every button.
func (tb *toolbar) height() int {
	last := tb.commands[len(tb.commands)-1]
	return last.Rect().Max.Y
}

// hit returns the button under p, or nil.
func (tb *toolbar) hit(p image.Point) Button {
	for _, group := range [][]*CacheButton{tb.shapes, tb.swatches, tb.commands} {
		for _, b := range group {
			if p.In(b.Rect()) {
				return b
			}
		}
	}
	return nil
}

func (tb *toolbar) stateOf(b Button, pressed bool) ButtonState {
	switch {
	case pressed:
		return StatePressed
	case b == tb.hover:
		return StateHover
	}
	return StateDefault
}

// draw paints the toolbar column of height h with kind and col marked as
// the active choices.
func (tb *toolbar) draw(dst *image.RGBA, h int, kind shape.Kind, col shape.Color) {
	draw.Draw(dst, image.Rect(0, 0, tb.width, h), &image.Uniform{tb.theme.ToolbarBackground}, image.Point{}, draw.Src)
	for i, b := range tb.shapes {
		b.Draw(dst, tb.stateOf(b, tb.kinds[i] == kind))
	}
	active := palette.Index(col)
	for i, b := range tb.swatches {
		b.Draw(dst, tb.stateOf(b, false))
		if i == active {
			outline(dst, b.Rect().Inset(-1), tb.theme.SwatchSelected)
			outline(dst, b.Rect(), tb.theme.SwatchSelected)
		}
	}
	for _, b := range tb.commands {
		b.Draw(dst, tb.stateOf(b, false))
	}
}

// outline draws a one pixel border just inside r.
func outline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
