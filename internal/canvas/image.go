package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/example/shapepad/internal/shape"
)

// Renderer names a Target implementation selectable from config or flags.
type Renderer string

const (
	RendererGG     Renderer = "gg"
	RendererRaster Renderer = "raster"
)

// ParseRenderer validates a renderer name. The empty string selects gg.
func ParseRenderer(s string) (Renderer, error) {
	switch Renderer(s) {
	case "", RendererGG:
		return RendererGG, nil
	case RendererRaster:
		return RendererRaster, nil
	}
	return "", fmt.Errorf("unknown renderer %q (want gg or raster)", s)
}

// Scene is anything that can replay itself onto a Target.
type Scene interface {
	Render(t shape.Target)
}

// Shapes is a Scene of committed shapes drawn in order.
type Shapes []shape.Shape

// Render draws every shape in final mode.
func (s Shapes) Render(t shape.Target) {
	for _, sh := range s {
		shape.Render(sh, t, false)
	}
}

// NewImage allocates an RGBA image filled with background.
func NewImage(width, height int, background shape.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
	return img
}

// Rasterize renders scene into a new width x height image using renderer.
func Rasterize(scene Scene, renderer Renderer, width, height int, background shape.Color) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	switch renderer {
	case RendererRaster:
		r := NewRaster(width, height, background)
		scene.Render(r)
		return r.Img, nil
	case RendererGG, "":
		g := NewGG(width, height, background)
		defer g.Close()
		scene.Render(g)
		if err := g.Err(); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		src := g.Image()
		out := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
		return out, nil
	}
	return nil, fmt.Errorf("unknown renderer %q", renderer)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		if cerr := f.Close(); cerr != nil {
			return fmt.Errorf("encode %s: %w (close: %v)", path, err, cerr)
		}
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// EncodePNG writes img to w.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
