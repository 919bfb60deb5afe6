// Package render holds image effects shared by the window chrome.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures a drop shadow cast by a rectangular panel.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is the shadow used under toasts.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(3, 4),
		Opacity: 0.45,
	}
}

// Extent returns the area DropShadow may touch for a panel at box.
func (o ShadowOptions) Extent(box image.Rectangle) image.Rectangle {
	return box.Inset(-max(o.Radius, 0)).Add(o.Offset)
}

// DropShadow darkens dst beneath a panel occupying box. It must be called
// before the panel itself is drawn. Pixels outside dst are skipped.
func DropShadow(dst draw.Image, box image.Rectangle, opts ShadowOptions) {
	if dst == nil || box.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	padded := box.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	inner := box.Sub(padded.Min)
	draw.Draw(mask, inner, image.White, image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)

	target := padded.Add(opts.Offset)
	clipped := target.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}
	alpha := int(opacity*255 + 0.5)
	coverage := image.NewAlpha(blurred.Bounds())
	for i, v := range blurred.Pix {
		coverage.Pix[i] = uint8(int(v) * alpha / 255)
	}
	draw.DrawMask(dst, clipped, image.NewUniform(color.Black), image.Point{}, coverage, clipped.Min.Sub(target.Min), draw.Over)
}

// blurGray applies a separable box blur of the given radius.
func blurGray(src *image.Gray, radius int) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, v := range row {
			prefix[x+1] = prefix[x] + int(v)
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			out.Pix[y*out.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return out
}
