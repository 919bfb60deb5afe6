package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func whiteCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestDropShadowDarkensBelowOffset(t *testing.T) {
	img := whiteCanvas(60, 60)
	box := image.Rect(10, 10, 30, 30)
	opts := ShadowOptions{Radius: 3, Offset: image.Pt(6, 6), Opacity: 0.5}
	DropShadow(img, box, opts)

	// Inside the offset box, away from the blurred edge.
	if got := img.RGBAAt(30, 30); got.R >= 255 {
		t.Fatalf("expected shadow at (30,30), got %v", got)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected untouched pixel at (2,2), got %v", got)
	}
	if !opts.Extent(box).In(img.Bounds()) {
		t.Fatalf("extent %v outside canvas", opts.Extent(box))
	}
}

func TestDropShadowNoOpWhenOpacityZero(t *testing.T) {
	img := whiteCanvas(20, 20)
	DropShadow(img, image.Rect(2, 2, 10, 10), ShadowOptions{Radius: 4, Offset: image.Pt(2, 2)})
	for i, v := range img.Pix {
		if v != 255 {
			t.Fatalf("pixel byte %d changed to %d", i, v)
		}
	}
}

func TestDropShadowClipsToDestination(t *testing.T) {
	img := whiteCanvas(10, 10)
	// Mostly off-canvas; must not panic.
	DropShadow(img, image.Rect(8, 8, 40, 40), DefaultShadowOptions())
	DropShadow(img, image.Rect(-50, -50, -40, -40), DefaultShadowOptions())
}

func TestBlurGrayPreservesFlatField(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 5))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	out := blurGray(src, 2)
	for i, v := range out.Pix {
		if v != 200 {
			t.Fatalf("pixel %d = %d, want 200", i, v)
		}
	}
}
