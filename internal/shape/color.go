package shape

import (
	"fmt"
	"image/color"
)

// Color is a packed 0xAARRGGBB value with straight alpha.
type Color uint32

const (
	// Transparent selects "no fill": filled shapes fall back to a black outline.
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	// Accent is the rubber-band colour used for every preview.
	Accent Color = 0xFF275BF5
)

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromColor converts any image colour into a packed Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// NRGBA unpacks c for use with image/color consumers.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Hex formats c as #AARRGGBB, or #RRGGBB when fully opaque.
func (c Color) Hex() string {
	if c.A() == 0xFF {
		return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
	}
	return fmt.Sprintf("#%08X", uint32(c))
}

func (c Color) String() string { return c.Hex() }
