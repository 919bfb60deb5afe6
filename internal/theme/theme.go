package theme

import (
	"image/color"
)

// Theme defines the colours of the drawing window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Status line text

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Selected shape button
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA
	SwatchBorder           color.RGBA
	SwatchSelected         color.RGBA // Ring around the active colour

	// Canvas
	Canvas color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		SwatchBorder:           color.RGBA{90, 90, 90, 255},
		SwatchSelected:         color.RGBA{0x27, 0x5B, 0xF5, 255},
		Canvas:                 color.RGBA{255, 255, 255, 255},
	}
}

// Fields returns the colour keys a theme file may set, in declaration order.
func Fields() []string {
	return fieldNames
}
