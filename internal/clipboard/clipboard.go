// Package clipboard publishes rendered drawings to the system clipboard as
// PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
)

// ErrNoDisplay is returned on X11/Wayland hosts when no display is set.
var ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")

// ErrUnsupported is returned where no clipboard backend is built in.
var ErrUnsupported = errors.New("clipboard is not supported on this platform")

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to copy")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
