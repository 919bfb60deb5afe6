// Package palette holds the named colours offered by the colour picker.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/shapepad/internal/shape"
)

// OtherName labels colours that are not part of the palette.
const OtherName = "other"

// Entry is a palette colour annotated with its display name.
type Entry struct {
	Name  string
	Color shape.Color
}

var entries = []Entry{
	{"red", 0xFFFF0000},
	{"green", 0xFF00FF00},
	{"blue", 0xFF0000FF},
	{"yellow", 0xFFFFFF00},
	{"black", shape.Black},
	{"gray", 0xFF888888},
	{"white", shape.White},
	{"transparent", shape.Transparent},
}

// Colors returns a copy of the palette in picker order.
func Colors() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// At returns the palette entry at idx, clamped to the valid range.
func At(idx int) Entry {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(entries) {
		idx = len(entries) - 1
	}
	return entries[idx]
}

// Len returns the number of palette entries.
func Len() int { return len(entries) }

// Lookup finds a palette colour by name.
func Lookup(name string) (shape.Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "grey" {
		name = "gray"
	}
	for _, e := range entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return 0, false
}

// Name returns the palette name for c, or OtherName. Unnamed colours are
// still valid drawing colours; the name only matters for display.
func Name(c shape.Color) string {
	for _, e := range entries {
		if e.Color == c {
			return e.Name
		}
	}
	return OtherName
}

// Index returns the palette position of c, or -1.
func Index(c shape.Color) int {
	for i, e := range entries {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// Parse accepts a palette name, an SVG colour name or a hex value in
// #RRGGBB or #AARRGGBB form.
func Parse(s string) (shape.Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return 0, fmt.Errorf("color cannot be empty")
	}
	if c, ok := Lookup(spec); ok {
		return c, nil
	}
	if c, ok := colornames.Map[spec]; ok {
		return shape.FromColor(c), nil
	}
	if strings.HasPrefix(spec, "#") {
		hex := spec[1:]
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q", s)
		}
		switch len(hex) {
		case 6:
			return shape.Color(0xFF000000 | uint32(v)), nil
		case 8:
			return shape.Color(uint32(v)), nil
		}
	}
	return 0, fmt.Errorf("invalid color %q", s)
}
