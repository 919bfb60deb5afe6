package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/shapepad/internal/palette"
)

var (
	rgbaType   = reflect.TypeOf(color.RGBA{})
	fieldNames = colourFields()
)

func colourFields() []string {
	var names []string
	typ := reflect.TypeOf(Theme{})
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == rgbaType {
			names = append(names, typ.Field(i).Name)
		}
	}
	return names
}

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: colour, where colour
// is anything palette.Parse accepts.
func Parse(r io.Reader) (*Theme, error) {
	t := Default() // Start with defaults
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := t.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns one theme key. Keys match field names case-insensitively;
// unknown keys are ignored for forward compatibility.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	for _, name := range fieldNames {
		if !strings.EqualFold(name, key) {
			continue
		}
		c, err := palette.Parse(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		n := c.NRGBA()
		val.FieldByName(name).Set(reflect.ValueOf(color.RGBAModel.Convert(n).(color.RGBA)))
		return nil
	}
	return nil
}

// Get returns the named colour field.
func (t *Theme) Get(key string) (color.RGBA, bool) {
	val := reflect.ValueOf(t).Elem()
	for _, name := range fieldNames {
		if strings.EqualFold(name, key) {
			return val.FieldByName(name).Interface().(color.RGBA), true
		}
	}
	return color.RGBA{}, false
}
