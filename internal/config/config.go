package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/history"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/theme"
)

// Canvas holds the drawing surface settings.
type Canvas struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Capacity   int    `mapstructure:"capacity"`
	Background string `mapstructure:"background"`
	Renderer   string `mapstructure:"renderer"`
}

// Notify holds notification settings.
type Notify struct {
	Save bool `mapstructure:"save"`
	Copy bool `mapstructure:"copy"`
}

// Log holds logging settings.
type Log struct {
	Level string `mapstructure:"level"`
}

// Config holds the application configuration.
type Config struct {
	Theme   string `mapstructure:"theme"`
	SaveDir string `mapstructure:"save_dir"`
	Canvas  Canvas `mapstructure:"canvas"`
	Notify  Notify `mapstructure:"notify"`
	Log     Log    `mapstructure:"log"`
	// Themes are inline [themes.<name>] tables.
	Themes map[string]*theme.Theme `mapstructure:"-"`
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Canvas: Canvas{
			Width:    800,
			Height:   600,
			Capacity: history.DefaultCapacity,
			Renderer: string(canvas.RendererGG),
		},
		Log:    Log{Level: "info"},
		Themes: make(map[string]*theme.Theme),
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Capacity < 1 {
		return fmt.Errorf("canvas.capacity %d must be at least 1", c.Canvas.Capacity)
	}
	if _, err := canvas.ParseRenderer(c.Canvas.Renderer); err != nil {
		return fmt.Errorf("canvas.renderer: %w", err)
	}
	if _, err := c.BackgroundOr(shape.White); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	return nil
}

// BackgroundOr parses Canvas.Background, returning def when it is unset.
func (c *Config) BackgroundOr(def shape.Color) (shape.Color, error) {
	if c.Canvas.Background == "" {
		return def, nil
	}
	return palette.Parse(c.Canvas.Background)
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %q\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %q\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "capacity = %d\n", c.Canvas.Capacity)
	fmt.Fprintf(&sb, "background = %q\n", c.Canvas.Background)
	fmt.Fprintf(&sb, "renderer = %q\n", c.Canvas.Renderer)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[log]\n")
	fmt.Fprintf(&sb, "level = %q\n", c.Log.Level)

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "\n[themes.%s]\n", name)
		fmt.Fprintf(&sb, "name = %q\n", t.Name)
		for _, key := range theme.Fields() {
			col, _ := t.Get(key)
			fmt.Fprintf(&sb, "%s = %q\n", key, shape.FromColor(col).Hex())
		}
	}

	return sb.String()
}
