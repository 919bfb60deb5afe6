package main

import (
	"flag"
	"fmt"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
	"github.com/example/shapepad/internal/window"
)

// drawCmd opens the drawing window.
type drawCmd struct {
	*root
	fs *flag.FlagSet

	width     int
	height    int
	output    string
	colorSpec string
	shapeName string
	rendName  string

	color    shape.Color
	kind     shape.Kind
	renderer canvas.Renderer
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	fs.Usage = usageFunc(d)
	cfg := d.config
	fs.IntVar(&d.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&d.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&d.output, "output", "", "file written by ctrl+s (defaults to a timestamped file in save_dir)")
	fs.StringVar(&d.colorSpec, "color", "black", "initial color name or hex value")
	fs.StringVar(&d.shapeName, "shape", shape.KindEllipse.String(), "initial shape (ellipse, circle, rectangle, line)")
	fs.StringVar(&d.rendName, "renderer", cfg.Canvas.Renderer, "renderer used for saved images (gg, raster)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: d}
	}
	if d.width < 1 || d.height < 1 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", d.width, d.height)
	}
	var err error
	if d.color, err = palette.Parse(d.colorSpec); err != nil {
		return nil, err
	}
	if d.kind, err = shape.ParseKind(d.shapeName); err != nil {
		return nil, err
	}
	if d.renderer, err = canvas.ParseRenderer(d.rendName); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	bg, err := d.background()
	if err != nil {
		return err
	}
	surface := d.newSurface(engine.WithColor(d.color), engine.WithShapeKind(d.kind))
	w := window.New(
		window.WithSize(d.width, d.height),
		window.WithSurface(surface),
		window.WithTheme(d.activeTheme),
		window.WithOutput(d.output),
		window.WithSaveDir(d.config.SaveDir),
		window.WithRenderer(d.renderer),
		window.WithBackground(bg),
		window.WithNotifier(d.notifier),
		window.WithLogger(d.log),
		window.WithOnClose(func() {
			d.log.Debug().Int("shapes", surface.Len()).Msg("window closed")
		}),
	)
	w.Run()
	return nil
}
