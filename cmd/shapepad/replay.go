package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/clipboard"
	"github.com/example/shapepad/internal/script"
)

var copyImageFn = clipboard.WriteImage

// replayCmd runs a gesture script without a window.
type replayCmd struct {
	*root
	fs *flag.FlagSet

	file        string
	output      string
	width       int
	height      int
	rendName    string
	ops         bool
	toClipboard bool

	renderer canvas.Renderer
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r.subcommand("replay"), fs: fs}
	fs.Usage = usageFunc(c)
	cfg := c.config
	fs.StringVar(&c.file, "file", "", "script file (defaults to standard input)")
	fs.StringVar(&c.output, "output", "", "PNG output path, - for standard output")
	fs.IntVar(&c.width, "width", cfg.Canvas.Width, "canvas width in pixels")
	fs.IntVar(&c.height, "height", cfg.Canvas.Height, "canvas height in pixels")
	fs.StringVar(&c.rendName, "renderer", cfg.Canvas.Renderer, "renderer (gg, raster)")
	fs.BoolVar(&c.ops, "ops", false, "print the draw calls of the final frame")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.ops && !c.toClipboard {
		return nil, errors.New("one of -output, -ops or -to-clipboard is required")
	}
	if c.output == "-" && c.ops {
		return nil, errors.New("-ops cannot be combined with -output -")
	}
	var err error
	if c.renderer, err = canvas.ParseRenderer(c.rendName); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	cmds, err := c.readScript()
	if err != nil {
		return err
	}
	surface := c.newSurface()
	script.Run(surface, cmds)
	c.log.Debug().Int("commands", len(cmds)).Int("shapes", surface.Len()).Msg("script replayed")

	if c.ops {
		var rec canvas.Recorder
		surface.Render(&rec)
		for _, op := range rec.Ops {
			fmt.Fprintln(c.stdout, op)
		}
	}
	if c.output == "" && !c.toClipboard {
		return nil
	}

	bg, err := c.background()
	if err != nil {
		return err
	}
	img, err := canvas.Rasterize(canvas.Shapes(surface.Snapshot()), c.renderer, c.width, c.height, bg)
	if err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	if err := c.writeOutput(img); err != nil {
		return err
	}
	if c.toClipboard {
		if err := copyImageFn(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintln(c.stderr, "copied canvas to clipboard")
		c.notifyCopy("canvas", img)
	}
	return nil
}

func (c *replayCmd) readScript() ([]script.Command, error) {
	var (
		in   io.Reader = c.stdin
		name           = "stdin"
	)
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in, name = f, c.file
	}
	cmds, err := script.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return cmds, nil
}

func (c *replayCmd) writeOutput(img image.Image) error {
	switch c.output {
	case "":
		return nil
	case "-":
		if err := canvas.EncodePNG(c.stdout, img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return nil
	}
	if err := canvas.SavePNG(c.output, img); err != nil {
		return err
	}
	saved := c.output
	if abs, err := filepath.Abs(c.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(c.stderr, "saved %s\n", saved)
	c.notifySave(saved)
	return nil
}
