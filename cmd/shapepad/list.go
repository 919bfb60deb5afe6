package main

import (
	"flag"
	"fmt"

	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	def := engine.New().ActiveColor()
	fmt.Fprintln(c.stdout, "available palette colors (* marks the default color):")
	for idx, entry := range palette.Colors() {
		marker := " "
		if entry.Color == def {
			marker = "*"
		}
		nrgba := entry.Color.NRGBA()
		block := "  "
		if nrgba.A != 0 {
			block = fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", nrgba.R, nrgba.G, nrgba.B)
		}
		fmt.Fprintf(c.stdout, "%s %d: %-12s %s %s\n", marker, idx+1, entry.Name, entry.Color.Hex(), block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type shapesCmd struct {
	*root
	fs *flag.FlagSet
}

var shapeKeys = map[shape.Kind]string{
	shape.KindEllipse:   "e",
	shape.KindCircle:    "o",
	shape.KindRectangle: "x",
	shape.KindLine:      "l",
}

func parseShapesCmd(args []string, r *root) (*shapesCmd, error) {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	cmd := &shapesCmd{root: r.subcommand("shapes"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *shapesCmd) Run() error {
	def := engine.New().ActiveShapeKind()
	fmt.Fprintln(c.stdout, "available shapes (* marks the default shape):")
	for _, k := range shape.Kinds() {
		marker := " "
		if k == def {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %s: %s\n", marker, shapeKeys[k], k)
	}
	return nil
}

func (c *shapesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
