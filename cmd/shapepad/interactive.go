package main

import (
	"bufio"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/script"
	"github.com/example/shapepad/internal/shape"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd applies script commands typed at a prompt.
type interactiveCmd struct {
	*root
	fs      *flag.FlagSet
	execs   commandList
	surface *engine.Surface
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	c := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *interactiveCmd) Run() error {
	c.surface = c.newSurface()
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one prompt line and reports whether the session ended.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		help, err := renderHelp(c)
		if err != nil {
			return false, err
		}
		fmt.Fprint(c.stdout, help)
		return false, nil
	case "list":
		c.list()
		return false, nil
	case "state":
		c.state()
		return false, nil
	case "save":
		if len(fields) != 2 {
			return false, fmt.Errorf("save requires a file name")
		}
		return false, c.save(fields[1])
	}

	cmd, ok, err := script.ParseLine(line)
	if err != nil {
		return false, err
	}
	if ok {
		cmd.Apply(c.surface)
	}
	return false, nil
}

func (c *interactiveCmd) list() {
	shapes := c.surface.Snapshot()
	if len(shapes) == 0 {
		fmt.Fprintln(c.stdout, "no shapes")
		return
	}
	for i, s := range shapes {
		g := s.Geom()
		fmt.Fprintf(c.stdout, "%3d: %-9s %-11s (%g,%g)-(%g,%g)\n",
			i, s.Kind(), colorLabel(g.Color), g.StartX, g.StartY, g.EndX, g.EndY)
	}
}

func (c *interactiveCmd) state() {
	fmt.Fprintf(c.stdout, "shape=%s color=%s gesture=%s shapes=%d/%d undo=%t redo=%t\n",
		c.surface.ActiveShapeKind(),
		colorLabel(c.surface.ActiveColor()),
		c.surface.GestureState(),
		c.surface.Len(), c.surface.Cap(),
		c.surface.CanUndo(), c.surface.CanRedo())
}

func (c *interactiveCmd) save(path string) error {
	bg, err := c.background()
	if err != nil {
		return err
	}
	renderer, err := canvas.ParseRenderer(c.config.Canvas.Renderer)
	if err != nil {
		return err
	}
	img, err := canvas.Rasterize(canvas.Shapes(c.surface.Snapshot()), renderer, c.config.Canvas.Width, c.config.Canvas.Height, bg)
	if err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	if err := canvas.SavePNG(path, img); err != nil {
		return err
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	fmt.Fprintf(c.stdout, "saved %s\n", saved)
	c.notifySave(saved)
	return nil
}

// colorLabel names palette colours and falls back to hex.
func colorLabel(col shape.Color) string {
	if name := palette.Name(col); name != palette.OtherName {
		return name
	}
	return col.Hex()
}
