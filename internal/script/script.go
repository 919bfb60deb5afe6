// Package script drives an engine.Surface from a line-oriented command
// language. It is the headless counterpart of the window host: every command
// maps onto exactly one host call or a short run of pointer events.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/gesture"
	"github.com/example/shapepad/internal/palette"
	"github.com/example/shapepad/internal/shape"
)

// Op identifies a command verb.
type Op int

const (
	OpShape Op = iota
	OpColor
	OpDown
	OpPointerDown
	OpMove
	OpUp
	OpPointerUp
	OpCancel
	OpDrag
	OpUndo
	OpRedo
	OpClear
)

var opNames = map[string]Op{
	"shape":  OpShape,
	"color":  OpColor,
	"colour": OpColor,
	"down":   OpDown,
	"pdown":  OpPointerDown,
	"move":   OpMove,
	"up":     OpUp,
	"pup":    OpPointerUp,
	"cancel": OpCancel,
	"drag":   OpDrag,
	"undo":   OpUndo,
	"redo":   OpRedo,
	"clear":  OpClear,
}

// MaxDragSteps bounds the moves a single drag may generate.
const MaxDragSteps = 10000

// ErrUnknownCommand is wrapped by ParseError for unrecognised verbs.
var ErrUnknownCommand = errors.New("unknown command")

// ParseError reports the 1-based line of a malformed command.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Command is one parsed script line.
type Command struct {
	Line  int
	Op    Op
	Kind  shape.Kind
	Color shape.Color
	// Pointer is the pointer id for down, pdown, move, up and pup.
	Pointer int
	// Count is the number of pointers on the surface after a pdown.
	Count int
	// X, Y is the event position; for drag it is the start point.
	X, Y float64
	// EndX, EndY is where a drag ends.
	EndX, EndY float64
	// Steps is the number of moves a drag is split into.
	Steps int
}

// Parse reads commands until EOF. Blank lines and text after '#' are
// ignored. The first malformed line stops parsing with a *ParseError.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		cmd, ok, err := ParseLine(sc.Text())
		if err != nil {
			return nil, &ParseError{Line: n, Err: err}
		}
		if !ok {
			continue
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// ParseLine parses a single line. ok is false for blank or comment-only
// lines.
func ParseLine(line string) (cmd Command, ok bool, err error) {
	fields := stripComment(strings.Fields(line))
	if len(fields) == 0 {
		return Command{}, false, nil
	}
	op, known := opNames[strings.ToLower(fields[0])]
	if !known {
		return Command{}, false, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	cmd.Op = op
	switch op {
	case OpShape:
		if err := arity(args, 1, 1); err != nil {
			return cmd, false, err
		}
		if cmd.Kind, err = shape.ParseKind(args[0]); err != nil {
			return cmd, false, err
		}
	case OpColor:
		if err := arity(args, 1, 1); err != nil {
			return cmd, false, err
		}
		if cmd.Color, err = palette.Parse(args[0]); err != nil {
			return cmd, false, err
		}
	case OpDown, OpMove:
		if err := arity(args, 3, 3); err != nil {
			return cmd, false, err
		}
		if cmd.Pointer, err = parseID(args[0]); err != nil {
			return cmd, false, err
		}
		if cmd.X, cmd.Y, err = parsePoint(args[1:3]); err != nil {
			return cmd, false, err
		}
	case OpPointerDown:
		if err := arity(args, 3, 4); err != nil {
			return cmd, false, err
		}
		if cmd.Pointer, err = parseID(args[0]); err != nil {
			return cmd, false, err
		}
		if cmd.X, cmd.Y, err = parsePoint(args[1:3]); err != nil {
			return cmd, false, err
		}
		cmd.Count = 2
		if len(args) == 4 {
			if cmd.Count, err = strconv.Atoi(args[3]); err != nil || cmd.Count < 1 {
				return cmd, false, fmt.Errorf("invalid pointer count %q", args[3])
			}
		}
	case OpUp, OpPointerUp:
		if len(args) != 1 && len(args) != 3 {
			return cmd, false, fmt.Errorf("expected <id> [x y], got %d arguments", len(args))
		}
		if cmd.Pointer, err = parseID(args[0]); err != nil {
			return cmd, false, err
		}
		if len(args) == 3 {
			if cmd.X, cmd.Y, err = parsePoint(args[1:3]); err != nil {
				return cmd, false, err
			}
		}
	case OpDrag:
		if err := arity(args, 4, 5); err != nil {
			return cmd, false, err
		}
		if cmd.X, cmd.Y, err = parsePoint(args[0:2]); err != nil {
			return cmd, false, err
		}
		if cmd.EndX, cmd.EndY, err = parsePoint(args[2:4]); err != nil {
			return cmd, false, err
		}
		cmd.Steps = 1
		if len(args) == 5 {
			if cmd.Steps, err = strconv.Atoi(args[4]); err != nil || cmd.Steps < 1 {
				return cmd, false, fmt.Errorf("invalid step count %q", args[4])
			}
			if cmd.Steps > MaxDragSteps {
				return cmd, false, fmt.Errorf("step count %d exceeds %d", cmd.Steps, MaxDragSteps)
			}
		}
	default:
		if err := arity(args, 0, 0); err != nil {
			return cmd, false, err
		}
	}
	return cmd, true, nil
}

// stripComment drops everything from the first word starting with '#',
// except a colour argument such as "color #FF8800".
func stripComment(fields []string) []string {
	for i, f := range fields {
		if !strings.HasPrefix(f, "#") {
			continue
		}
		if i == 1 && opNames[strings.ToLower(fields[0])] == OpColor && len(f) > 1 {
			continue
		}
		return fields[:i]
	}
	return fields
}

func arity(args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("expected %d arguments, got %d", lo, len(args))
		}
		return fmt.Errorf("expected %d to %d arguments, got %d", lo, hi, len(args))
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid pointer id %q", s)
	}
	return id, nil
}

func parsePoint(args []string) (x, y float64, err error) {
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid x %q", args[0])
	}
	if y, err = strconv.ParseFloat(args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("invalid y %q", args[1])
	}
	return x, y, nil
}

// Apply performs the command against s.
func (c Command) Apply(s *engine.Surface) {
	switch c.Op {
	case OpShape:
		s.SetActiveShapeKind(c.Kind)
	case OpColor:
		s.SetActiveColor(c.Color)
	case OpDown:
		s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerID: c.Pointer, PointerCount: 1, X: c.X, Y: c.Y})
	case OpPointerDown:
		s.HandleEvent(gesture.Event{Kind: gesture.PointerDown, PointerID: c.Pointer, PointerCount: c.Count, X: c.X, Y: c.Y})
	case OpMove:
		s.HandleEvent(gesture.Event{Kind: gesture.Move, PointerID: c.Pointer, PointerCount: 1, X: c.X, Y: c.Y})
	case OpUp:
		s.HandleEvent(gesture.Event{Kind: gesture.Up, PointerID: c.Pointer, PointerCount: 1, X: c.X, Y: c.Y})
	case OpPointerUp:
		s.HandleEvent(gesture.Event{Kind: gesture.PointerUp, PointerID: c.Pointer, PointerCount: 2, X: c.X, Y: c.Y})
	case OpCancel:
		s.HandleEvent(gesture.Event{Kind: gesture.Cancel})
	case OpDrag:
		c.drag(s)
	case OpUndo:
		s.RequestUndo()
	case OpRedo:
		s.RequestRedo()
	case OpClear:
		s.RequestClear()
	}
}

func (c Command) drag(s *engine.Surface) {
	s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerCount: 1, X: c.X, Y: c.Y})
	steps := max(c.Steps, 1)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		s.HandleEvent(gesture.Event{
			Kind:         gesture.Move,
			PointerCount: 1,
			X:            c.X + (c.EndX-c.X)*f,
			Y:            c.Y + (c.EndY-c.Y)*f,
		})
	}
	s.HandleEvent(gesture.Event{Kind: gesture.Up, PointerCount: 1, X: c.EndX, Y: c.EndY})
}

// Run applies every command in order.
func Run(s *engine.Surface, cmds []Command) {
	for _, c := range cmds {
		c.Apply(s)
	}
}
