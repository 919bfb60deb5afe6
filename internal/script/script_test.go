package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/engine"
	"github.com/example/shapepad/internal/shape"
)

func run(t *testing.T, src string) *engine.Surface {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	s := engine.New()
	Run(s, cmds)
	return s
}

func TestParseSkipsBlankAndComments(t *testing.T) {
	cmds, err := Parse(strings.NewReader("# heading\n\n  shape circle # trailing\ncolor red\n"))
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Line: 3, Op: OpShape, Kind: shape.KindCircle}, cmds[0])
	assert.Equal(t, 4, cmds[1].Line)
	assert.Equal(t, shape.Color(0xFFFF0000), cmds[1].Color)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown verb", "undo\nwiggle\n", 2},
		{"bad shape", "shape hexagon", 1},
		{"bad colour", "color #12", 1},
		{"missing coords", "down 0 1", 1},
		{"negative id", "move -1 2 3", 1},
		{"up with one coord", "up 0 4", 1},
		{"zero steps", "drag 0 0 1 1 0", 1},
		{"too many steps", "drag 0 0 1 1 2000000000", 1},
		{"extra args", "\n\nundo now", 3},
		{"bad count", "pdown 1 0 0 x", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
	_, err := Parse(strings.NewReader("wiggle"))
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

func TestParseDefaults(t *testing.T) {
	cmd, ok, err := ParseLine("pdown 1 5 6")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, cmd.Count)

	cmd, _, err = ParseLine("DRAG 1 2 3 4")
	require.NoError(t, err)
	assert.Equal(t, Command{Op: OpDrag, X: 1, Y: 2, EndX: 3, EndY: 4, Steps: 1}, cmd)
}

func TestRunDragCommits(t *testing.T) {
	s := run(t, "shape rect\ncolor blue\ndrag 10 10 40 30 4\n")
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	g := snap[0].Geom()
	assert.Equal(t, shape.KindRectangle, snap[0].Kind())
	assert.Equal(t, [4]float64{10, 10, 40, 30}, [4]float64{g.StartX, g.StartY, g.EndX, g.EndY})
}

func TestParseDragStepLimit(t *testing.T) {
	cmd, ok, err := ParseLine("drag 0 0 1 1 10000")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, MaxDragSteps, cmd.Steps)

	_, _, err = ParseLine("drag 0 0 1 1 10001")
	assert.ErrorContains(t, err, "exceeds")
}

func TestRunChordCommitsNothing(t *testing.T) {
	s := run(t, `
down 0 0 0
pdown 1 5 5
move 0 20 20
pup 1
up 0
`)
	assert.Empty(t, s.Snapshot())
}

func TestRunUndoRedoClear(t *testing.T) {
	s := run(t, "drag 0 0 10 10\ndrag 5 5 8 8\nundo\n")
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.CanRedo())

	s = run(t, "drag 0 0 10 10\nundo\nredo\nclear\n")
	assert.Zero(t, s.Len())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestRunCancelDropsGesture(t *testing.T) {
	s := run(t, "down 0 0 0\nmove 0 9 9\ncancel\nup 0 9 9\n")
	assert.Empty(t, s.Snapshot())
	_, ok := s.Preview()
	assert.False(t, ok)
}

func TestRunTransparentRenders(t *testing.T) {
	s := run(t, "shape rectangle\ncolor transparent\ndrag 0 0 10 10\n")
	var rec canvas.Recorder
	s.Render(&rec)
	require.Len(t, rec.Ops, 1)
	assert.Equal(t, shape.Black, rec.Ops[0].Paint.Color)
	assert.Equal(t, shape.StyleStroke, rec.Ops[0].Paint.Style)
}

func TestParseHexColourIsNotAComment(t *testing.T) {
	cmds, err := Parse(strings.NewReader("color #80FF8800 # half orange\ncolor #00FF00\n"))
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, shape.Color(0x80FF8800), cmds[0].Color)
	assert.Equal(t, shape.Color(0xFF00FF00), cmds[1].Color)
}
