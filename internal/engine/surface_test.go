package engine

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shapepad/internal/canvas"
	"github.com/example/shapepad/internal/gesture"
	"github.com/example/shapepad/internal/shape"
)

const red shape.Color = 0xFFFF0000

func drag(s *Surface, id int, x0, y0, x1, y1 float64) {
	s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerID: id, PointerCount: 1, X: x0, Y: y0})
	s.HandleEvent(gesture.Event{Kind: gesture.Move, PointerID: id, PointerCount: 1, X: x1, Y: y1})
	s.HandleEvent(gesture.Event{Kind: gesture.Up, PointerID: id, PointerCount: 1, X: x1, Y: y1})
}

func TestSurfaceCommitUndoRedo(t *testing.T) {
	redraws := 0
	s := New(WithColor(red), WithInvalidate(func() { redraws++ }))

	drag(s, 0, 0, 0, 10, 10)
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, shape.KindEllipse, snap[0].Kind())
	assert.Equal(t, 2, redraws, "one redraw for the move, one for the commit")

	assert.True(t, s.RequestUndo())
	assert.Empty(t, s.Snapshot())
	assert.True(t, s.RequestRedo())
	assert.Equal(t, snap, s.Snapshot())
	assert.True(t, s.RequestUndo())
	assert.False(t, s.RequestUndo())
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}

func TestSurfaceClearAfterFiveShapes(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		drag(s, 0, float64(i), 0, float64(i)+5, 5)
	}
	require.Equal(t, 5, s.Len())
	require.True(t, s.RequestUndo())

	s.RequestClear()
	assert.Empty(t, s.Snapshot())
	assert.False(t, s.RequestUndo())
	assert.False(t, s.RequestRedo())
}

func TestSurfaceClearDropsPreview(t *testing.T) {
	s := New()
	s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerCount: 1})
	s.HandleEvent(gesture.Event{Kind: gesture.Move, PointerCount: 1, X: 4, Y: 4})
	_, ok := s.Preview()
	require.True(t, ok)

	s.RequestClear()
	_, ok = s.Preview()
	assert.False(t, ok)
	assert.Equal(t, gesture.Idle, s.GestureState())
	s.HandleEvent(gesture.Event{Kind: gesture.Up, PointerCount: 1})
	assert.Zero(t, s.Len())
}

func TestSurfaceChordScenario(t *testing.T) {
	s := New()
	s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerID: 0, PointerCount: 1})
	s.HandleEvent(gesture.Event{Kind: gesture.PointerDown, PointerID: 1, PointerCount: 2, X: 3, Y: 3})
	s.HandleEvent(gesture.Event{Kind: gesture.PointerUp, PointerID: 1, PointerCount: 2})
	s.HandleEvent(gesture.Event{Kind: gesture.Up, PointerID: 0, PointerCount: 1})
	assert.Empty(t, s.Snapshot())
}

func TestSurfaceCapacity(t *testing.T) {
	s := New(WithCapacity(3))
	for i := 0; i < 6; i++ {
		drag(s, 0, 0, 0, 1, 1)
	}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.Cap())
	require.True(t, s.RequestUndo())
	drag(s, 0, 0, 0, 1, 1)
	assert.Equal(t, 3, s.Len())
}

func TestSurfaceActiveDefaults(t *testing.T) {
	s := New(WithShapeKind(shape.KindCircle), WithColor(red))
	assert.Equal(t, shape.KindCircle, s.ActiveShapeKind())
	assert.Equal(t, red, s.ActiveColor())

	drag(s, 0, 0, 0, 3, 4)
	s.SetActiveShapeKind(shape.KindRectangle)
	s.SetActiveColor(shape.Transparent)
	drag(s, 0, 0, 0, 3, 4)

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, shape.KindCircle, snap[0].Kind())
	assert.Equal(t, red, snap[0].Geom().Color)
	assert.Equal(t, shape.KindRectangle, snap[1].Kind())
	assert.Equal(t, shape.Transparent, snap[1].Geom().Color)
}

func TestSurfaceRenderReplaysInOrderThenPreview(t *testing.T) {
	s := New(WithColor(red))
	drag(s, 0, 0, 0, 10, 10)
	s.SetActiveShapeKind(shape.KindLine)
	drag(s, 0, 1, 1, 2, 2)
	s.HandleEvent(gesture.Event{Kind: gesture.Down, PointerCount: 1, X: 5, Y: 5})
	s.HandleEvent(gesture.Event{Kind: gesture.Move, PointerCount: 1, X: 6, Y: 6})

	var rec canvas.Recorder
	s.Render(&rec)
	require.Len(t, rec.Ops, 3)
	assert.Equal(t, canvas.PrimOval, rec.Ops[0].Prim)
	assert.Equal(t, red, rec.Ops[0].Paint.Color)
	assert.Equal(t, canvas.PrimLine, rec.Ops[1].Prim)
	assert.Equal(t, canvas.PrimLine, rec.Ops[2].Prim)
	assert.Equal(t, shape.Accent, rec.Ops[2].Paint.Color)

	// Rendering is a read: a second pass yields the same draw list.
	var again canvas.Recorder
	s.Render(&again)
	assert.Equal(t, rec.Ops, again.Ops)
	assert.Equal(t, 2, s.Len())
}

func TestSurfaceLogsCommits(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	drag(s, 0, 0, 0, 1, 1)
	assert.Contains(t, buf.String(), "shape committed")
}
