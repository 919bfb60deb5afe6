package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shapepad/internal/history"
	"github.com/example/shapepad/internal/shape"
)

const red shape.Color = 0xFFFF0000

func newMachine(capacity int) (*Machine, *history.Store) {
	store := history.New(capacity)
	return New(store, WithColor(red)), store
}

func down(id int, x, y float64) Event {
	return Event{Kind: Down, PointerID: id, PointerCount: 1, X: x, Y: y}
}

func move(id int, x, y float64) Event {
	return Event{Kind: Move, PointerID: id, PointerCount: 1, X: x, Y: y}
}

func up(id int) Event { return Event{Kind: Up, PointerID: id, PointerCount: 1} }

func TestDragCommitsOneShape(t *testing.T) {
	m, store := newMachine(10)

	m.Handle(down(0, 5, 6))
	assert.Equal(t, Tracking, m.State())
	_, ok := m.Preview()
	assert.False(t, ok, "no preview before the first move")

	res := m.Handle(move(0, 20, 30))
	assert.True(t, res.Redraw)
	p, ok := m.Preview()
	require.True(t, ok)
	g := p.Geom()
	assert.Equal(t, [4]float64{5, 6, 20, 30}, [4]float64{g.StartX, g.StartY, g.EndX, g.EndY})

	res = m.Handle(up(0))
	require.NotNil(t, res.Committed)
	assert.Equal(t, Idle, m.State())
	_, ok = m.Preview()
	assert.False(t, ok)

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, shape.KindEllipse, snap[0].Kind())
	assert.Equal(t, red, snap[0].Geom().Color)
	assert.Equal(t, 20.0, snap[0].Geom().EndX)
}

func TestPreviewIsNeverCommitted(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 1, 1))
	first, _ := m.Preview()
	m.Handle(move(0, 2, 2))
	second, _ := m.Preview()
	assert.NotEqual(t, first.Geom().ID, second.Geom().ID, "preview is rebuilt on every move")

	res := m.Handle(up(0))
	assert.NotEqual(t, second.Geom().ID, res.Committed.Geom().ID)
	assert.Equal(t, 1, store.Len())
}

func TestChordCancelsGesture(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 10, 10))

	res := m.Handle(Event{Kind: PointerDown, PointerID: 1, PointerCount: 2, X: 50, Y: 50})
	assert.True(t, res.Redraw)
	assert.Equal(t, Cancelled, m.State())
	assert.True(t, m.Cancelled())
	_, ok := m.Preview()
	assert.False(t, ok)

	// Further moves from the tracked pointer are ignored.
	res = m.Handle(move(0, 20, 20))
	assert.False(t, res.Redraw)

	res = m.Handle(Event{Kind: PointerUp, PointerID: 0, PointerCount: 2})
	assert.Nil(t, res.Committed)
	res = m.Handle(Event{Kind: Up, PointerID: 1, PointerCount: 1})
	assert.Nil(t, res.Committed)

	assert.Equal(t, Idle, m.State())
	assert.Zero(t, store.Len())
}

func TestChordThenLiftPrimaryLast(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(Event{Kind: PointerDown, PointerID: 1, PointerCount: 2})
	m.Handle(Event{Kind: PointerUp, PointerID: 1, PointerCount: 2})
	m.Handle(move(0, 5, 5))
	res := m.Handle(up(0))
	assert.Nil(t, res.Committed)
	assert.Zero(t, store.Len())
}

func TestUpFromOtherPointerCommitsNothing(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(3, 0, 0))
	m.Handle(move(3, 4, 4))
	res := m.Handle(up(4))
	assert.Nil(t, res.Committed)
	assert.Equal(t, Idle, m.State())
	assert.Zero(t, store.Len())
}

func TestMoveFromUnknownPointerIsIgnored(t *testing.T) {
	m, _ := newMachine(10)
	m.Handle(down(0, 0, 0))
	res := m.Handle(move(7, 9, 9))
	assert.False(t, res.Redraw)
	_, ok := m.Preview()
	assert.False(t, ok)
}

func TestEventsInIdleAreAbsorbed(t *testing.T) {
	m, store := newMachine(10)
	for _, ev := range []Event{move(0, 1, 1), up(0), {Kind: PointerUp, PointerID: 1}, {Kind: PointerDown, PointerID: 1, PointerCount: 2}} {
		res := m.Handle(ev)
		assert.Equal(t, Result{}, res, ev.Kind.String())
		assert.Equal(t, Idle, m.State())
	}
	assert.Zero(t, store.Len())
}

func TestExternalCancel(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 3, 3))
	res := m.Handle(Event{Kind: Cancel})
	assert.True(t, res.Redraw)
	assert.Equal(t, Idle, m.State())
	assert.True(t, m.Cancelled())

	res = m.Handle(up(0))
	assert.Nil(t, res.Committed)
	assert.Zero(t, store.Len())
}

func TestFullStoreDropsGesture(t *testing.T) {
	m, store := newMachine(1)
	m.Handle(down(0, 0, 0))
	require.NotNil(t, m.Handle(up(0)).Committed)

	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 8, 8))
	res := m.Handle(up(0))
	assert.Nil(t, res.Committed)
	assert.True(t, res.Redraw)
	_, ok := m.Preview()
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestTapCommitsDegenerateShape(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 4, 4))
	res := m.Handle(up(0))
	require.NotNil(t, res.Committed)
	g := res.Committed.Geom()
	assert.Equal(t, g.StartX, g.EndX)
	assert.Equal(t, g.StartY, g.EndY)
	assert.Equal(t, 1, store.Len())
}

func TestDownWhileTrackingRestarts(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 5, 5))
	m.Handle(down(2, 100, 100))
	_, ok := m.Preview()
	assert.False(t, ok)
	m.Handle(move(2, 110, 120))
	res := m.Handle(up(2))
	require.NotNil(t, res.Committed)
	assert.Equal(t, 100.0, res.Committed.Geom().StartX)
	assert.Equal(t, 1, store.Len())
}

func TestDefaultsApplyToNextGestureOnly(t *testing.T) {
	m, store := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 10, 10))
	require.NotNil(t, m.Handle(up(0)).Committed)

	m.SetKind(shape.KindLine)
	m.SetColor(shape.White)
	m.SetKind(shape.Kind(42))
	assert.Equal(t, shape.KindLine, m.Kind())

	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 10, 10))
	p, _ := m.Preview()
	assert.Equal(t, shape.KindLine, p.Kind())
	m.Handle(up(0))

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, shape.KindEllipse, snap[0].Kind())
	assert.Equal(t, red, snap[0].Geom().Color)
	assert.Equal(t, shape.KindLine, snap[1].Kind())
	assert.Equal(t, shape.White, snap[1].Geom().Color)
}

func TestReset(t *testing.T) {
	m, _ := newMachine(10)
	m.Handle(down(0, 0, 0))
	m.Handle(move(0, 1, 1))
	m.Reset()
	assert.Equal(t, Idle, m.State())
	_, ok := m.Preview()
	assert.False(t, ok)
}
