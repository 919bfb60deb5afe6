package window

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/shapepad/internal/gesture"
	"github.com/example/shapepad/internal/shape"
)

func recordInput() (*pointerInput, *[]gesture.Event) {
	var got []gesture.Event
	p := newPointerInput(func(e gesture.Event) { got = append(got, e) })
	p.canvas = image.Rect(50, 0, 250, 100)
	return p, &got
}

func kinds(evs []gesture.Event) []gesture.EventKind {
	out := make([]gesture.EventKind, len(evs))
	for i, e := range evs {
		out[i] = e.Kind
	}
	return out
}

func TestMouseDragTranslatesToCanvas(t *testing.T) {
	p, got := recordInput()
	assert.True(t, p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}))
	assert.True(t, p.mouse(mouse.Event{X: 80, Y: 30, Direction: mouse.DirNone}))
	assert.True(t, p.mouse(mouse.Event{X: 80, Y: 30, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))

	require.Equal(t, []gesture.EventKind{gesture.Down, gesture.Move, gesture.Up}, kinds(*got))
	assert.Equal(t, gesture.Event{Kind: gesture.Down, PointerID: 0, PointerCount: 1, X: 10, Y: 10}, (*got)[0])
	assert.Equal(t, 30.0, (*got)[1].X)
}

func TestMousePressOutsideCanvasIsIgnored(t *testing.T) {
	p, got := recordInput()
	assert.False(t, p.mouse(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress}))
	assert.False(t, p.mouse(mouse.Event{X: 60, Y: 10, Direction: mouse.DirNone}))
	assert.False(t, p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
	assert.Empty(t, *got)
}

func TestDragMayLeaveCanvas(t *testing.T) {
	p, got := recordInput()
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	p.mouse(mouse.Event{X: 400, Y: 300, Direction: mouse.DirNone})
	require.Len(t, *got, 2)
	assert.Equal(t, 350.0, (*got)[1].X)
}

func TestRightButtonDuringDragIsAChord(t *testing.T) {
	p, got := recordInput()
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonRight, Direction: mouse.DirRelease})
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	require.Equal(t, []gesture.EventKind{gesture.Down, gesture.PointerDown, gesture.PointerUp, gesture.Up}, kinds(*got))
	assert.Equal(t, 1, (*got)[1].PointerID)
	assert.Equal(t, 2, (*got)[1].PointerCount)
	assert.Equal(t, 2, (*got)[2].PointerCount)
}

func TestRightButtonWithoutDragDoesNothing(t *testing.T) {
	p, got := recordInput()
	assert.False(t, p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonRight, Direction: mouse.DirPress}))
	assert.Empty(t, *got)
}

func TestTouchSequences(t *testing.T) {
	p, got := recordInput()
	p.touch(touch.Event{X: 60, Y: 10, Sequence: 7, Type: touch.TypeBegin})
	p.touch(touch.Event{X: 70, Y: 20, Sequence: 7, Type: touch.TypeMove})
	p.touch(touch.Event{X: 90, Y: 20, Sequence: 8, Type: touch.TypeBegin})
	p.touch(touch.Event{X: 90, Y: 20, Sequence: 8, Type: touch.TypeEnd})
	p.touch(touch.Event{X: 70, Y: 20, Sequence: 7, Type: touch.TypeEnd})
	p.touch(touch.Event{X: 70, Y: 20, Sequence: 9, Type: touch.TypeMove})

	require.Equal(t, []gesture.EventKind{gesture.Down, gesture.Move, gesture.PointerDown, gesture.PointerUp, gesture.Up}, kinds(*got))
	assert.Equal(t, 7, (*got)[0].PointerID)
	assert.Equal(t, 2, (*got)[2].PointerCount)
	assert.Equal(t, 1, (*got)[4].PointerCount)
}

func TestCancelForgetsPointers(t *testing.T) {
	p, got := recordInput()
	p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	p.cancel()
	assert.False(t, p.mouse(mouse.Event{X: 60, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
	assert.Equal(t, []gesture.EventKind{gesture.Down, gesture.Cancel}, kinds(*got))
}

func TestKeyAction(t *testing.T) {
	press := func(r rune, c key.Code, m key.Modifiers) key.Event {
		return key.Event{Rune: r, Code: c, Modifiers: m, Direction: key.DirPress}
	}
	tests := []struct {
		name string
		ev   key.Event
		want action
	}{
		{"ellipse", press('e', key.CodeE, 0), action{kind: actShape, shape: shape.KindEllipse}},
		{"circle upper", press('O', key.CodeO, key.ModShift), action{kind: actShape, shape: shape.KindCircle}},
		{"rect", press('x', key.CodeX, 0), action{kind: actShape, shape: shape.KindRectangle}},
		{"line", press('l', key.CodeL, 0), action{kind: actShape, shape: shape.KindLine}},
		{"colour 1", press('1', key.Code1, 0), action{kind: actColor, color: 0}},
		{"colour 8", press('8', key.Code8, 0), action{kind: actColor, color: 7}},
		{"colour 9 unused", press('9', key.Code9, 0), action{}},
		{"undo", press('z', key.CodeZ, key.ModControl), action{kind: actUndo}},
		{"redo shift", press('Z', key.CodeZ, key.ModControl|key.ModShift), action{kind: actRedo}},
		{"redo y", press('y', key.CodeY, key.ModControl), action{kind: actRedo}},
		{"clear", press(-1, key.CodeDeleteBackspace, key.ModControl), action{kind: actClear}},
		{"clear delete", press(-1, key.CodeDeleteForward, 0), action{kind: actClear}},
		{"save", press('s', key.CodeS, key.ModControl), action{kind: actSave}},
		{"copy", press('c', key.CodeC, key.ModControl), action{kind: actCopy}},
		{"quit", press('q', key.CodeQ, 0), action{kind: actQuit}},
		{"plain z", press('z', key.CodeZ, 0), action{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyAction(tt.ev))
		})
	}
	assert.Equal(t, action{}, keyAction(key.Event{Rune: 'e', Direction: key.DirRelease}))
}
