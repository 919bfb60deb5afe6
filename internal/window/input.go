package window

import (
	"image"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/shapepad/internal/gesture"
	"github.com/example/shapepad/internal/shape"
)

// actionKind names something the user asked the window to do, from the
// keyboard or the toolbar.
type actionKind int

const (
	actNone actionKind = iota
	actShape
	actColor
	actUndo
	actRedo
	actClear
	actSave
	actCopy
	actQuit
)

type action struct {
	kind  actionKind
	shape shape.Kind
	color int // palette index
}

// Mouse buttons other than the left one act as extra fingers.
var chordPointer = map[mouse.Button]int{
	mouse.ButtonRight:  1,
	mouse.ButtonMiddle: 2,
}

// pointerInput turns mouse and touch events into gesture events in canvas
// coordinates. The left mouse button is pointer 0; touch sequences keep
// their own ids.
type pointerInput struct {
	emit   func(gesture.Event)
	canvas image.Rectangle

	leftDown bool
	chord    map[mouse.Button]bool
	touches  map[touch.Sequence]bool
}

func newPointerInput(emit func(gesture.Event)) *pointerInput {
	return &pointerInput{
		emit:    emit,
		chord:   make(map[mouse.Button]bool),
		touches: make(map[touch.Sequence]bool),
	}
}

func (p *pointerInput) toCanvas(x, y float32) (float64, float64) {
	return float64(x) - float64(p.canvas.Min.X), float64(y) - float64(p.canvas.Min.Y)
}

// mouse reports whether the event belonged to a drag on the canvas.
func (p *pointerInput) mouse(e mouse.Event) bool {
	x, y := p.toCanvas(e.X, e.Y)
	inside := image.Pt(int(e.X), int(e.Y)).In(p.canvas)
	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft {
			if !inside {
				return false
			}
			p.leftDown = true
			clear(p.chord)
			p.emit(gesture.Event{Kind: gesture.Down, PointerID: 0, PointerCount: 1, X: x, Y: y})
			return true
		}
		id, ok := chordPointer[e.Button]
		if !ok || !p.leftDown || p.chord[e.Button] {
			return p.leftDown
		}
		p.chord[e.Button] = true
		p.emit(gesture.Event{Kind: gesture.PointerDown, PointerID: id, PointerCount: 1 + len(p.chord), X: x, Y: y})
		return true
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			if !p.leftDown {
				return false
			}
			p.leftDown = false
			p.emit(gesture.Event{Kind: gesture.Up, PointerID: 0, PointerCount: 1 + len(p.chord), X: x, Y: y})
			return true
		}
		if !p.chord[e.Button] {
			return p.leftDown
		}
		count := 1 + len(p.chord)
		delete(p.chord, e.Button)
		p.emit(gesture.Event{Kind: gesture.PointerUp, PointerID: chordPointer[e.Button], PointerCount: count, X: x, Y: y})
		return true
	case mouse.DirNone:
		if !p.leftDown {
			return false
		}
		p.emit(gesture.Event{Kind: gesture.Move, PointerID: 0, PointerCount: 1 + len(p.chord), X: x, Y: y})
		return true
	}
	return false
}

// touch follows the usual platform convention: the first finger down is
// the primary pointer and the last finger up ends the gesture.
func (p *pointerInput) touch(e touch.Event) {
	x, y := p.toCanvas(e.X, e.Y)
	id := int(e.Sequence)
	switch e.Type {
	case touch.TypeBegin:
		if len(p.touches) == 0 {
			if !image.Pt(int(e.X), int(e.Y)).In(p.canvas) {
				return
			}
			p.touches[e.Sequence] = true
			p.emit(gesture.Event{Kind: gesture.Down, PointerID: id, PointerCount: 1, X: x, Y: y})
			return
		}
		p.touches[e.Sequence] = true
		p.emit(gesture.Event{Kind: gesture.PointerDown, PointerID: id, PointerCount: len(p.touches), X: x, Y: y})
	case touch.TypeMove:
		if p.touches[e.Sequence] {
			p.emit(gesture.Event{Kind: gesture.Move, PointerID: id, PointerCount: len(p.touches), X: x, Y: y})
		}
	case touch.TypeEnd:
		if !p.touches[e.Sequence] {
			return
		}
		count := len(p.touches)
		delete(p.touches, e.Sequence)
		kind := gesture.PointerUp
		if count == 1 {
			kind = gesture.Up
		}
		p.emit(gesture.Event{Kind: kind, PointerID: id, PointerCount: count, X: x, Y: y})
	}
}

// cancel drops every tracked pointer and tells the machine the gesture is
// gone, as when the window loses focus mid-drag.
func (p *pointerInput) cancel() {
	p.leftDown = false
	clear(p.chord)
	clear(p.touches)
	p.emit(gesture.Event{Kind: gesture.Cancel})
}

var shapeKeys = map[rune]shape.Kind{
	'e': shape.KindEllipse,
	'o': shape.KindCircle,
	'x': shape.KindRectangle,
	'l': shape.KindLine,
}

// keyAction maps a key press to a window action.
func keyAction(e key.Event) action {
	if e.Direction != key.DirPress {
		return action{}
	}
	if e.Modifiers&key.ModControl != 0 {
		switch e.Code {
		case key.CodeZ:
			if e.Modifiers&key.ModShift != 0 {
				return action{kind: actRedo}
			}
			return action{kind: actUndo}
		case key.CodeY:
			return action{kind: actRedo}
		case key.CodeDeleteBackspace:
			return action{kind: actClear}
		case key.CodeS:
			return action{kind: actSave}
		case key.CodeC:
			return action{kind: actCopy}
		}
		return action{}
	}
	if e.Code == key.CodeDeleteForward {
		return action{kind: actClear}
	}
	r := unicode.ToLower(e.Rune)
	if k, ok := shapeKeys[r]; ok {
		return action{kind: actShape, shape: k}
	}
	switch {
	case r >= '1' && r <= '8':
		return action{kind: actColor, color: int(r - '1')}
	case r == 'q':
		return action{kind: actQuit}
	}
	return action{}
}
