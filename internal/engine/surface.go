// Package engine binds the gesture machine and the shape history of one
// drawing surface behind the contract used by host surfaces.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/example/shapepad/internal/gesture"
	"github.com/example/shapepad/internal/history"
	"github.com/example/shapepad/internal/shape"
)

// Surface is the drawing-surface engine. Each host view owns its own
// Surface; there is no shared canvas state between surfaces.
//
// A Surface is single-threaded: hosts call it from their event loop only.
type Surface struct {
	store      *history.Store
	machine    *gesture.Machine
	log        zerolog.Logger
	invalidate func()

	capacity int
	kind     shape.Kind
	color    shape.Color
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithCapacity bounds the number of committed shapes.
func WithCapacity(n int) Option { return func(s *Surface) { s.capacity = n } }

// WithLogger sets the logger for engine events.
func WithLogger(l zerolog.Logger) Option { return func(s *Surface) { s.log = l } }

// WithInvalidate registers the redraw request fired after any state change.
func WithInvalidate(fn func()) Option { return func(s *Surface) { s.invalidate = fn } }

// WithShapeKind sets the initial shape kind.
func WithShapeKind(k shape.Kind) Option { return func(s *Surface) { s.kind = k } }

// WithColor sets the initial colour.
func WithColor(c shape.Color) Option { return func(s *Surface) { s.color = c } }

// New creates an empty surface.
func New(opts ...Option) *Surface {
	s := &Surface{
		log:      zerolog.Nop(),
		capacity: history.DefaultCapacity,
		kind:     shape.KindEllipse,
		color:    shape.Black,
	}
	for _, o := range opts {
		o(s)
	}
	s.store = history.New(s.capacity)
	s.machine = gesture.New(s.store,
		gesture.WithLogger(s.log.With().Str("component", "gesture").Logger()),
		gesture.WithKind(s.kind),
		gesture.WithColor(s.color),
	)
	return s
}

// HandleEvent feeds one pointer event to the gesture machine.
func (s *Surface) HandleEvent(ev gesture.Event) {
	res := s.machine.Handle(ev)
	if res.Committed != nil {
		g := res.Committed.Geom()
		s.log.Debug().
			Str("id", g.ID.String()).
			Stringer("kind", res.Committed.Kind()).
			Stringer("color", g.Color).
			Int("count", s.store.Len()).
			Msg("shape committed")
	}
	if res.Redraw {
		s.requestRedraw()
	}
}

// SetActiveColor changes the colour of the next preview and commit.
func (s *Surface) SetActiveColor(c shape.Color) {
	s.machine.SetColor(c)
	s.log.Debug().Stringer("color", c).Msg("active color")
}

// SetActiveShapeKind changes the kind of the next preview and commit.
func (s *Surface) SetActiveShapeKind(k shape.Kind) {
	s.machine.SetKind(k)
	s.log.Debug().Stringer("kind", s.machine.Kind()).Msg("active shape")
}

// ActiveColor returns the colour used for new shapes.
func (s *Surface) ActiveColor() shape.Color { return s.machine.Color() }

// ActiveShapeKind returns the kind used for new shapes.
func (s *Surface) ActiveShapeKind() shape.Kind { return s.machine.Kind() }

// RequestUndo removes the most recent shape.
func (s *Surface) RequestUndo() bool {
	ok := s.store.Undo()
	s.log.Debug().Bool("ok", ok).Int("count", s.store.Len()).Msg("undo")
	if ok {
		s.requestRedraw()
	}
	return ok
}

// RequestRedo restores the most recently undone shape.
func (s *Surface) RequestRedo() bool {
	ok := s.store.Redo()
	s.log.Debug().Bool("ok", ok).Int("count", s.store.Len()).Msg("redo")
	if ok {
		s.requestRedraw()
	}
	return ok
}

// RequestClear empties the canvas, both history stacks and any preview.
func (s *Surface) RequestClear() {
	s.store.Clear()
	s.machine.Reset()
	s.log.Debug().Msg("canvas cleared")
	s.requestRedraw()
}

// SetInvalidate replaces the redraw callback. Hosts that create their
// surface before their window exists install it here.
func (s *Surface) SetInvalidate(fn func()) { s.invalidate = fn }

// Snapshot returns the committed shapes in commit order.
func (s *Surface) Snapshot() []shape.Shape { return s.store.Snapshot() }

// Preview returns the in-progress gesture shape, if any.
func (s *Surface) Preview() (shape.Shape, bool) { return s.machine.Preview() }

// GestureState reports the gesture machine's state.
func (s *Surface) GestureState() gesture.State { return s.machine.State() }

// Len returns the number of committed shapes.
func (s *Surface) Len() int { return s.store.Len() }

// Cap returns the maximum number of committed shapes.
func (s *Surface) Cap() int { return s.store.Cap() }

// CanUndo reports whether RequestUndo would change anything.
func (s *Surface) CanUndo() bool { return s.store.CanUndo() }

// CanRedo reports whether RequestRedo would change anything.
func (s *Surface) CanRedo() bool { return s.store.CanRedo() }

// Render replays the committed shapes in order, then the preview. It does
// not modify the surface.
func (s *Surface) Render(t shape.Target) {
	for _, sh := range s.store.Snapshot() {
		shape.Render(sh, t, false)
	}
	if p, ok := s.machine.Preview(); ok {
		shape.Render(p, t, true)
	}
}

func (s *Surface) requestRedraw() {
	if s.invalidate != nil {
		s.invalidate()
	}
}
