// Package gesture turns a stream of pointer events into at most one shape
// per gesture.
package gesture

import (
	"github.com/rs/zerolog"

	"github.com/example/shapepad/internal/shape"
)

// Committer receives finished shapes. history.Store satisfies it.
type Committer interface {
	HasCapacity() bool
	Commit(s shape.Shape) error
}

// Result describes the effect of one event.
type Result struct {
	// Redraw is set when the preview or the committed set changed.
	Redraw bool
	// Committed is the shape added to the committer, if any.
	Committed shape.Shape
}

// Machine is the gesture state machine for one drawing surface. Every
// transition is total: unresolvable or out-of-order events are absorbed and
// the machine always returns to Idle after an up or cancel.
type Machine struct {
	committer Committer
	log       zerolog.Logger

	kind  shape.Kind
	color shape.Color

	state           State
	activePointerID int
	startX, startY  float64
	endX, endY      float64
	cancelled       bool
	preview         shape.Shape
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for transition traces.
func WithLogger(l zerolog.Logger) Option { return func(m *Machine) { m.log = l } }

// WithKind sets the initial shape kind.
func WithKind(k shape.Kind) Option { return func(m *Machine) { m.kind = k } }

// WithColor sets the initial colour.
func WithColor(c shape.Color) Option { return func(m *Machine) { m.color = c } }

// New creates an idle machine committing into c. The defaults are a black
// ellipse.
func New(c Committer, opts ...Option) *Machine {
	m := &Machine{
		committer:       c,
		log:             zerolog.Nop(),
		kind:            shape.KindEllipse,
		color:           shape.Black,
		activePointerID: -1,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Kind returns the kind used for the next preview or commit.
func (m *Machine) Kind() shape.Kind { return m.kind }

// Color returns the colour used for the next preview or commit.
func (m *Machine) Color() shape.Color { return m.color }

// SetKind changes the kind for subsequent previews and commits.
func (m *Machine) SetKind(k shape.Kind) {
	if k.Valid() {
		m.kind = k
	}
}

// SetColor changes the colour for subsequent previews and commits.
func (m *Machine) SetColor(c shape.Color) { m.color = c }

// Preview returns the rubber-band shape of the gesture in progress.
func (m *Machine) Preview() (shape.Shape, bool) {
	return m.preview, m.preview != nil
}

// Cancelled reports whether the current session has been cancelled.
func (m *Machine) Cancelled() bool { return m.cancelled }

// Handle applies one event.
func (m *Machine) Handle(ev Event) Result {
	switch ev.Kind {
	case Down:
		return m.down(ev)
	case PointerDown:
		return m.pointerDown(ev)
	case Move:
		return m.move(ev)
	case Up, PointerUp:
		return m.up(ev)
	case Cancel:
		return m.cancel()
	}
	return Result{}
}

// Reset abandons the session in progress and drops its preview.
func (m *Machine) Reset() {
	m.state = Idle
	m.activePointerID = -1
	m.cancelled = false
	m.preview = nil
}

func (m *Machine) down(ev Event) Result {
	redraw := m.preview != nil
	if m.state != Idle {
		m.log.Debug().Str("state", m.state.String()).Msg("gesture restarted by a new down")
	}
	m.state = Tracking
	m.activePointerID = ev.PointerID
	m.startX, m.startY = ev.X, ev.Y
	m.endX, m.endY = ev.X, ev.Y
	m.cancelled = false
	m.preview = nil
	return Result{Redraw: redraw}
}

func (m *Machine) pointerDown(ev Event) Result {
	if m.state != Tracking || ev.PointerCount <= 1 {
		return Result{}
	}
	m.log.Debug().Int("pointer", ev.PointerID).Int("count", ev.PointerCount).Msg("gesture cancelled by chord")
	m.state = Cancelled
	m.cancelled = true
	m.preview = nil
	return Result{Redraw: true}
}

func (m *Machine) move(ev Event) Result {
	if m.state != Tracking || m.cancelled || ev.PointerID != m.activePointerID {
		return Result{}
	}
	m.endX, m.endY = ev.X, ev.Y
	m.preview = shape.New(m.kind, m.startX, m.startY, m.endX, m.endY, m.color)
	return Result{Redraw: true}
}

func (m *Machine) up(ev Event) Result {
	if m.state == Idle {
		return Result{}
	}
	var res Result
	switch {
	case ev.PointerID != m.activePointerID:
		m.log.Debug().Int("pointer", ev.PointerID).Int("active", m.activePointerID).Msg("up from untracked pointer")
	case m.cancelled:
	case !m.committer.HasCapacity():
		m.log.Debug().Msg("history full, gesture dropped")
	default:
		sh := shape.New(m.kind, m.startX, m.startY, m.endX, m.endY, m.color)
		if err := m.committer.Commit(sh); err != nil {
			m.log.Debug().Err(err).Msg("commit rejected")
		} else {
			res.Committed = sh
		}
	}
	res.Redraw = true
	m.Reset()
	return res
}

func (m *Machine) cancel() Result {
	redraw := m.preview != nil
	m.Reset()
	m.cancelled = true
	return Result{Redraw: redraw}
}
