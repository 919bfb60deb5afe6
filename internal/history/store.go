// Package history keeps the committed shapes of one drawing surface along
// with their undo and redo stacks.
package history

import (
	"errors"

	"github.com/example/shapepad/internal/shape"
)

// DefaultCapacity is the number of shapes a surface displays at once.
const DefaultCapacity = 122

// ErrFull is returned by Commit when the store is at capacity.
var ErrFull = errors.New("history: capacity reached")

// Store is a capacity-bounded, ordered list of committed shapes.
//
// Every shape on the undo stack is committed and every shape on the redo
// stack is not; the undo stack therefore always has one entry per committed
// shape. Store is not safe for concurrent use.
type Store struct {
	capacity  int
	committed []shape.Shape
	undo      []shape.Shape
	redo      []shape.Shape
}

// New creates a store bounded to capacity shapes. Values below one fall back
// to DefaultCapacity.
func New(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:  capacity,
		committed: make([]shape.Shape, 0, capacity),
	}
}

// Cap returns the maximum number of committed shapes.
func (s *Store) Cap() int { return s.capacity }

// Len returns the number of committed shapes.
func (s *Store) Len() int { return len(s.committed) }

// HasCapacity reports whether another shape can be committed.
func (s *Store) HasCapacity() bool { return len(s.committed) < s.capacity }

// CanUndo reports whether Undo would change anything.
func (s *Store) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (s *Store) CanRedo() bool { return len(s.redo) > 0 }

// Commit appends sh and invalidates the redo history. It returns ErrFull and
// leaves the store untouched when no slot is free.
func (s *Store) Commit(sh shape.Shape) error {
	if !s.HasCapacity() {
		return ErrFull
	}
	s.committed = append(s.committed, sh)
	s.undo = append(s.undo, sh)
	clear(s.redo)
	s.redo = s.redo[:0]
	return nil
}

// Undo removes the most recently committed (or redone) shape. The shape is
// located by identity, so it is removed even if it is no longer last.
func (s *Store) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	sh := pop(&s.undo)
	s.remove(sh)
	s.redo = append(s.redo, sh)
	return true
}

// Redo re-appends the most recently undone shape. Commit empties the redo
// stack, so len(committed)+len(redo) never exceeds the capacity and a redo
// always has room.
func (s *Store) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	sh := pop(&s.redo)
	s.committed = append(s.committed, sh)
	s.undo = append(s.undo, sh)
	return true
}

// Clear drops every committed shape and both stacks. It cannot be undone.
func (s *Store) Clear() {
	clear(s.committed)
	s.committed = s.committed[:0]
	s.undo = nil
	s.redo = nil
}

// Snapshot returns the committed shapes in commit order. The slice is a
// copy; shapes themselves are immutable.
func (s *Store) Snapshot() []shape.Shape {
	out := make([]shape.Shape, len(s.committed))
	copy(out, s.committed)
	return out
}

func (s *Store) remove(sh shape.Shape) {
	id := sh.Geom().ID
	for i := len(s.committed) - 1; i >= 0; i-- {
		if s.committed[i].Geom().ID == id {
			s.committed = append(s.committed[:i], s.committed[i+1:]...)
			return
		}
	}
}

func pop(stack *[]shape.Shape) shape.Shape {
	st := *stack
	sh := st[len(st)-1]
	st[len(st)-1] = nil
	*stack = st[:len(st)-1]
	return sh
}
