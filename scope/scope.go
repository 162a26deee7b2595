// Package scope implements the lexically-scoped symbol stack shared by the
// expander for its three parallel tables: macro definitions, variable
// bindings, and the call-site recursion marker.
//
// The design uses a single flat slice of entries plus a stack of frames
// recording which names were introduced in each frame, so that a child
// scope never holds a back-reference into its parent (nothing here is a
// tree; it's an arena). Because scopes nest in
// strict LIFO order, the names recorded in the top frame are always exactly
// the tail of the flat slice, so ending a scope is a slice truncation, not a
// search-and-remove.
package scope

import "github.com/dolthub/swiss"

// Named is implemented by anything that can be pushed onto a Stack: it must
// expose the name under which it is visible to Find.
type Named interface {
	Name() string
}

// Stack is a generic lexically-scoped symbol table: a flat vector of
// entries plus a stack of scope frames. Lookup is last-in-first-out:
// shadowing is automatic and inner bindings hide outer ones with the same
// name until their scope ends.
//
// The zero value is not usable; construct with New.
type Stack[T Named] struct {
	entries []T
	frames  [][]string
	// byName maps a name to the stack of indices (into entries) at which it
	// currently has a binding, most recent last. A swiss.Map is used instead
	// of a built-in map because Find is on the hot path of macro expansion,
	// which can blow up exponentially through nested R() calls.
	byName *swiss.Map[string, []int]
}

// New creates an empty scoped stack with no open scope. Push and Find may
// not be called until NewScope has been called at least once.
func New[T Named]() *Stack[T] {
	return &Stack[T]{byName: swiss.NewMap[string, []int](16)}
}

// NewScope opens a new, empty scope frame on top of the stack.
func (s *Stack[T]) NewScope() {
	s.frames = append(s.frames, nil)
}

// EndScope closes the top scope frame, removing every binding it
// introduced. Calling EndScope with no open frame is a programmer error
// and panics.
func (s *Stack[T]) EndScope() {
	if len(s.frames) == 0 {
		panic("scope: EndScope called with no open scope")
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	// the frame's names are, by construction, exactly the tail of entries:
	// nothing can have been pushed after them without also having been
	// popped already, since scopes are strictly LIFO.
	s.entries = s.entries[:len(s.entries)-len(top)]

	for _, name := range top {
		idxs, ok := s.byName.Get(name)
		if !ok || len(idxs) == 0 {
			panic("scope: EndScope could not find a binding to remove for " + name)
		}
		idxs = idxs[:len(idxs)-1]
		if len(idxs) == 0 {
			s.byName.Delete(name)
		} else {
			s.byName.Put(name, idxs)
		}
	}
}

// Push appends item to the flat list and records it in the top scope frame.
// Calling Push with no open frame is a programmer error and panics.
func (s *Stack[T]) Push(item T) {
	if len(s.frames) == 0 {
		panic("scope: Push called with no open scope")
	}
	name := item.Name()
	idx := len(s.entries)
	s.entries = append(s.entries, item)

	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], name)

	idxs, _ := s.byName.Get(name)
	s.byName.Put(name, append(idxs, idx))
}

// Find returns the most recently pushed entry still in scope for name, and
// true, or the zero value and false if no such entry exists.
func (s *Stack[T]) Find(name string) (T, bool) {
	idxs, ok := s.byName.Get(name)
	if !ok || len(idxs) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[idxs[len(idxs)-1]], true
}

// Depth reports the number of currently open scope frames, mostly useful
// for assertions in tests.
func (s *Stack[T]) Depth() int { return len(s.frames) }
