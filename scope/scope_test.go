package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedInt struct {
	name string
	val  int
}

func (n namedInt) Name() string { return n.name }

func TestFindAndShadowing(t *testing.T) {
	s := New[namedInt]()
	s.NewScope()
	s.Push(namedInt{"x", 1})

	s.NewScope()
	s.Push(namedInt{"x", 2})
	got, ok := s.Find("x")
	require.True(t, ok)
	assert.Equal(t, 2, got.val)
	s.EndScope()

	got, ok = s.Find("x")
	require.True(t, ok)
	assert.Equal(t, 1, got.val, "outer binding should be restored once the inner scope ends")
	s.EndScope()

	_, ok = s.Find("x")
	assert.False(t, ok, "no binding should remain once the outer scope ends too")
}

func TestUnrelatedNamesDoNotInterfere(t *testing.T) {
	s := New[namedInt]()
	s.NewScope()
	s.Push(namedInt{"a", 1})
	s.Push(namedInt{"b", 2})
	s.NewScope()
	s.Push(namedInt{"c", 3})
	s.EndScope()

	a, ok := s.Find("a")
	require.True(t, ok)
	assert.Equal(t, 1, a.val)

	b, ok := s.Find("b")
	require.True(t, ok)
	assert.Equal(t, 2, b.val)

	_, ok = s.Find("c")
	assert.False(t, ok, "c went out of scope when its frame ended")
	s.EndScope()
}

func TestEndScopeWithNoOpenScopePanics(t *testing.T) {
	s := New[namedInt]()
	assert.Panics(t, s.EndScope)
}

func TestPushWithNoOpenScopePanics(t *testing.T) {
	s := New[namedInt]()
	assert.Panics(t, func() { s.Push(namedInt{"x", 1}) })
}

func TestDepth(t *testing.T) {
	s := New[namedInt]()
	assert.Equal(t, 0, s.Depth())
	s.NewScope()
	s.NewScope()
	assert.Equal(t, 2, s.Depth())
	s.EndScope()
	assert.Equal(t, 1, s.Depth())
}
