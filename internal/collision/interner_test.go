package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInterner(t *testing.T) {
	n := NewInterner()

	require.NotNil(t, n)
	require.Equal(t, 0, n.Count())
	require.False(t, n.HasCollision())
	require.Empty(t, n.Strings())
}

func TestInterner_Intern_Success(t *testing.T) {
	n := NewInterner()

	sym := n.Intern("GET", 0x1234567890abcdef)
	require.Equal(t, int32(0), sym)
	require.Equal(t, 1, n.Count())
	require.False(t, n.HasCollision())

	sym2 := n.Intern("POST", 0xfedcba0987654321)
	require.Equal(t, int32(1), sym2)
	require.Equal(t, 2, n.Count())
	require.False(t, n.HasCollision())
}

func TestInterner_Intern_SameStringReturnsSameSymbol(t *testing.T) {
	n := NewInterner()

	sym1 := n.Intern("GET", 0x1234567890abcdef)
	sym2 := n.Intern("GET", 0x1234567890abcdef)

	require.Equal(t, sym1, sym2)
	require.Equal(t, 1, n.Count())
}

func TestInterner_Intern_HashCollision(t *testing.T) {
	n := NewInterner()

	sym1 := n.Intern("GET", 0x0001)
	require.False(t, n.HasCollision())

	// Same hash, different string: must be assigned a distinct symbol and
	// flip the collision flag, not be mistaken for "GET".
	sym2 := n.Intern("PUT", 0x0001)
	require.True(t, n.HasCollision())
	require.NotEqual(t, sym1, sym2)
	require.Equal(t, 2, n.Count())

	s, ok := n.Lookup(sym1)
	require.True(t, ok)
	require.Equal(t, "GET", s)

	s, ok = n.Lookup(sym2)
	require.True(t, ok)
	require.Equal(t, "PUT", s)
}

func TestInterner_Lookup_OutOfRange(t *testing.T) {
	n := NewInterner()
	n.Intern("GET", 0x0001)

	_, ok := n.Lookup(-1)
	require.False(t, ok)

	_, ok = n.Lookup(5)
	require.False(t, ok)
}

func TestInterner_Strings_PreservesInsertionOrder(t *testing.T) {
	n := NewInterner()

	words := []struct {
		s string
		h uint64
	}{
		{"GET", 0x0001},
		{"POST", 0x0002},
		{"PUT", 0x0003},
		{"DELETE", 0x0004},
	}
	for _, w := range words {
		n.Intern(w.s, w.h)
	}

	require.Equal(t, []string{"GET", "POST", "PUT", "DELETE"}, n.Strings())
}

func TestInterner_Reset(t *testing.T) {
	n := NewInterner()
	n.Intern("GET", 0x1234567890abcdef)
	n.Intern("PUT", 0x1234567890abcdef)
	require.True(t, n.HasCollision())
	require.Equal(t, 2, n.Count())

	n.Reset()

	require.Equal(t, 0, n.Count())
	require.False(t, n.HasCollision())
	require.Empty(t, n.Strings())

	sym := n.Intern("POST", 0x0002)
	require.Equal(t, int32(0), sym)
	require.Equal(t, 1, n.Count())
}

func TestInterner_MultipleCollisionGroups(t *testing.T) {
	n := NewInterner()

	n.Intern("a", 0x0001)
	n.Intern("b", 0x0001) // collides with "a"
	require.True(t, n.HasCollision())

	n.Intern("c", 0x0002)
	n.Intern("d", 0x0002) // collides with "c"

	require.Equal(t, 4, n.Count())
	require.Equal(t, []string{"a", "b", "c", "d"}, n.Strings())
}
