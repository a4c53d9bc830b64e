package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(2)

	require.Nil(t, c.Put(&Session{ID: "a"}))
	require.Nil(t, c.Put(&Session{ID: "b"}))

	// Touch a so b becomes the eviction candidate.
	require.NotNil(t, c.Get("a"))

	evicted := c.Put(&Session{ID: "c"})
	require.NotNil(t, evicted)
	require.Equal(t, "b", evicted.ID)
	require.Nil(t, c.Get("b"))
	require.Equal(t, 2, c.Len())
}

func TestLRUCache_PutExistingReplaces(t *testing.T) {
	c := NewLRUCache(1)
	require.Nil(t, c.Put(&Session{ID: "a"}))

	replacement := &Session{ID: "a"}
	require.Nil(t, c.Put(replacement))
	require.Same(t, replacement, c.Get("a"))
	require.Equal(t, 1, c.Len())
}

func TestLRUCache_InvalidateAndClear(t *testing.T) {
	c := NewLRUCache(3)
	c.Put(&Session{ID: "a"})
	c.Put(&Session{ID: "b"})

	require.Equal(t, "a", c.Invalidate("a").ID)
	require.Nil(t, c.Invalidate("a"))

	cleared := c.Clear()
	require.Len(t, cleared, 1)
	require.Equal(t, 0, c.Len())
}
