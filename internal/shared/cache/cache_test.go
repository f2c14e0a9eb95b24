package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_GetSet(t *testing.T) {
	c, err := NewTTLCache[string, int](4, time.Minute)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	value, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestTTLCache_Expiry(t *testing.T) {
	c, err := NewTTLCache[string, int](4, 10*time.Millisecond)
	require.NoError(t, err)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_EvictsOldest(t *testing.T) {
	c, err := NewTTLCache[int, string](2, time.Minute)
	require.NoError(t, err)

	c.Set(1, "one")
	c.Set(2, "two")
	c.Set(3, "three")

	_, ok := c.Get(1)
	assert.False(t, ok)

	value, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "three", value)
}

func TestTTLCache_Remove(t *testing.T) {
	c, err := NewTTLCache[string, int](4, time.Minute)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Remove("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
