package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := NewMemory(time.Minute)
	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", []byte("v"))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory(time.Second)
	c.now = func() time.Time { return now }

	c.Set("a", []byte("1"))
	now = now.Add(2 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSetSweepsExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory(time.Second)
	c.now = func() time.Time { return now }

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	now = now.Add(2 * time.Second)
	c.Set("c", []byte("3"))
	assert.Equal(t, 1, c.Len())
}

func TestReplaceKeepsSingleEntry(t *testing.T) {
	c := NewMemory(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Replace("c", []byte("3"))
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	got, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), got)
}
