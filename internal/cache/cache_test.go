package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sizeByLen charges one byte per character, which makes the budget
// arithmetic in these tests readable.
func sizeByLen(v string) int64 {
	return int64(len(v))
}

func newTestCache(maxBytes int64, ttl time.Duration) *Smart[string] {
	return New[string](Config{
		MaxMemoryBytes:  maxBytes,
		DefaultTTL:      ttl,
		CleanupInterval: time.Hour,
	}, sizeByLen)
}

func TestGetSet(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.Set("k", "valor")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "valor", got)

	_, ok = c.Get("ausente")
	assert.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.SetTTL("k", "valor", 10*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "expired entry must not be served")

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Expirations)
	assert.Equal(t, 0, st.Entries)
}

func TestLRUEviction(t *testing.T) {
	// Budget fits exactly two 5-byte entries.
	c := newTestCache(10, time.Minute)

	c.Set("a", "aaaaa")
	c.Set("b", "bbbbb")

	// Touch "a" so "b" becomes the LRU victim.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", "ccccc")

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")
	assert.True(t, okA)
	assert.False(t, okB, "LRU entry must be evicted")
	assert.True(t, okC)

	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestMemoryBudgetInvariant(t *testing.T) {
	c := newTestCache(20, time.Minute)

	for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
		c.Set(k, "12345678") // 8 bytes each
	}

	st := c.Stats()
	assert.LessOrEqual(t, st.MemoryBytes, int64(20))
	assert.Equal(t, st.Entries, 2)
}

func TestOversizedEntryRefused(t *testing.T) {
	c := newTestCache(4, time.Minute)

	c.Set("k", "muito grande")

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestSetReplacesExisting(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.Set("k", "um")
	c.Set("k", "dois")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "dois", got)
	assert.Equal(t, 1, c.Stats().Entries)
	assert.Equal(t, int64(4), c.Stats().MemoryBytes)
}

func TestDeleteAndClear(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.Set("a", "111")
	c.Set("b", "222")

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	st := c.Stats()
	assert.Equal(t, 0, st.Entries)
	assert.Equal(t, int64(0), st.MemoryBytes)
}

func TestStatsCounters(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.Set("k", "valor")
	_, _ = c.Get("k")
	_, _ = c.Get("k")
	_, _ = c.Get("miss")

	st := c.Stats()
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestEvictHalf(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, "xxxx")
	}

	c.EvictHalf()

	st := c.Stats()
	assert.Equal(t, 2, st.Entries)

	// LRU entries go first: "a" and "b" were inserted earliest.
	_, okA := c.Get("a")
	_, okD := c.Get("d")
	assert.False(t, okA)
	assert.True(t, okD)
}

func TestSweep(t *testing.T) {
	c := newTestCache(1024, time.Minute)

	c.SetTTL("velho", "x", 5*time.Millisecond)
	c.Set("novo", "y")

	time.Sleep(15 * time.Millisecond)

	removed := c.Sweep()
	assert.Equal(t, 1, removed)

	_, ok := c.Get("novo")
	assert.True(t, ok)
}

func TestMemoryPressureSignal(t *testing.T) {
	c := newTestCache(1024, time.Minute)
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(k, "xxxx")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pressure := make(chan struct{}, 1)
	c.Start(ctx, pressure)

	pressure <- struct{}{}

	// The signal is handled by the background goroutine.
	assert.Eventually(t, func() bool {
		return c.Stats().Entries == 2
	}, time.Second, 5*time.Millisecond)
}
