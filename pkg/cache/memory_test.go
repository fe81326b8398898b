package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[string]()
		defer m.Close()

		_, err := m.Get(ctx, "nope")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("stores and overwrites", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[int]()
		defer m.Close()

		require.NoError(t, m.Set(ctx, "k", 1, 0))
		require.NoError(t, m.Set(ctx, "k", 2, 0))

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("positive ttl expires on the injected clock", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		m := cache.NewMemory[string](cache.WithClock(clock.Now))
		defer m.Close()

		require.NoError(t, m.Set(ctx, "k", "v", time.Hour))

		clock.Advance(59 * time.Minute)
		_, err := m.Get(ctx, "k")
		require.NoError(t, err)

		clock.Advance(time.Minute)
		_, err = m.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		assert.Zero(t, m.Len())
	})

	t.Run("zero and negative ttl never expire", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		m := cache.NewMemory[string](cache.WithClock(clock.Now))
		defer m.Close()

		require.NoError(t, m.Set(ctx, "zero", "a", 0))
		require.NoError(t, m.Set(ctx, "neg", "b", -time.Second))

		clock.Advance(365 * 24 * time.Hour)

		_, err := m.Get(ctx, "zero")
		require.NoError(t, err)
		_, err = m.Get(ctx, "neg")
		require.NoError(t, err)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[string]()
		defer m.Close()

		require.NoError(t, m.Set(ctx, "k", "v", 0))
		require.NoError(t, m.Delete(ctx, "k"))
		require.NoError(t, m.Delete(ctx, "k"))

		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("capacity drops least recently read", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[string](cache.WithCapacity(2))
		defer m.Close()

		require.NoError(t, m.Set(ctx, "a", "1", 0))
		require.NoError(t, m.Set(ctx, "b", "2", 0))

		_, err := m.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, m.Set(ctx, "c", "3", 0))

		_, err = m.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = m.Get(ctx, "a")
		require.NoError(t, err)
		_, err = m.Get(ctx, "c")
		require.NoError(t, err)
	})

	t.Run("sweeper purges expired entries", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[string](cache.WithSweepInterval(5 * time.Millisecond))
		defer m.Close()

		require.NoError(t, m.Set(ctx, "k", "v", time.Millisecond))

		require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("closed store rejects operations", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[string]()
		require.NoError(t, m.Close())
		require.NoError(t, m.Close())

		require.ErrorIs(t, m.Set(ctx, "k", "v", 0), cache.ErrClosed)
		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrClosed)
		require.ErrorIs(t, m.Delete(ctx, "k"), cache.ErrClosed)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		m := cache.NewMemory[int](cache.WithCapacity(16))
		defer m.Close()

		var wg sync.WaitGroup
		for i := range 32 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := string(rune('a' + n%20))
				_ = m.Set(ctx, key, n, time.Minute)
				_, _ = m.Get(ctx, key)
				_ = m.Delete(ctx, key)
			}(i)
		}
		wg.Wait()

		assert.LessOrEqual(t, m.Len(), 16)
	})
}

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	c := cache.JSONCodec[payload]{}

	_, err := c.Decode([]byte("{not json"))
	require.ErrorIs(t, err, cache.ErrDecode)

	_, err = cache.JSONCodec[func()]{}.Encode(func() {})
	require.ErrorIs(t, err, cache.ErrEncode)
}
