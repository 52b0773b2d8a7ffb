package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSweepCache(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	next := now.Add(3 * time.Hour)

	t.Run("unknown store is never skipped", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		assert.False(t, c.CanSkip(1, now))
	})

	t.Run("skip until the next boundary", func(t *testing.T) {
		c := NewSweepCache(24 * time.Hour)
		c.Set(1, 0, &next, now)
		assert.True(t, c.CanSkip(1, now.Add(2*time.Hour)))
		assert.False(t, c.CanSkip(1, next))
	})

	t.Run("entry expires after ttl", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		c.Set(1, 0, &next, now)
		assert.False(t, c.CanSkip(1, now.Add(time.Hour)))
	})

	t.Run("empty store skipped until ttl", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		c.Set(1, 0, nil, now)
		assert.True(t, c.CanSkip(1, now.Add(59*time.Minute)))
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		c.Set(1, 0, nil, now)
		c.Invalidate(1)
		assert.False(t, c.CanSkip(1, now))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("set after invalidate is dropped", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		gen := c.Generation(1)
		c.Invalidate(1)
		assert.False(t, c.Set(1, gen, nil, now))
		assert.False(t, c.CanSkip(1, now))

		assert.True(t, c.Set(1, c.Generation(1), nil, now))
		assert.True(t, c.CanSkip(1, now))
	})

	t.Run("stored value is a copy", func(t *testing.T) {
		c := NewSweepCache(24 * time.Hour)
		n := next
		c.Set(1, 0, &n, now)
		n = now
		assert.True(t, c.CanSkip(1, now.Add(time.Hour)))
	})

	t.Run("concurrent use", func(t *testing.T) {
		c := NewSweepCache(time.Hour)
		var wg sync.WaitGroup
		for i := int64(0); i < 20; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				c.Set(id, c.Generation(id), &next, now)
				c.CanSkip(id, now)
				c.Invalidate(id)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 0, c.Len())
	})
}
