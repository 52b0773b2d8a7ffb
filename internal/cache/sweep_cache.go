package cache

import (
	"sync"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
)

type sweepEntry struct {
	next      *time.Time
	expiresAt time.Time
}

// SweepCache remembers, per store, a lower bound of the next end boundary
// among its active reservations. The frequent sweep skips a store while the
// bound is still in the future. Entries live for ttl and are dropped when
// the store gets a new reservation.
//
// Every Invalidate bumps the store's generation. A sweep reads the
// generation before it queries the store and passes it back to Set, so a
// bound computed before a concurrent reservation is never written.
type SweepCache struct {
	mu    sync.RWMutex
	cache map[int64]sweepEntry
	gens  map[int64]uint64
	ttl   time.Duration
}

func NewSweepCache(ttl time.Duration) *SweepCache {
	return &SweepCache{
		cache: make(map[int64]sweepEntry),
		gens:  make(map[int64]uint64),
		ttl:   ttl,
	}
}

// Generation returns the store's current invalidation counter.
func (c *SweepCache) Generation(storeID int64) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[storeID]
}

// Set records next for the store unless the store was invalidated after gen
// was read. A nil next means the store had nothing active. It reports
// whether the entry was stored.
func (c *SweepCache) Set(storeID int64, gen uint64, next *time.Time, now time.Time) bool {
	var nextCopy *time.Time
	if next != nil {
		n := *next
		nextCopy = &n
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[storeID] != gen {
		return false
	}
	c.cache[storeID] = sweepEntry{next: nextCopy, expiresAt: now.Add(c.ttl)}
	metrics.SweepCacheItems.Set(float64(len(c.cache)))
	return true
}

// CanSkip reports whether the store certainly has nothing to expire at now.
func (c *SweepCache) CanSkip(storeID int64, now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, found := c.cache[storeID]
	if !found || !now.Before(entry.expiresAt) {
		return false
	}
	return entry.next == nil || now.Before(*entry.next)
}

func (c *SweepCache) Invalidate(storeID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[storeID]++
	if _, found := c.cache[storeID]; found {
		delete(c.cache, storeID)
		metrics.SweepCacheItems.Set(float64(len(c.cache)))
	}
}

func (c *SweepCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
