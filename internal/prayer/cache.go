package prayer

import (
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/solat/internal/zone"
)

// Key identifies one cached day. Schedules are cached per zone, not per masjid.
type Key struct {
	Zone zone.Code
	Date string
}

// Entry is a cached schedule and the time it was stored.
type Entry struct {
	Schedule Schedule
	Zone     zone.Code
	StoredAt time.Time
}

// Cache memoises one schedule per Key. Entries past their max age leave the
// fresh tier on the next read but stay reachable through GetStale until a newer
// Put supersedes them or staleRetention elapses. There is no sweeper.
type Cache struct {
	mu             sync.Mutex
	clock          Clock
	staleRetention time.Duration
	fresh          map[Key]Entry
	stale          map[Key]Entry
}

// NewCache creates an empty cache. A zero staleRetention keeps stale entries forever.
func NewCache(clock Clock, staleRetention time.Duration) *Cache {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cache{
		clock:          clock,
		staleRetention: staleRetention,
		fresh:          make(map[Key]Entry),
		stale:          make(map[Key]Entry),
	}
}

// Put stores s under key, replacing whatever was there.
func (c *Cache) Put(key Key, s Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fresh[key] = Entry{Schedule: s, Zone: key.Zone, StoredAt: c.clock.Now()}
	delete(c.stale, key)
}

// Get returns the schedule for key if it was stored no more than maxAge ago.
func (c *Cache) Get(key Key, maxAge time.Duration) (Schedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.fresh[key]
	if !ok {
		return Schedule{}, false
	}
	if c.clock.Now().Sub(e.StoredAt) > maxAge {
		delete(c.fresh, key)
		c.stale[key] = e
		return Schedule{}, false
	}
	return e.Schedule, true
}

// GetStale returns the last schedule stored for key regardless of its age.
func (c *Cache) GetStale(key Key) (Schedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.fresh[key]; ok {
		return e.Schedule, true
	}
	e, ok := c.stale[key]
	if !ok {
		return Schedule{}, false
	}
	if c.staleRetention > 0 && c.clock.Now().Sub(e.StoredAt) > c.staleRetention {
		delete(c.stale, key)
		return Schedule{}, false
	}
	return e.Schedule, true
}

// Len reports the number of keys held in either tier.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fresh) + len(c.stale)
}
