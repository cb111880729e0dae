package cache

import (
	"sync"
	"time"

	"github.com/epeers/riskprofile/internal/metrics"
	"github.com/epeers/riskprofile/internal/models"
)

// ProfileCache provides an in-memory TTL cache of active risk profiles keyed by investor ID.
//
// Fills are guarded by a generation token: read it with Generation before loading the
// profile from storage and pass it to Set. Invalidate and Clear advance the generation,
// so a load that raced with a supersession is dropped instead of cached.
type ProfileCache struct {
	profiles    map[string]profileEntry
	generations map[string]uint64
	counter     uint64
	clearedAt   uint64
	mu          sync.RWMutex
	ttl         time.Duration
	now         func() time.Time
}

type profileEntry struct {
	profile   models.RiskProfile
	fetchedAt time.Time
}

// NewProfileCache creates a new profile cache. A non-positive ttl disables caching.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		profiles:    make(map[string]profileEntry),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

// Get retrieves a cached profile if fresh. The caller receives its own copy.
func (c *ProfileCache) Get(investorID string) (*models.RiskProfile, bool) {
	c.mu.RLock()
	entry, exists := c.profiles[investorID]
	c.mu.RUnlock()

	if !exists || c.now().Sub(entry.fetchedAt) > c.ttl {
		metrics.ProfileCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.ProfileCacheLookups.WithLabelValues("hit").Inc()
	p := entry.profile
	return &p, true
}

// Generation returns the investor's current fill token
func (c *ProfileCache) Generation(investorID string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation(investorID)
}

func (c *ProfileCache) generation(investorID string) uint64 {
	return max(c.generations[investorID], c.clearedAt)
}

// Set caches a copy of the profile when gen is still the investor's current generation.
// It reports whether the profile was stored.
func (c *ProfileCache) Set(p *models.RiskProfile, gen uint64) bool {
	if c.ttl <= 0 || p == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation(p.InvestorID) != gen {
		return false
	}
	c.profiles[p.InvestorID] = profileEntry{
		profile:   *p,
		fetchedAt: c.now(),
	}
	return true
}

// Invalidate removes an investor's profile from the cache and rejects fills started before it
func (c *ProfileCache) Invalidate(investorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.profiles, investorID)
	c.counter++
	c.generations[investorID] = c.counter
}

// Clear removes all cached data and rejects every fill started before it
func (c *ProfileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profiles = make(map[string]profileEntry)
	c.generations = make(map[string]uint64)
	c.counter++
	c.clearedAt = c.counter
}
