package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/epeers/riskprofile/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCache_SetGet(t *testing.T) {
	c := NewProfileCache(time.Minute)
	_, ok := c.Get("inv-1")
	assert.False(t, ok)

	c.Set(&models.RiskProfile{ID: "p-1", InvestorID: "inv-1", IsActive: true}, c.Generation("inv-1"))
	p, ok := c.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, "p-1", p.ID)

	// callers get a copy
	p.ID = "mutated"
	again, _ := c.Get("inv-1")
	assert.Equal(t, "p-1", again.ID)
}

func TestProfileCache_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewProfileCache(5 * time.Minute)
	c.now = func() time.Time { return now }

	c.Set(&models.RiskProfile{ID: "p-1", InvestorID: "inv-1"}, c.Generation("inv-1"))
	now = now.Add(5 * time.Minute)
	_, ok := c.Get("inv-1")
	assert.True(t, ok, "entry is fresh up to the ttl")

	now = now.Add(time.Second)
	_, ok = c.Get("inv-1")
	assert.False(t, ok)
}

func TestProfileCache_Invalidate(t *testing.T) {
	c := NewProfileCache(time.Minute)
	c.Set(&models.RiskProfile{ID: "p-1", InvestorID: "inv-1"}, c.Generation("inv-1"))
	c.Set(&models.RiskProfile{ID: "p-9", InvestorID: "inv-2"}, c.Generation("inv-2"))

	c.Invalidate("inv-1")
	_, ok := c.Get("inv-1")
	assert.False(t, ok)
	_, ok = c.Get("inv-2")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("inv-2")
	assert.False(t, ok)
}

func TestProfileCache_FillAfterInvalidateIsDropped(t *testing.T) {
	c := NewProfileCache(time.Minute)

	// A reader misses and starts loading the old active profile
	_, ok := c.Get("inv-1")
	require.False(t, ok)
	gen := c.Generation("inv-1")

	// A new assessment commits and invalidates before the reader fills
	c.Invalidate("inv-1")
	stored := c.Set(&models.RiskProfile{ID: "old", InvestorID: "inv-1", IsActive: true}, gen)
	assert.False(t, stored)
	_, ok = c.Get("inv-1")
	assert.False(t, ok, "a superseded profile must not be cached")

	// The next reader loads the new profile and fills normally
	assert.True(t, c.Set(&models.RiskProfile{ID: "new", InvestorID: "inv-1", IsActive: true}, c.Generation("inv-1")))
	p, ok := c.Get("inv-1")
	require.True(t, ok)
	assert.Equal(t, "new", p.ID)
}

func TestProfileCache_FillAfterClearIsDropped(t *testing.T) {
	c := NewProfileCache(time.Minute)
	gen := c.Generation("inv-1")
	other := c.Generation("inv-2")
	c.Invalidate("inv-2")

	c.Clear()
	assert.False(t, c.Set(&models.RiskProfile{ID: "old", InvestorID: "inv-1"}, gen))
	assert.False(t, c.Set(&models.RiskProfile{ID: "old", InvestorID: "inv-2"}, other))
	assert.True(t, c.Set(&models.RiskProfile{ID: "new", InvestorID: "inv-2"}, c.Generation("inv-2")))
}

func TestProfileCache_InvalidateOnlyAffectsItsInvestor(t *testing.T) {
	c := NewProfileCache(time.Minute)
	gen := c.Generation("inv-2")
	c.Invalidate("inv-1")
	assert.True(t, c.Set(&models.RiskProfile{ID: "p-9", InvestorID: "inv-2"}, gen))
}

func TestProfileCache_Disabled(t *testing.T) {
	c := NewProfileCache(0)
	c.Set(&models.RiskProfile{ID: "p-1", InvestorID: "inv-1"}, c.Generation("inv-1"))
	_, ok := c.Get("inv-1")
	assert.False(t, ok)
}

func TestProfileCache_ConcurrentAccess(t *testing.T) {
	c := NewProfileCache(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			c.Set(&models.RiskProfile{ID: "p", InvestorID: "inv-1"}, c.Generation("inv-1"))
		}()
		go func() {
			defer wg.Done()
			c.Get("inv-1")
		}()
		go func() {
			defer wg.Done()
			c.Invalidate("inv-1")
		}()
	}
	wg.Wait()
}
