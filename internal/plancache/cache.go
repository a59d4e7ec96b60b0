package plancache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"

	"metroexit/internal/metro"
)

// maxPlans bounds the number of cached plans; every plan costs 1.
const maxPlans = 1 << 14

// Cache is an in-memory TTL cache of planned trips keyed by station pair.
// Plans are deterministic over the loaded tables, so a cached plan is only
// ever stale across a re-import.
type Cache struct {
	client *ristretto.Cache
	plans  *cache.Cache[*metro.TripPlan]
	ttl    time.Duration
}

// New creates a cache with the given TTL. A non-positive TTL disables
// caching. Close releases the cache's background goroutines.
func New(ttl time.Duration) (*Cache, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10 * maxPlans,
		MaxCost:            maxPlans,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create plan cache: %w", err)
	}
	ristrettoStore := ristrettostore.NewRistretto(client,
		store.WithExpiration(ttl),
		store.WithCost(1),
	)

	return &Cache{
		client: client,
		plans:  cache.New[*metro.TripPlan](ristrettoStore),
		ttl:    ttl,
	}, nil
}

func cacheKey(start, end string) string {
	return start + "|" + end
}

// Get retrieves a cached plan if it exists and hasn't expired.
func (c *Cache) Get(start, end string) (*metro.TripPlan, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	plan, err := c.plans.Get(context.Background(), cacheKey(start, end))
	if err != nil || plan == nil {
		return nil, false
	}
	return plan, true
}

// Set stores a plan in the cache. The plan is visible to Get once Set returns.
func (c *Cache) Set(start, end string, plan *metro.TripPlan) error {
	if c.ttl <= 0 {
		return nil
	}
	if err := c.plans.Set(context.Background(), cacheKey(start, end), plan); err != nil {
		return fmt.Errorf("cache plan %s to %s: %w", start, end, err)
	}
	c.client.Wait()
	return nil
}

// Plan returns the cached plan for start and end, planning and caching it on
// a miss. Errors are not cached.
func (c *Cache) Plan(network *metro.Network, start, end string) (*metro.TripPlan, bool, error) {
	if plan, ok := c.Get(start, end); ok {
		return plan, true, nil
	}
	plan, err := metro.PlanTrip(network, start, end)
	if err != nil {
		return nil, false, err
	}
	// A plan the cache drops is planned again next time.
	_ = c.Set(start, end, plan)
	return plan, false, nil
}

// Close stops the cache. It must not be used afterwards.
func (c *Cache) Close() {
	c.client.Close()
}
