// Package cache memoizes aggregated job results per normalized query so that
// repeated or near-repeated searches never reach the quota guard.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"hirepath-api/internal/config"
	"hirepath-api/pkg/models"
)

// AllKey is the sentinel key for an unfiltered listing.
const AllKey = "__all__"

type entry struct {
	jobs       []models.JobRecord
	insertedAt time.Time
}

// ResultCache is a TTL'd, query-keyed store of aggregated results. Expiry is
// lazy: an entry past its TTL is deleted on the lookup that finds it, there
// is no background sweep.
type ResultCache struct {
	ttl                time.Duration
	keyIncludesFilters bool
	entries            map[string]entry
	now                func() time.Time
	mu                 sync.Mutex
}

// NewResultCache creates a cache from configuration.
func NewResultCache(cfg *config.Config) *ResultCache {
	return newResultCache(cfg.Cache.TTL, cfg.Cache.KeyIncludesFilters, time.Now)
}

func newResultCache(ttl time.Duration, keyIncludesFilters bool, now func() time.Time) *ResultCache {
	return &ResultCache{
		ttl:                ttl,
		keyIncludesFilters: keyIncludesFilters,
		entries:            make(map[string]entry),
		now:                now,
	}
}

// Key derives the cache key from search parameters. By default only the
// trimmed query is used, matching the historical behavior; a cached result
// for one location/page/country can therefore be served for another. Setting
// cache.key_includes_filters widens the key to remove that staleness risk.
func (c *ResultCache) Key(params models.SearchParams) string {
	q := strings.TrimSpace(params.Query)
	if q == "" {
		q = AllKey
	}
	if !c.keyIncludesFilters {
		return q
	}
	return fmt.Sprintf("%s|%s|%d|%s", q, strings.TrimSpace(params.Location), params.Page, params.Country)
}

// Get returns the cached result for key, deleting and missing on expired
// entries.
func (c *ResultCache) Get(key string) ([]models.JobRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.jobs, true
}

// Put stores a result under key, stamping the insertion time.
func (c *ResultCache) Put(key string, jobs []models.JobRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{jobs: jobs, insertedAt: c.now()}
}

// Len reports the number of live-or-stale entries; used by the status surface.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
