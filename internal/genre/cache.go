// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genre

import (
	"context"
	"sync"
	"time"

	"github.com/pdiddy/film-aggregator/pkg/types"
)

// CachedSource keeps the table from Source for TTL. Callers that arrive
// while a fetch is in flight wait for it instead of starting their own.
// Failed fetches are not cached.
type CachedSource struct {
	Source TableSource
	TTL    time.Duration

	// now is replaced in tests.
	now func() time.Time

	mu      sync.Mutex
	table   types.GenreTable
	fetched time.Time
}

// NewCachedSource wraps src. A non-positive ttl returns src unchanged.
func NewCachedSource(src TableSource, ttl time.Duration) TableSource {
	if ttl <= 0 {
		return src
	}
	return &CachedSource{Source: src, TTL: ttl, now: time.Now}
}

// GenreTable returns the cached table while it is fresh and refetches
// otherwise. The returned map is shared and must not be modified.
func (c *CachedSource) GenreTable(ctx context.Context) (types.GenreTable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.now != nil {
		now = c.now()
	}
	if c.table != nil && now.Sub(c.fetched) < c.TTL {
		return c.table, nil
	}

	table, err := c.Source.GenreTable(ctx)
	if err != nil {
		return nil, err
	}
	c.table = table
	c.fetched = now
	return table, nil
}
