package price

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCacheTTL bounds how long a computed mid-price is reused.
const DefaultCacheTTL = 30 * time.Second

type midCache struct {
	ttl     time.Duration
	entries *cache.Cache
}

func newMidCache(ttl time.Duration) *midCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &midCache{
		ttl:     ttl,
		entries: cache.New(ttl, 2*ttl),
	}
}

func (c *midCache) get(assetID string) (float64, bool) {
	v, ok := c.entries.Get(assetID)
	if !ok {
		return 0, false
	}
	mid, ok := v.(float64)
	return mid, ok
}

func (c *midCache) set(assetID string, mid float64) {
	c.entries.SetDefault(assetID, mid)
}

func (c *midCache) invalidate(assetID string) {
	c.entries.Delete(assetID)
}
