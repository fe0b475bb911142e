// Package mint keeps decimal metadata for liquidity assets.
package mint

import (
	"maps"
	"slices"

	"github.com/patrickmn/go-cache"

	"github.com/mtlprog/lendstat/internal/domain"
)

// Cache stores AssetMetadata by asset id. Entries never expire; a missing entry
// means the mint has not been loaded yet.
type Cache struct {
	entries *cache.Cache
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: cache.New(cache.NoExpiration, 0)}
}

// Get returns the metadata for assetID.
func (c *Cache) Get(assetID string) (domain.AssetMetadata, bool) {
	v, ok := c.entries.Get(assetID)
	if !ok {
		return domain.AssetMetadata{}, false
	}
	meta, ok := v.(domain.AssetMetadata)
	return meta, ok
}

// Set stores metadata for assetID, replacing any previous entry.
func (c *Cache) Set(assetID string, meta domain.AssetMetadata) {
	c.entries.Set(assetID, meta, cache.NoExpiration)
}

// Delete removes assetID from the cache.
func (c *Cache) Delete(assetID string) {
	c.entries.Delete(assetID)
}

// AssetIDs returns the ids of all cached mints in sorted order.
func (c *Cache) AssetIDs() []string {
	return slices.Sorted(maps.Keys(c.entries.Items()))
}

// Len returns the number of cached mints.
func (c *Cache) Len() int {
	return c.entries.ItemCount()
}
