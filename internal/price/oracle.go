// Package price provides reference-currency mid-prices for liquidity assets.
package price

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/lendstat/internal/domain"
)

// Oracle holds the latest bid/ask quote per asset and serves mid-prices.
// It is safe for concurrent use.
type Oracle struct {
	mu     sync.RWMutex
	quotes map[string]domain.Quote
	cache  *midCache
}

// NewOracle creates an Oracle whose computed mid-prices are reused for up to ttl.
// A non-positive ttl selects DefaultCacheTTL.
func NewOracle(ttl time.Duration) *Oracle {
	return &Oracle{
		quotes: make(map[string]domain.Quote),
		cache:  newMidCache(ttl),
	}
}

// SetQuote records the current best bid and ask for assetID.
func (o *Oracle) SetQuote(assetID string, bid, ask decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.quotes[assetID] = domain.Quote{Bid: bid, Ask: ask}
	o.cache.invalidate(assetID)
}

// RemoveQuote forgets the quote for assetID. Its mid-price becomes 0.
func (o *Oracle) RemoveQuote(assetID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.quotes, assetID)
	o.cache.invalidate(assetID)
}

// AssetIDs returns the ids of all quoted assets in sorted order.
func (o *Oracle) AssetIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return slices.Sorted(maps.Keys(o.quotes))
}

// MidPrice returns the mid-price of assetID, or 0 when the asset has no quote.
func (o *Oracle) MidPrice(assetID string) float64 {
	if mid, ok := o.cache.get(assetID); ok {
		return mid
	}

	// Held across the cache write so a concurrent SetQuote cannot be overwritten by a stale mid.
	o.mu.RLock()
	defer o.mu.RUnlock()

	q, ok := o.quotes[assetID]
	if !ok {
		return 0
	}

	mid := q.Mid().InexactFloat64()
	o.cache.set(assetID, mid)
	return mid
}
