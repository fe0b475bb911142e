// Package aggregate turns a set of lending reserves into portfolio-wide statistics.
package aggregate

import (
	"cmp"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/lendstat/internal/domain"
	"github.com/mtlprog/lendstat/internal/reserve"
)

// ReserveSource returns the current ordered reserve set.
type ReserveSource interface {
	Reserves() []domain.ReserveRecord
}

// MintLookup resolves mint metadata for an asset. ok is false when the asset is not cached yet.
type MintLookup interface {
	Get(assetID string) (domain.AssetMetadata, bool)
}

// PriceLookup returns an asset's mid-price in the reference currency, 0 if unknown.
type PriceLookup interface {
	MidPrice(assetID string) float64
}

// NameResolver maps an asset id to a display label.
type NameResolver interface {
	Name(assetID string) string
}

// MarketCapFunc computes a reserve's raw market-cap in base units.
type MarketCapFunc func(domain.ReserveRecord) decimal.Decimal

// ReserveSourceFunc adapts a plain function to ReserveSource.
type ReserveSourceFunc func() []domain.ReserveRecord

func (f ReserveSourceFunc) Reserves() []domain.ReserveRecord { return f() }

// MintLookupFunc adapts a plain function to MintLookup.
type MintLookupFunc func(assetID string) (domain.AssetMetadata, bool)

func (f MintLookupFunc) Get(assetID string) (domain.AssetMetadata, bool) { return f(assetID) }

// PriceLookupFunc adapts a plain function to PriceLookup.
type PriceLookupFunc func(assetID string) float64

func (f PriceLookupFunc) MidPrice(assetID string) float64 { return f(assetID) }

// NameResolverFunc adapts a plain function to NameResolver.
type NameResolverFunc func(assetID string) string

func (f NameResolverFunc) Name(assetID string) string { return f(assetID) }

// Option configures an Engine.
type Option func(*Engine)

// WithMarketCap overrides the market-cap formula. The default is reserve.MarketCap.
func WithMarketCap(fn MarketCapFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.marketCap = fn
		}
	}
}

type subscriber struct {
	id uint64
	fn func(domain.PortfolioSnapshot)
}

// Engine recomputes a PortfolioSnapshot from its dependencies and publishes it to subscribers.
//
// Recompute calls are serialized. Subscribers run synchronously on the recomputing
// goroutine and must not call Recompute themselves.
type Engine struct {
	mints     MintLookup
	prices    PriceLookup
	names     NameResolver
	marketCap MarketCapFunc

	mu     sync.Mutex // serializes Recompute
	source ReserveSource

	current atomic.Pointer[domain.PortfolioSnapshot]

	subMu  sync.Mutex
	subs   []subscriber
	nextID uint64
}

// NewEngine creates an Engine. All dependencies are required.
func NewEngine(source ReserveSource, mints MintLookup, prices PriceLookup, names NameResolver, opts ...Option) *Engine {
	if source == nil {
		panic("aggregate.NewEngine: source is nil")
	}
	if mints == nil {
		panic("aggregate.NewEngine: mints is nil")
	}
	if prices == nil {
		panic("aggregate.NewEngine: prices is nil")
	}
	if names == nil {
		panic("aggregate.NewEngine: names is nil")
	}
	e := &Engine{
		source:    source,
		mints:     mints,
		prices:    prices,
		names:     names,
		marketCap: reserve.MarketCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSource re-binds the engine to a different reserve set. It takes effect on the next Recompute.
func (e *Engine) SetSource(source ReserveSource) {
	if source == nil {
		panic("aggregate.Engine.SetSource: source is nil")
	}
	e.mu.Lock()
	e.source = source
	e.mu.Unlock()
}

// Recompute builds a new snapshot, publishes it and notifies subscribers.
//
// Reserves whose asset has no mint metadata are skipped. The lent-out ratio is 0
// when it would not be finite.
func (e *Engine) Recompute() domain.PortfolioSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.compute(e.source.Reserves())
	e.current.Store(&snap)
	e.notify(snap)
	return detach(snap)
}

// detach gives the caller its own Items so the published snapshot cannot be mutated.
func detach(s domain.PortfolioSnapshot) domain.PortfolioSnapshot {
	s.Items = slices.Clone(s.Items)
	return s
}

func (e *Engine) compute(reserves []domain.ReserveRecord) domain.PortfolioSnapshot {
	var marketSize, borrowed float64
	items := make([]domain.AssetSummary, 0, len(reserves))

	for _, r := range reserves {
		meta, ok := e.mints.Get(r.LiquidityAssetID)
		if !ok {
			slog.Debug("skipping reserve without mint metadata",
				"reserve", r.Address,
				"asset", r.LiquidityAssetID,
			)
			continue
		}

		item := domain.AssetSummary{
			Name:            e.names.Name(r.LiquidityAssetID),
			MarketSizeValue: domain.FromBaseUnits(e.marketCap(r), meta.Decimals) * e.prices.MidPrice(r.LiquidityAssetID),
			// Token units, not multiplied by price.
			BorrowedValue: domain.FromBaseUnits(domain.WadToBaseUnits(r.BorrowedWad), meta.Decimals),
		}
		items = append(items, item)
		marketSize += item.MarketSizeValue
		borrowed += item.BorrowedValue
	}

	slices.SortStableFunc(items, func(a, b domain.AssetSummary) int {
		return cmp.Compare(b.MarketSizeValue, a.MarketSizeValue)
	})

	return domain.PortfolioSnapshot{
		MarketSize: marketSize,
		Borrowed:   borrowed,
		LentOutPct: lentOut(borrowed, marketSize),
		Items:      items,
	}
}

func lentOut(borrowed, marketSize float64) float64 {
	pct := borrowed / marketSize
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}

// CurrentSnapshot returns the last published snapshot, or the empty snapshot before the first Recompute.
func (e *Engine) CurrentSnapshot() domain.PortfolioSnapshot {
	if s := e.current.Load(); s != nil {
		return detach(*s)
	}
	return domain.EmptySnapshot()
}

// Subscribe registers fn to receive every published snapshot. Each call gets its
// own copy of Items. The returned function unsubscribes fn and may be called any
// number of times.
func (e *Engine) Subscribe(fn func(domain.PortfolioSnapshot)) (dispose func()) {
	e.subMu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	e.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.subMu.Lock()
			e.subs = slices.DeleteFunc(e.subs, func(s subscriber) bool { return s.id == id })
			e.subMu.Unlock()
		})
	}
}

func (e *Engine) notify(snap domain.PortfolioSnapshot) {
	e.subMu.Lock()
	subs := slices.Clone(e.subs)
	e.subMu.Unlock()

	for _, s := range subs {
		s.fn(detach(snap))
	}
}
