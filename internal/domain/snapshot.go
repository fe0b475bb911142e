package domain

import "github.com/samber/lo"

// AssetSummary is the per-asset line of a portfolio snapshot.
//
// MarketSizeValue is denominated in the reference currency. BorrowedValue is
// denominated in token units of the asset and is not priced.
type AssetSummary struct {
	Name            string  `json:"name"`
	MarketSizeValue float64 `json:"marketSize"`
	BorrowedValue   float64 `json:"borrowed"`
}

// PortfolioSnapshot holds portfolio-wide lending statistics.
// A published snapshot is never modified; callers must not write to Items.
type PortfolioSnapshot struct {
	MarketSize float64        `json:"marketSize"`
	Borrowed   float64        `json:"borrowed"`
	LentOutPct float64        `json:"lentOutPct"`
	Items      []AssetSummary `json:"items"`
}

// EmptySnapshot returns the all-zero snapshot.
func EmptySnapshot() PortfolioSnapshot {
	return PortfolioSnapshot{Items: []AssetSummary{}}
}

// LentOutPercent returns the lent-out ratio scaled to percent.
func (s PortfolioSnapshot) LentOutPercent() float64 {
	return s.LentOutPct * 100
}

// Composition returns each item's share of total market size, in item order.
// All shares are zero when the market size is zero.
func (s PortfolioSnapshot) Composition() []float64 {
	return lo.Map(s.Items, func(item AssetSummary, _ int) float64 {
		if s.MarketSize == 0 {
			return 0
		}
		return item.MarketSizeValue / s.MarketSize
	})
}
