package domain

import "github.com/shopspring/decimal"

// ReserveRecord is a read-only view of a lending reserve.
type ReserveRecord struct {
	Address          string          `json:"address"`
	LiquidityAssetID string          `json:"liquidityAssetId"`
	BorrowedWad      decimal.Decimal `json:"borrowedWad"`   // 18-decimal fixed point
	DepositedBase    decimal.Decimal `json:"depositedBase"` // base units
}

// AssetMetadata carries the mint-level facts needed to scale base units.
type AssetMetadata struct {
	Decimals uint8 `json:"decimals"`
}

// Quote is the best bid and ask for an asset in the reference currency.
// Zero on either side means no order on that side.
type Quote struct {
	Bid decimal.Decimal `json:"bid"`
	Ask decimal.Decimal `json:"ask"`
}

// Mid returns the quote's mid-price.
func (q Quote) Mid() decimal.Decimal {
	return MidPrice(q.Bid, q.Ask)
}
