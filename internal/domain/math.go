package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WadDecimals is the number of implied decimal places in a WAD fixed-point amount.
const WadDecimals = 18

var two = decimal.NewFromInt(2)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// WadToBaseUnits converts a WAD amount into an integer amount of base units.
// The fractional part is truncated toward zero.
func WadToBaseUnits(wad decimal.Decimal) decimal.Decimal {
	return wad.Shift(-WadDecimals).Truncate(0)
}

// FromBaseUnits scales a base-unit amount down by 10^decimals.
func FromBaseUnits(amount decimal.Decimal, decimals uint8) float64 {
	return amount.Shift(-int32(decimals)).InexactFloat64()
}

// MidPrice returns the midpoint of bid and ask. A one-sided quote yields the
// present side; no quote at all yields zero.
func MidPrice(bid, ask decimal.Decimal) decimal.Decimal {
	switch {
	case bid.IsPositive() && ask.IsPositive():
		return bid.Add(ask).Div(two)
	case bid.IsPositive():
		return bid
	case ask.IsPositive():
		return ask
	default:
		return decimal.Zero
	}
}
