// Package tokenlist resolves asset ids to display labels.
package tokenlist

import (
	"github.com/samber/lo"
)

// Token is one entry of a token list.
type Token struct {
	AssetID string `json:"assetId" yaml:"assetId"`
	Symbol  string `json:"symbol" yaml:"symbol"`
	Name    string `json:"name" yaml:"name"`
}

// Resolver maps asset ids to token symbols. The zero value resolves nothing.
// A Resolver is immutable after construction.
type Resolver struct {
	symbols map[string]string
}

// NewResolver builds a Resolver from a token list. Later entries win on duplicate ids;
// entries without a symbol are ignored.
func NewResolver(tokens []Token) *Resolver {
	named := lo.Filter(tokens, func(t Token, _ int) bool { return t.Symbol != "" })
	return &Resolver{
		symbols: lo.SliceToMap(named, func(t Token) (string, string) {
			return t.AssetID, t.Symbol
		}),
	}
}

// Name returns the token symbol for assetID, or a shortened form of the id when it is not listed.
func (r *Resolver) Name(assetID string) string {
	if r != nil {
		if sym, ok := r.symbols[assetID]; ok {
			return sym
		}
	}
	return Shorten(assetID, 4)
}

// Shorten keeps the first and last n characters of id joined by "...".
// Ids too short to benefit are returned unchanged.
func Shorten(id string, n int) string {
	if n <= 0 || len(id) <= 2*n {
		return id
	}
	return id[:n] + "..." + id[len(id)-n:]
}
