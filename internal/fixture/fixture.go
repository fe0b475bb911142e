// Package fixture loads a static description of a lending market from YAML.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mtlprog/lendstat/internal/domain"
	"github.com/mtlprog/lendstat/internal/mint"
	"github.com/mtlprog/lendstat/internal/price"
	"github.com/mtlprog/lendstat/internal/reserve"
	"github.com/mtlprog/lendstat/internal/tokenlist"
)

// Mint is a mint metadata entry.
type Mint struct {
	AssetID  string `yaml:"assetId"`
	Decimals uint8  `yaml:"decimals"`
}

// Quote is a bid/ask entry. Amounts are decimal strings.
type Quote struct {
	AssetID string `yaml:"assetId"`
	Bid     string `yaml:"bid"`
	Ask     string `yaml:"ask"`
}

// Reserve is a reserve entry. Amounts are integer strings so WADs keep full precision.
type Reserve struct {
	Address          string `yaml:"address"`
	LiquidityAssetID string `yaml:"liquidityAssetId"`
	DepositedBase    string `yaml:"depositedBase"`
	BorrowedWad      string `yaml:"borrowedWad"`
}

// Market is a parsed fixture document.
type Market struct {
	Mints    []Mint            `yaml:"mints"`
	Quotes   []Quote           `yaml:"quotes"`
	Tokens   []tokenlist.Token `yaml:"tokens"`
	Reserves []Reserve         `yaml:"reserves"`
}

// Load reads and parses a fixture file.
func Load(path string) (Market, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Market{}, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Market{}, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a fixture document.
func Parse(data []byte) (Market, error) {
	var m Market
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Market{}, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := m.validate(); err != nil {
		return Market{}, err
	}
	return m, nil
}

func (m Market) validate() error {
	var errs []error
	for i, mt := range m.Mints {
		if mt.AssetID == "" {
			errs = append(errs, fmt.Errorf("mints[%d]: assetId is required", i))
		}
	}
	for i, q := range m.Quotes {
		if q.AssetID == "" {
			errs = append(errs, fmt.Errorf("quotes[%d]: assetId is required", i))
		}
		if _, err := parseAmount(q.Bid); err != nil {
			errs = append(errs, fmt.Errorf("quotes[%d].bid: %w", i, err))
		}
		if _, err := parseAmount(q.Ask); err != nil {
			errs = append(errs, fmt.Errorf("quotes[%d].ask: %w", i, err))
		}
	}
	seen := make(map[string]bool, len(m.Reserves))
	for i, r := range m.Reserves {
		if r.Address == "" {
			errs = append(errs, fmt.Errorf("reserves[%d]: address is required", i))
		} else if seen[r.Address] {
			errs = append(errs, fmt.Errorf("reserves[%d]: duplicate address %s", i, r.Address))
		}
		seen[r.Address] = true
		if r.LiquidityAssetID == "" {
			errs = append(errs, fmt.Errorf("reserves[%d]: liquidityAssetId is required", i))
		}
		if _, err := parseInteger(r.DepositedBase); err != nil {
			errs = append(errs, fmt.Errorf("reserves[%d].depositedBase: %w", i, err))
		}
		if _, err := parseInteger(r.BorrowedWad); err != nil {
			errs = append(errs, fmt.Errorf("reserves[%d].borrowedWad: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// parseAmount accepts an empty string as zero and rejects negatives.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}

func parseInteger(s string) (decimal.Decimal, error) {
	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("non-integer amount %q", s)
	}
	return d, nil
}

// ReserveRecords converts the fixture reserves into domain records, in document order.
func (m Market) ReserveRecords() []domain.ReserveRecord {
	return lo.Map(m.Reserves, func(r Reserve, _ int) domain.ReserveRecord {
		return domain.ReserveRecord{
			Address:          r.Address,
			LiquidityAssetID: r.LiquidityAssetID,
			DepositedBase:    domain.SafeParse(r.DepositedBase),
			BorrowedWad:      domain.SafeParse(r.BorrowedWad),
		}
	})
}

// Resolver builds a name resolver from the fixture token list.
func (m Market) Resolver() *tokenlist.Resolver {
	return tokenlist.NewResolver(m.Tokens)
}

// Apply makes the given stores mirror the document. Mints and quotes absent from
// the document are removed and the reserve set is replaced.
func (m Market) Apply(mints *mint.Cache, oracle *price.Oracle, store *reserve.Store) {
	mintIDs := lo.Map(m.Mints, func(mt Mint, _ int) string { return mt.AssetID })
	for _, id := range lo.Without(mints.AssetIDs(), mintIDs...) {
		mints.Delete(id)
	}
	for _, mt := range m.Mints {
		mints.Set(mt.AssetID, domain.AssetMetadata{Decimals: mt.Decimals})
	}

	quoteIDs := lo.Map(m.Quotes, func(q Quote, _ int) string { return q.AssetID })
	for _, id := range lo.Without(oracle.AssetIDs(), quoteIDs...) {
		oracle.RemoveQuote(id)
	}
	for _, q := range m.Quotes {
		oracle.SetQuote(q.AssetID, domain.SafeParse(q.Bid), domain.SafeParse(q.Ask))
	}

	store.Replace(m.ReserveRecords())
}

// Reloader re-reads a fixture file into live stores on every Refresh.
// Token names are fixed at startup and are not reloaded.
type Reloader struct {
	Path   string
	Mints  *mint.Cache
	Oracle *price.Oracle
	Store  *reserve.Store
}

// Refresh loads the fixture and applies it. On error the stores are left untouched.
func (r *Reloader) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := Load(r.Path)
	if err != nil {
		return err
	}
	m.Apply(r.Mints, r.Oracle, r.Store)
	slog.Debug("fixture reloaded", "path", r.Path, "reserves", len(m.Reserves))
	return nil
}
