package reserve

import (
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/lendstat/internal/domain"
)

// MarketCap returns a reserve's market size in base units: available liquidity plus borrowed liquidity.
func MarketCap(r domain.ReserveRecord) decimal.Decimal {
	return r.DepositedBase.Add(domain.WadToBaseUnits(r.BorrowedWad))
}

// Store holds an ordered set of reserves. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	reserves []domain.ReserveRecord
}

// NewStore creates a Store seeded with the given reserves.
func NewStore(reserves ...domain.ReserveRecord) *Store {
	s := &Store{}
	s.Replace(reserves)
	return s
}

// Reserves returns a copy of the reserve set in insertion order.
func (s *Store) Reserves() []domain.ReserveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reserves)
}

// Replace swaps the whole reserve set.
func (s *Store) Replace(reserves []domain.ReserveRecord) {
	cloned := slices.Clone(reserves)
	s.mu.Lock()
	s.reserves = cloned
	s.mu.Unlock()
}

// Len returns the number of reserves.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reserves)
}
