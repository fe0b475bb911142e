package domain

import "testing"

func TestEmptySnapshot(t *testing.T) {
	s := EmptySnapshot()
	if s.MarketSize != 0 || s.Borrowed != 0 || s.LentOutPct != 0 {
		t.Errorf("EmptySnapshot totals = %+v, want zeros", s)
	}
	if s.Items == nil || len(s.Items) != 0 {
		t.Errorf("EmptySnapshot items = %#v, want empty non-nil slice", s.Items)
	}
}

func TestLentOutPercent(t *testing.T) {
	s := PortfolioSnapshot{LentOutPct: 0.05}
	if got := s.LentOutPercent(); got != 5 {
		t.Errorf("LentOutPercent() = %v, want 5", got)
	}
}

func TestComposition(t *testing.T) {
	s := PortfolioSnapshot{
		MarketSize: 2000,
		Items: []AssetSummary{
			{Name: "B", MarketSizeValue: 1500},
			{Name: "A", MarketSizeValue: 500},
		},
	}

	got := s.Composition()
	if len(got) != 2 {
		t.Fatalf("Composition() len = %d, want 2", len(got))
	}
	if got[0] != 0.75 || got[1] != 0.25 {
		t.Errorf("Composition() = %v, want [0.75 0.25]", got)
	}
}

func TestCompositionZeroMarket(t *testing.T) {
	s := PortfolioSnapshot{Items: []AssetSummary{{Name: "A"}, {Name: "B"}}}
	for i, share := range s.Composition() {
		if share != 0 {
			t.Errorf("share[%d] = %v, want 0", i, share)
		}
	}
}
