package market

import (
	"log/slog"
	"sync"

	"github.com/mtlprog/lendstat/internal/aggregate"
	"github.com/mtlprog/lendstat/internal/domain"
)

// Recomputer rebuilds a snapshot. *aggregate.Engine satisfies it.
type Recomputer interface {
	Recompute() domain.PortfolioSnapshot
}

// Subscription drives a Recomputer from a Source.
type Subscription struct {
	once    sync.Once
	detach  func()
	stopped chan struct{}
}

// Bind attaches r to src and recomputes once before returning, so the snapshot is
// current even if no event ever arrives. Each later event triggers exactly one recompute.
func Bind(src Source, r Recomputer) *Subscription {
	s := &Subscription{stopped: make(chan struct{})}
	s.detach = src.OnMarket(func() {
		select {
		case <-s.stopped:
			// An Emit that started before Dispose may still call us.
			return
		default:
		}
		r.Recompute()
	})
	r.Recompute()
	return s
}

// Dispose detaches from the event stream. Calling it again has no effect.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		close(s.stopped)
		s.detach()
	})
}

// Rebindable is a Recomputer whose reserve set can be swapped. *aggregate.Engine satisfies it.
type Rebindable interface {
	Recomputer
	SetSource(aggregate.ReserveSource)
}

// Binding keeps at most one live Subscription for an engine.
type Binding struct {
	mu  sync.Mutex
	r   Rebindable
	sub *Subscription
}

// NewBinding creates a Binding for r with no source attached.
func NewBinding(r Rebindable) *Binding {
	return &Binding{r: r}
}

// Rebind disposes the current subscription, if any, points the engine at reserves
// and then binds src. A nil reserves keeps the engine's current reserve set.
func (b *Binding) Rebind(src Source, reserves aggregate.ReserveSource) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sub != nil {
		b.sub.Dispose()
		slog.Debug("market source detached")
	}
	if reserves != nil {
		b.r.SetSource(reserves)
	}
	b.sub = Bind(src, b.r)
	slog.Debug("market source attached")
}

// Close disposes the current subscription. It is safe to call repeatedly.
func (b *Binding) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sub != nil {
		b.sub.Dispose()
		b.sub = nil
	}
}
