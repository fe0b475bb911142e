package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mtlprog/lendstat/internal/aggregate"
	"github.com/mtlprog/lendstat/internal/domain"
	"github.com/mtlprog/lendstat/internal/export"
	"github.com/mtlprog/lendstat/internal/fixture"
	"github.com/mtlprog/lendstat/internal/market"
	"github.com/mtlprog/lendstat/internal/mint"
	"github.com/mtlprog/lendstat/internal/price"
	"github.com/mtlprog/lendstat/internal/reserve"
	"github.com/mtlprog/lendstat/internal/worker"
)

// runtime wires the engine to fixture-backed collaborators.
type runtime struct {
	engine   *aggregate.Engine
	emitter  *market.Emitter
	binding  *market.Binding
	reloader *fixture.Reloader
}

func newRuntime(fixturePath string, priceTTL time.Duration) (*runtime, error) {
	m, err := fixture.Load(fixturePath)
	if err != nil {
		return nil, err
	}

	mints := mint.NewCache()
	oracle := price.NewOracle(priceTTL)
	store := reserve.NewStore()
	m.Apply(mints, oracle, store)

	engine := aggregate.NewEngine(store, mints, oracle, m.Resolver())
	emitter := market.NewEmitter()
	binding := market.NewBinding(engine)
	binding.Rebind(emitter, store)

	slog.Info("market loaded",
		"fixture", fixturePath,
		"reserves", store.Len(),
		"mints", mints.Len(),
	)

	return &runtime{
		engine:  engine,
		emitter: emitter,
		binding: binding,
		reloader: &fixture.Reloader{
			Path:   fixturePath,
			Mints:  mints,
			Oracle: oracle,
			Store:  store,
		},
	}, nil
}

func (r *runtime) Close() {
	r.binding.Close()
}

func runSnapshot(w io.Writer, fixturePath string, priceTTL time.Duration, asJSON bool) error {
	rt, err := newRuntime(fixturePath, priceTTL)
	if err != nil {
		return err
	}
	defer rt.Close()

	snap := rt.engine.CurrentSnapshot()
	if asJSON {
		return writeJSON(w, snap)
	}
	return printSnapshot(w, snap)
}

func runWatch(ctx context.Context, w io.Writer, fixturePath string, priceTTL, interval time.Duration) error {
	rt, err := newRuntime(fixturePath, priceTTL)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := printSnapshot(w, rt.engine.CurrentSnapshot()); err != nil {
		return err
	}

	dispose := rt.engine.Subscribe(func(s domain.PortfolioSnapshot) {
		fmt.Fprintf(w, "\n--- %s ---\n", time.Now().Format(time.RFC3339))
		if err := printSnapshot(w, s); err != nil {
			slog.Warn("failed to print snapshot", "error", err)
		}
	})
	defer dispose()

	worker.NewTickWorker(rt.emitter, interval, rt.reloader).Run(ctx)
	return nil
}

func runExport(fixturePath string, priceTTL time.Duration, outPath string) error {
	rt, err := newRuntime(fixturePath, priceTTL)
	if err != nil {
		return err
	}
	defer rt.Close()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := export.WriteXLSX(f, rt.engine.CurrentSnapshot()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}

	slog.Info("snapshot exported", "path", outPath)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

func printSnapshot(w io.Writer, s domain.PortfolioSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Current market size\t$%.2f\n", s.MarketSize)
	fmt.Fprintf(tw, "Total borrowed\t%.2f\n", s.Borrowed)
	fmt.Fprintf(tw, "%% Lent out\t%.2f%%\n", s.LentOutPercent())
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "#\tASSET\tMARKET SIZE\tBORROWED\tSHARE")
	for i, share := range s.Composition() {
		item := s.Items[i]
		fmt.Fprintf(tw, "%d\t%s\t$%.2f\t%.2f\t%.2f%%\n", i+1, item.Name, item.MarketSizeValue, item.BorrowedValue, share*100)
	}
	return tw.Flush()
}
