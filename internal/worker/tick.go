package worker

import (
	"context"
	"log/slog"
	"time"
)

// Emitter publishes one market event per call.
type Emitter interface {
	Emit()
}

// Refresher reloads market inputs before an event is published.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// TickWorker periodically refreshes market inputs and publishes a market event.
type TickWorker struct {
	emitter   Emitter
	refresher Refresher // optional
	interval  time.Duration
}

// NewTickWorker creates a new TickWorker. refresher may be nil.
func NewTickWorker(emitter Emitter, interval time.Duration, refresher Refresher) *TickWorker {
	return &TickWorker{
		emitter:   emitter,
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the tick loop. It blocks until the context is cancelled.
func (w *TickWorker) Run(ctx context.Context) {
	slog.Info("TickWorker: starting", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("TickWorker: shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *TickWorker) tick(ctx context.Context) {
	if w.refresher != nil {
		if err := w.refresher.Refresh(ctx); err != nil {
			// Previous inputs stay in place and the event still fires.
			slog.Error("TickWorker: refresh failed", "error", err)
		}
	}
	w.emitter.Emit()
}
