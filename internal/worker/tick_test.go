package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockEmitter struct {
	count atomic.Int32
}

func (m *mockEmitter) Emit() {
	m.count.Add(1)
}

type mockRefresher struct {
	count atomic.Int32
	err   error
}

func (m *mockRefresher) Refresh(_ context.Context) error {
	m.count.Add(1)
	return m.err
}

func TestTickWorkerEmitsAndShutdown(t *testing.T) {
	emitter := &mockEmitter{}
	w := NewTickWorker(emitter, 20*time.Millisecond, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	if got := emitter.count.Load(); got < 1 {
		t.Errorf("emit count = %d, want >= 1", got)
	}
}

func TestTickWorkerRefreshesBeforeEmit(t *testing.T) {
	emitter := &mockEmitter{}
	refresher := &mockRefresher{}
	w := NewTickWorker(emitter, time.Hour, refresher)

	w.tick(context.Background())

	if refresher.count.Load() != 1 || emitter.count.Load() != 1 {
		t.Errorf("refresh = %d, emit = %d, want 1 and 1", refresher.count.Load(), emitter.count.Load())
	}
}

func TestTickWorkerEmitsOnRefreshError(t *testing.T) {
	emitter := &mockEmitter{}
	refresher := &mockRefresher{err: errors.New("boom")}
	w := NewTickWorker(emitter, time.Hour, refresher)

	w.tick(context.Background())

	if emitter.count.Load() != 1 {
		t.Errorf("emit count = %d, want 1", emitter.count.Load())
	}
}

func TestTickWorkerStopsOnCancelledContext(t *testing.T) {
	emitter := &mockEmitter{}
	w := NewTickWorker(emitter, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if emitter.count.Load() != 0 {
		t.Errorf("emit count = %d, want 0", emitter.count.Load())
	}
}
