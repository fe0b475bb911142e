// Package market binds market event streams to snapshot recomputation.
package market

import (
	"slices"
	"sync"
)

// Source is a push-based market event stream.
type Source interface {
	// OnMarket registers fn for every market event and returns a function that detaches it.
	OnMarket(fn func()) (dispose func())
}

type listener struct {
	id uint64
	fn func()
}

// Emitter is an in-process Source. Emit delivers to listeners synchronously,
// in registration order, on the calling goroutine.
type Emitter struct {
	mu        sync.Mutex
	listeners []listener
	nextID    uint64
}

// NewEmitter creates an Emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// OnMarket implements Source. The returned disposer is idempotent.
func (e *Emitter) OnMarket(fn func()) (dispose func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			e.listeners = slices.DeleteFunc(e.listeners, func(l listener) bool { return l.id == id })
			e.mu.Unlock()
		})
	}
}

// Emit delivers one market event to every listener registered at the time of the call.
func (e *Emitter) Emit() {
	e.mu.Lock()
	ls := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}

// Len returns the number of attached listeners.
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
