package controls

import "sync"

// Emitter is an observer registry keyed by event name.
type Emitter[K comparable] struct {
	mu       sync.Mutex
	handlers map[K][]func()
}

// NewEmitter creates an empty [Emitter].
func NewEmitter[K comparable]() *Emitter[K] {
	return &Emitter[K]{handlers: make(map[K][]func())}
}

// On registers fn for event.
func (e *Emitter[K]) On(event K, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], fn)
}

// Emit calls every handler registered for event in registration order.
//
// Handlers run outside the lock so they may register or emit further events.
func (e *Emitter[K]) Emit(event K) {
	e.mu.Lock()
	handlers := append([]func(){}, e.handlers[event]...)
	e.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// Count returns the number of handlers registered for event.
func (e *Emitter[K]) Count(event K) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[event])
}
