package dispatch

import "sync"

// registry maps envelope type descriptors to handlers.
// Slots move from unregistered to registered exactly once; there is no
// removal or replacement. register is an atomic insert-if-absent so the
// one-handler-per-type invariant holds under concurrent registration.
type registry[H any] struct {
	mu      sync.RWMutex
	entries map[string]H
}

func newRegistry[H any]() *registry[H] {
	return &registry[H]{entries: make(map[string]H)}
}

func (r *registry[H]) register(name string, h H) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return &DuplicateHandlerError{EnvelopeType: name}
	}
	r.entries[name] = h
	return nil
}

// lookup returns the handler registered for the exact descriptor.
// No supertype or subtype matching is performed.
func (r *registry[H]) lookup(name string) (H, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.entries[name]
	return h, ok
}
