package game

import "sync"

// Health records whether the render thread is still alive.
// The event loop reads it every tick; the supervisor writes it once.
type Health struct {
	mu  sync.RWMutex
	err error
}

// Healthy reports whether no failure has been recorded.
func (h *Health) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err == nil
}

// Err returns the recorded failure, if any.
func (h *Health) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// MarkFailed records err. Only the first failure is kept.
func (h *Health) MarkFailed(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err == nil {
		h.err = err
	}
}
