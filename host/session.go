package host

import "sync"

// SessionSignal fans a zero-argument event out to connected handlers, like
// the host's end-of-network-session callback list. Firing with no handlers
// is fine, and firing repeatedly re-runs every handler, so handlers must be
// idempotent.
type SessionSignal struct {
	mu       sync.Mutex
	handlers []func()
}

// Connect appends a handler. Handlers run in connection order.
func (s *SessionSignal) Connect(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.handlers = append(s.handlers, fn)
	s.mu.Unlock()
}

// Fire runs every connected handler. The handler list is copied under the
// lock and invoked outside it, so handlers may connect further handlers
// without deadlocking.
func (s *SessionSignal) Fire() {
	s.mu.Lock()
	handlers := make([]func(), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
