package cart

import "sync"

// Registry hands out one cart Manager per operator. A cart lives for the
// operator's session and is never shared between users.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Manager
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Manager)}
}

// Get returns the operator's cart, creating it on first use.
func (r *Registry) Get(userID string) *Manager {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.carts[userID]
	if !ok {
		m = NewManager()
		r.carts[userID] = m
	}
	return m
}

// Drop discards the operator's cart, e.g. on sign-out.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.carts, userID)
	r.mu.Unlock()
}
