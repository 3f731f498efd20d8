package cart

import "sync"

// Store owns the carts for all active sessions, keyed by session ID.
// Carts live for the duration of a browsing session and are dropped on
// Remove or process restart; there is no persistence.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for a session, or nil if the session has none.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[sessionID]
}

// GetOrCreate returns the cart for a session, creating one if needed.
func (s *Store) GetOrCreate(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// Remove discards a session's cart.
func (s *Store) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
