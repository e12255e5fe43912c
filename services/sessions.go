package services

import "sync"

type session struct {
	displayName string
	cart        []string
}

// SessionStore keeps per-user cart state for the lifetime of the process.
// Carts are ephemeral: a restart loses them, submitted orders do not.
// A session exists only after Start; mutating calls on a missing session
// report it instead of creating one implicitly.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*session)}
}

// Start creates or resets the session: the cart becomes empty and the display
// name is recorded.
func (s *SessionStore) Start(userKey int64, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userKey] = &session{displayName: displayName, cart: []string{}}
}

// AddItem appends the item to the user's cart. Returns false when no session
// exists, i.e. the user never sent start.
func (s *SessionStore) AddItem(userKey int64, item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		return false
	}
	sess.cart = append(sess.cart, item)
	return true
}

// ClearCart empties the cart without destroying the session.
func (s *SessionStore) ClearCart(userKey int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		return false
	}
	sess.cart = sess.cart[:0]
	return true
}

// Cart returns a copy of the cart in selection order, duplicates included.
func (s *SessionStore) Cart(userKey int64) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		return nil
	}
	out := make([]string, len(sess.cart))
	copy(out, sess.cart)
	return out
}

// DisplayName returns the name recorded at start, and whether a session exists.
func (s *SessionStore) DisplayName(userKey int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userKey]
	if !ok {
		return "", false
	}
	return sess.displayName, true
}
