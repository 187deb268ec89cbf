// Package otp implements the one-time-code password reset flow.
//
// Codes live in process memory only: a restart drops all outstanding codes,
// which is acceptable for this low-value flow. One active code per email;
// requesting a new code silently supersedes the old one.
package otp

import (
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Store holds issued codes keyed by email. The mutex only protects the map
// itself; the verify-then-consume sequence across two calls is intentionally
// not atomic (a concurrent reset may consume a code after another caller has
// validated it — last writer wins).
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewStore creates an empty code store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// put stores a code for email, overwriting any prior code.
func (s *Store) put(email, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{code: code, expiresAt: expiresAt}
}

// get returns the stored entry for email, if any.
func (s *Store) get(email string) (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	return e, ok
}

// delete removes the stored code for email.
func (s *Store) delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}
