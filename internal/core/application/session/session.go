// Package session holds the current-actor state for the application.
// Credential handling lives outside the core; the session only records which
// account, if any, is active.
package session

import (
	"sync"

	"orderflow/internal/core/domain/model/account"
)

// Session is an in-memory current-account holder. The zero state is an
// anonymous session. Safe for concurrent use: scheduled transitions read the
// session from timer goroutines while the view layer logs in and out.
type Session struct {
	mu      sync.RWMutex
	current account.ID
}

// NewSession creates an anonymous session.
func NewSession() *Session {
	return &Session{}
}

// Login makes the given account the current actor.
func (s *Session) Login(id account.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
	return nil
}

// Logout clears the current actor. Scheduled transitions keep running: they
// carry the account captured at submission time and never read the session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
}

// CurrentAccount implements ports.Session.
func (s *Session) CurrentAccount() (account.ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsZero()
}
