package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

const tokenBytes = 32

// Session is an admin session record. The store is its sole owner.
type Session struct {
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

type VerifyResult struct {
	Valid        bool
	ExpiresAt    time.Time
	LastActivity time.Time
}

// SessionStore maps opaque tokens to admin sessions. It is deliberately
// in-memory only: every session dies with the process. A restart logs
// all admins out, which is acceptable for a single-admin dashboard.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// NewSessionStoreWithClock lets tests control time.
func NewSessionStoreWithClock(ttl time.Duration, now func() time.Time) *SessionStore {
	s := NewSessionStore(ttl)
	s.now = now
	return s
}

// Create issues a new session token. Expired entries are swept as a
// side effect so the map cannot grow without bound.
func (s *SessionStore) Create() (string, time.Time) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in no state to
		// issue credentials.
		panic("session token generation failed: " + err.Error())
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	s.sessions[token] = &Session{
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
		LastActivity: now,
	}
	return token, now.Add(s.ttl)
}

// Verify reports whether the token names a live session, bumping its
// last-activity timestamp when it does. The check and the bump happen
// under one lock so concurrent verifications cannot lose updates.
func (s *SessionStore) Verify(token string) VerifyResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return VerifyResult{}
	}

	now := s.now()
	if !now.Before(sess.ExpiresAt) {
		delete(s.sessions, token)
		return VerifyResult{}
	}

	sess.LastActivity = now
	return VerifyResult{
		Valid:        true,
		ExpiresAt:    sess.ExpiresAt,
		LastActivity: sess.LastActivity,
	}
}

// Revoke removes the session. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// SweepExpired removes every session whose expiry has passed.
func (s *SessionStore) SweepExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for token, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Len reports the number of live records, expired or not. Used by tests.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
