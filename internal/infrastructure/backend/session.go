package backend

import "sync"

// minTokenLength is the shortest token treated as a credential.
const minTokenLength = 11

// Session holds the credential used for every backend call. It is created
// once and handed to the client; Invalidate clears it.
type Session struct {
	mu       sync.RWMutex
	token    string
	username string
}

func NewSession(token, username string) *Session {
	return &Session{token: token, username: username}
}

// Valid reports whether a usable token is present. Expiry is left to the
// backend.
func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.token {
	case "", "null", "undefined":
		return false
	}
	return len(s.token) >= minTokenLength
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Set(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
}

func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
}
