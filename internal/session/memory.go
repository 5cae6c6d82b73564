package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when Redis is not configured.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// SaveSession stores token for ttl.
func (s *MemoryStore) SaveSession(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// LoadSession returns the user bound to token. Expired entries are evicted.
func (s *MemoryStore) LoadSession(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return "", ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, token)
		return "", ErrNotFound
	}
	return entry.userID, nil
}

// DeleteSession removes token. Unknown tokens are ignored.
func (s *MemoryStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
