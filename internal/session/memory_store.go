package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memorySession struct {
	values    map[string][]byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store. A session expires ttl after its last write.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get decodes the value stored under key into dest
func (s *MemoryStore) Get(ctx context.Context, sessionID uuid.UUID, key string, dest interface{}) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	var data []byte
	if ok && s.now().Before(sess.expiresAt) {
		data, ok = sess.values[key]
	} else {
		ok = false
	}
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode session value %q: %w", key, err)
	}
	return nil
}

// Set stores value under key and extends the session lifetime
func (s *MemoryStore) Set(ctx context.Context, sessionID uuid.UUID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session value %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[sessionID]
	if !ok || !now.Before(sess.expiresAt) {
		sess = &memorySession{values: make(map[string][]byte)}
		s.sessions[sessionID] = sess
	}
	sess.values[key] = data
	sess.expiresAt = now.Add(s.ttl)
	return nil
}

// Delete removes one key
func (s *MemoryStore) Delete(ctx context.Context, sessionID uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		delete(sess.values, key)
	}
	return nil
}

// Clear removes the whole session
func (s *MemoryStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// PurgeExpired drops expired sessions and returns how many were removed
func (s *MemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
