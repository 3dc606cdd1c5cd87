package inmemory

import (
	"context"
	"sync"
	"time"

	"goblog/internal/repository/redis"
)

// Store keeps sessions and flash messages in process memory. It backs
// single-instance deployments without Redis, and the tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[uint]sessionEntry
	flashes  map[string][]string
}

type sessionEntry struct {
	id        string
	expiresAt time.Time
}

func New() *Store {
	return &Store{
		sessions: make(map[uint]sessionEntry),
		flashes:  make(map[string][]string),
	}
}

func (s *Store) Save(_ context.Context, userID uint, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = sessionEntry{id: sessionID, expiresAt: time.Now().Add(redis.SessionTTL)}
	return nil
}

func (s *Store) Get(_ context.Context, userID uint) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", redis.ErrSessionNotFound
	}
	return entry.id, nil
}

func (s *Store) Extend(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	entry.expiresAt = time.Now().Add(redis.SessionTTL)
	s.sessions[userID] = entry
	return nil
}

func (s *Store) Delete(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

func (s *Store) Add(_ context.Context, visitorID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flashes[visitorID] = append(s.flashes[visitorID], message)
	return nil
}

func (s *Store) PopAll(_ context.Context, visitorID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.flashes[visitorID]
	delete(s.flashes, visitorID)
	return msgs, nil
}
