package profile

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists accepted profiles. Usernames are unique, compared
// case-insensitively.
type Store interface {
	Save(ctx context.Context, p Profile) error
	Get(ctx context.Context, id uuid.UUID) (Profile, error)
	ByUsername(ctx context.Context, username string) (Profile, error)
}

// MemoryStore is a process-local Store, used when no Redis URL is configured
// and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Profile
	byName map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[uuid.UUID]Profile),
		byName: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Save(_ context.Context, p Profile) error {
	key := usernameKey(p.Username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[key]; ok && id != p.ID {
		return ErrUsernameTaken
	}
	s.byID[p.ID] = p
	s.byName[key] = p.ID
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) ByUsername(ctx context.Context, username string) (Profile, error) {
	s.mu.RLock()
	id, ok := s.byName[usernameKey(username)]
	s.mu.RUnlock()
	if !ok {
		return Profile{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}
