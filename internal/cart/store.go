package cart

import (
	"context"
	"sync"
)

// Store persists carts by session id. Load returns an empty cart for an
// unknown session.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type InMemoryStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{carts: map[string]Cart{}}
}

func (s *InMemoryStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.carts[sessionID]
	c.Lines = append([]Line(nil), c.Lines...)
	return c, nil
}

func (s *InMemoryStore) Save(ctx context.Context, sessionID string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Lines = append([]Line(nil), c.Lines...)
	s.carts[sessionID] = c
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
