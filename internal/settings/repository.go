package settings

import (
	"context"
	"sync"
)

// Repository stores the raw key/value settings pairs.
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
	DeleteAll(ctx context.Context) error
}

// InMemoryRepository is used for tests and local runs without a database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemoryRepository(seed map[string]string) *InMemoryRepository {
	r := &InMemoryRepository{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		r.values[k] = v
	}
	return r
}

func (r *InMemoryRepository) All(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out, nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

func (r *InMemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = map[string]string{}
	return nil
}
