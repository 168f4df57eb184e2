package payment

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("payment method not found")

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]Method, error)
	GetByID(ctx context.Context, id string) (Method, error)
	Create(ctx context.Context, m Method) (Method, error)
	Update(ctx context.Context, m Method) (Method, error)
	Delete(ctx context.Context, id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Method
}

func NewInMemoryRepository(seed []Method) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[string]Method, len(seed))}
	for _, m := range seed {
		r.items[m.ID] = m
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool) ([]Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Method, 0, len(r.items))
	for _, m := range r.items {
		if activeOnly && !m.Active {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return Method{}, ErrNotFound
	}
	return m, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, m Method) (Method, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[m.ID] = m
	return m, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, m Method) (Method, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return Method{}, ErrNotFound
	}
	r.items[m.ID] = m
	return m, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
