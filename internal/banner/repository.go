package banner

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("banner not found")

// Repository provides access to banners.
type Repository interface {
	List(ctx context.Context, activeOnly bool, limit int) ([]Banner, error)
	GetByID(ctx context.Context, id string) (Banner, error)
	Create(ctx context.Context, b Banner) (Banner, error)
	Update(ctx context.Context, b Banner) (Banner, error)
	Delete(ctx context.Context, id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Banner
}

func NewInMemoryRepository(seed []Banner) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[string]Banner, len(seed))}
	for _, b := range seed {
		r.items[b.ID] = b
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool, limit int) ([]Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Banner, 0, len(r.items))
	for _, b := range r.items {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return Banner{}, ErrNotFound
	}
	return b, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, b Banner) (Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[b.ID] = b
	return b, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, b Banner) (Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return Banner{}, ErrNotFound
	}
	r.items[b.ID] = b
	return b, nil
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
