package promo

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound  = errors.New("promo code not found")
	ErrCodeTaken = errors.New("promo code already exists")
)

// Repository stores promo codes. Codes passed in are already normalized.
//
// Redeem increments the usage counter only while the code is still usable
// at now; it returns a *Rejection otherwise. When tx is non-nil the update
// joins that transaction.
type Repository interface {
	List(ctx context.Context) ([]Code, error)
	GetByID(ctx context.Context, id string) (Code, error)
	GetByCode(ctx context.Context, code string) (Code, error)
	Create(ctx context.Context, c Code) (Code, error)
	Update(ctx context.Context, c Code) (Code, error)
	Delete(ctx context.Context, id string) error
	Redeem(ctx context.Context, tx *sql.Tx, code string, now time.Time) error
}

type InMemoryRepository struct {
	mu    sync.Mutex
	items map[string]Code
}

func NewInMemoryRepository(seed []Code) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[string]Code, len(seed))}
	for _, c := range seed {
		r.items[c.ID] = c
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Code, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return Code{}, ErrNotFound
	}
	return c, nil
}

func (r *InMemoryRepository) GetByCode(ctx context.Context, code string) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.byCode(code); c != nil {
		return *c, nil
	}
	return Code{}, ErrNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, c Code) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.byCode(c.Code); existing != nil {
		return Code{}, ErrCodeTaken
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, c Code) (Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return Code{}, ErrNotFound
	}
	if existing := r.byCode(c.Code); existing != nil && existing.ID != c.ID {
		return Code{}, ErrCodeTaken
	}
	r.items[c.ID] = c
	return c, nil
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

// Redeem checks and increments under one lock.
func (r *InMemoryRepository) Redeem(ctx context.Context, tx *sql.Tx, code string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byCode(code)
	if err := Check(c, now); err != nil {
		return err
	}
	c.CurrentUses++
	r.items[c.ID] = *c
	return nil
}

// byCode must be called with the lock held. It returns a copy.
func (r *InMemoryRepository) byCode(code string) *Code {
	for _, c := range r.items {
		if c.Code == code {
			found := c
			return &found
		}
	}
	return nil
}
