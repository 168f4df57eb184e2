package order

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrStatusChanged means the stored status no longer matches the one
	// the transition was validated against.
	ErrStatusChanged = errors.New("order status changed concurrently")
)

// RedeemFunc runs inside the order transaction; an error aborts the order.
// The in-memory repository passes a nil tx.
type RedeemFunc func(ctx context.Context, tx *sql.Tx) error

type Repository interface {
	Create(ctx context.Context, o Order, redeem RedeemFunc) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	GetByNumber(ctx context.Context, number string) (Order, error)
	List(ctx context.Context, status Status) ([]Order, error)
	FindByContact(ctx context.Context, phone, email string) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Order, error)
	Delete(ctx context.Context, id string) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make(map[string]Order, len(seed))}
	for _, o := range seed {
		r.orders[o.ID] = o
	}
	return r
}

// Create holds the write lock across redeem so the pair is atomic.
func (r *InMemoryRepository) Create(ctx context.Context, o Order, redeem RedeemFunc) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNumber == o.OrderNumber {
			return Order{}, errors.New("duplicate order number")
		}
	}
	if redeem != nil {
		if err := redeem(ctx, nil); err != nil {
			return Order{}, err
		}
	}
	o.Items = append([]Line(nil), o.Items...)
	r.orders[o.ID] = o
	return o, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *InMemoryRepository) GetByNumber(ctx context.Context, number string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// List returns orders newest first; an empty status matches all.
func (r *InMemoryRepository) List(ctx context.Context, status Status) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// FindByContact matches the phone exactly and the email ignoring case. An
// empty argument matches nothing.
func (r *InMemoryRepository) FindByContact(ctx context.Context, phone, email string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		byPhone := phone != "" && o.CustomerPhone == phone
		byEmail := email != "" && o.CustomerEmail != nil && strings.EqualFold(*o.CustomerEmail, email)
		if byPhone || byEmail {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if o.Status != from {
		return Order{}, ErrStatusChanged
	}
	o.Status = to
	o.UpdatedAt = at
	r.orders[id] = o
	return o, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}
