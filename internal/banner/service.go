package banner

import (
	"context"
	"errors"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/google/uuid"
)

// Service provides business logic for banners.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// ListActive returns up to limit active banners; limit 0 returns all.
func (s *Service) ListActive(ctx context.Context, limit int) ([]Banner, error) {
	return s.repo.List(ctx, true, limit)
}

func (s *Service) ListAll(ctx context.Context) ([]Banner, error) {
	return s.repo.List(ctx, false, 0)
}

func (s *Service) Create(ctx context.Context, in Input) (Banner, error) {
	if err := apperror.NewValidation("بيانات البانر غير صالحة", in.validate()); err != nil {
		return Banner{}, err
	}
	now := s.now().UTC()
	b := Banner{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	in.apply(&b)
	return s.repo.Create(ctx, b)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Banner, error) {
	if err := apperror.NewValidation("بيانات البانر غير صالحة", in.validate()); err != nil {
		return Banner{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Banner{}, notFound(err, id)
	}
	in.apply(&existing)
	existing.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, existing)
	return updated, notFound(err, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.Delete(ctx, id), id)
}

func notFound(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return &apperror.NotFound{Resource: "banner", ID: id}
	}
	return err
}
