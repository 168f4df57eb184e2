package category

import (
	"context"
	"errors"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/google/uuid"
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// ListActive returns the storefront categories ordered by sort order.
func (s *Service) ListActive(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx, false)
}

// CategoryIDBySlug resolves an active category slug. ok is false when no
// active category carries the slug.
func (s *Service) CategoryIDBySlug(ctx context.Context, slug string) (id string, ok bool, err error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.ID, c.Active, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Category, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات القسم غير صالحة", in.validate()); err != nil {
		return Category{}, err
	}
	now := s.now().UTC()
	c := Category{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	in.apply(&c)
	created, err := s.repo.Create(ctx, c)
	return created, translate(err, c.ID)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Category, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات القسم غير صالحة", in.validate()); err != nil {
		return Category{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Category{}, translate(err, id)
	}
	in.apply(&existing)
	existing.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, existing)
	return updated, translate(err, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return translate(s.repo.Delete(ctx, id), id)
}

func translate(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return &apperror.NotFound{Resource: "category", ID: id}
	case errors.Is(err, ErrSlugTaken):
		return &apperror.Conflict{Message: "الرابط المختصر مستخدم لقسم آخر"}
	default:
		return err
	}
}
