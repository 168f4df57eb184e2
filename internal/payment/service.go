package payment

import (
	"context"
	"errors"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListActive is the storefront checkout catalogue.
func (s *Service) ListActive(ctx context.Context) ([]Method, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Method, error) {
	return s.repo.List(ctx, false)
}

// GetActive returns an active method; inactive or unknown ids are NotFound.
func (s *Service) GetActive(ctx context.Context, id string) (Method, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err == nil && !m.Active {
		err = ErrNotFound
	}
	return m, notFound(err, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Method, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات طريقة الدفع غير صالحة", in.validate()); err != nil {
		return Method{}, err
	}
	now := s.now().UTC()
	m := Method{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	in.apply(&m)
	return s.repo.Create(ctx, m)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Method, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات طريقة الدفع غير صالحة", in.validate()); err != nil {
		return Method{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Method{}, notFound(err, id)
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
		return &apperror.NotFound{Resource: "payment method", ID: id}
	}
	return err
}
