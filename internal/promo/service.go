package promo

import (
	"context"
	"database/sql"
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

// Validate looks a code up case-insensitively and checks it is usable at
// now. It does not consume a use.
func (s *Service) Validate(ctx context.Context, code string, now time.Time) (Applied, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return Applied{}, &Rejection{Reason: ReasonNotFound}
	}
	c, err := s.repo.GetByCode(ctx, normalized)
	if errors.Is(err, ErrNotFound) {
		return Applied{}, &Rejection{Reason: ReasonNotFound}
	}
	if err != nil {
		return Applied{}, err
	}
	if err := Check(&c, now); err != nil {
		return Applied{}, err
	}
	return Applied{Code: c.Code, DiscountPercent: c.DiscountPercent}, nil
}

// Redeem consumes one use of code inside tx.
func (s *Service) Redeem(ctx context.Context, tx *sql.Tx, code string, now time.Time) error {
	return s.repo.Redeem(ctx, tx, Normalize(code), now)
}

func (s *Service) List(ctx context.Context) ([]Code, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (Code, error) {
	if err := apperror.NewValidation("بيانات كود الخصم غير صالحة", in.validate()); err != nil {
		return Code{}, err
	}
	c := Code{ID: uuid.NewString(), Active: true, CreatedAt: s.now().UTC()}
	in.apply(&c)
	created, err := s.repo.Create(ctx, c)
	return created, translate(err, c.ID)
}

// Update edits the rule; the usage counter is preserved.
func (s *Service) Update(ctx context.Context, id string, in Input) (Code, error) {
	if err := apperror.NewValidation("بيانات كود الخصم غير صالحة", in.validate()); err != nil {
		return Code{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Code{}, translate(err, id)
	}
	in.apply(&existing)
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
		return &apperror.NotFound{Resource: "promo code", ID: id}
	case errors.Is(err, ErrCodeTaken):
		return &apperror.Conflict{Message: "كود الخصم موجود مسبقاً"}
	default:
		return err
	}
}
