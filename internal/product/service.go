package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/google/uuid"
)

// CategoryResolver maps a storefront category slug to its id.
type CategoryResolver interface {
	CategoryIDBySlug(ctx context.Context, slug string) (id string, ok bool, err error)
}

const featuredLimit = 8

type Service struct {
	repo       Repository
	categories CategoryResolver
	now        func() time.Time
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories, now: time.Now}
}

// Browse lists active products, optionally narrowed to a category slug and
// a free-text query. A query shorter than MinSearchLength yields no results;
// so does an unknown category.
func (s *Service) Browse(ctx context.Context, categorySlug, query string) ([]Product, error) {
	f := Filter{ActiveOnly: true}

	query = strings.TrimSpace(query)
	if query != "" {
		if len([]rune(query)) < MinSearchLength {
			return []Product{}, nil
		}
		f.Query = query
	}

	if slug := strings.TrimSpace(categorySlug); slug != "" {
		id, ok, err := s.categories.CategoryIDBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Product{}, nil
		}
		f.CategoryID = id
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, Filter{ActiveOnly: true, FeaturedOnly: true, Limit: featuredLimit})
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err == nil && !p.Active {
		err = ErrNotFound
	}
	return p, translate(err, slug)
}

// GetActive returns a purchasable product by id.
func (s *Service) GetActive(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err == nil && !p.Active {
		err = ErrNotFound
	}
	return p, translate(err, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, Filter{})
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات المنتج غير صالحة", in.validate()); err != nil {
		return Product{}, err
	}
	now := s.now().UTC()
	p := Product{ID: uuid.NewString(), Active: true, CreatedAt: now, UpdatedAt: now}
	in.apply(&p)
	created, err := s.repo.Create(ctx, p)
	return created, translate(err, p.ID)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Product, error) {
	in.normalize()
	if err := apperror.NewValidation("بيانات المنتج غير صالحة", in.validate()); err != nil {
		return Product{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, translate(err, id)
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
		return &apperror.NotFound{Resource: "product", ID: id}
	case errors.Is(err, ErrSlugTaken):
		return &apperror.Conflict{Message: "الرابط المختصر مستخدم لمنتج آخر"}
	default:
		return err
	}
}
