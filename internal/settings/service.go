package settings

import (
	"context"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"go.uber.org/zap"
)

// Service resolves typed site settings from the key/value store.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get never fails: load errors and malformed values degrade to defaults.
func (s *Service) Get(ctx context.Context) SiteSettings {
	values, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Warn("failed to load site settings, using defaults", zap.Error(err))
		return Defaults()
	}
	out, invalid := parse(values)
	for key, raw := range invalid {
		s.logger.Warn("ignoring malformed site setting", zap.String("key", key), zap.String("value", raw))
	}
	return out
}

// Update writes only the fields present in the patch.
func (s *Service) Update(ctx context.Context, p Patch) (SiteSettings, error) {
	if err := apperror.NewValidation("إعدادات غير صالحة", p.validate()); err != nil {
		return SiteSettings{}, err
	}
	if err := s.repo.Upsert(ctx, p.values()); err != nil {
		return SiteSettings{}, err
	}
	return s.Get(ctx), nil
}

// Reset drops every stored value so defaults apply again.
func (s *Service) Reset(ctx context.Context) (SiteSettings, error) {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return SiteSettings{}, err
	}
	return Defaults(), nil
}
