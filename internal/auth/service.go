package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful admin sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	cost   int
	now    func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
}

// Authenticate checks email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrNotFound) {
		return User{}, apperror.ErrUnauthorized
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, apperror.ErrUnauthorized
	}
	return u, nil
}

// SignIn issues a token for admins only. A valid account without the admin
// role is ErrForbidden, which tells the client to drop its session.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	if !u.HasRole(RoleAdmin) {
		s.logger.Warn("sign-in without admin role", zap.String("userId", u.ID))
		return Session{}, apperror.ErrForbidden
	}

	expires := s.now().Add(s.ttl)
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     expires.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	s.logger.Info("admin signed in", zap.String("userId", u.ID))
	return Session{Token: signed, ExpiresAt: expires, User: u}, nil
}

// CurrentAdmin reloads the account behind a token and re-checks the admin
// role.
func (s *Service) CurrentAdmin(ctx context.Context, userID string) (User, error) {
	if userID == "" {
		return User{}, apperror.ErrUnauthorized
	}
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return User{}, apperror.ErrForbidden
	}
	if err != nil {
		return User{}, err
	}
	if !u.HasRole(RoleAdmin) {
		return User{}, apperror.ErrForbidden
	}
	return u, nil
}

// EnsureAdmin creates the account when missing, resets its password
// otherwise, and makes sure it holds the admin role.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "البريد الإلكتروني مطلوب"
	}
	if len(password) < 8 {
		fields["password"] = "كلمة المرور يجب أن تكون 8 أحرف على الأقل"
	}
	if err := apperror.NewValidation("بيانات المشرف غير صالحة", fields); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		u = User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash), CreatedAt: s.now().UTC()}
		if u, err = s.repo.Create(ctx, u); err != nil {
			return User{}, err
		}
	case err != nil:
		return User{}, err
	default:
		if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
			return User{}, err
		}
	}

	if err := s.repo.AssignRole(ctx, u.ID, RoleAdmin); err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, u.ID)
}
