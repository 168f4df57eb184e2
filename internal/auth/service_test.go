package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo := NewInMemoryRepository([]User{
		{ID: "u-admin", Email: "Admin@Shop.com", PasswordHash: hashed(t, "correct-horse"), Roles: []Role{RoleAdmin}},
		{ID: "u-staff", Email: "staff@shop.com", PasswordHash: hashed(t, "staff-pass"), Roles: []Role{RoleModerator}},
	})
	s := NewService(repo, testSecret, time.Hour, zap.NewNop())
	s.cost = bcrypt.MinCost
	s.now = func() time.Time { return testNow }
	return s
}

func TestSignIn_AdminGetsToken(t *testing.T) {
	s := newTestService(t)

	session, err := s.SignIn(context.Background(), " admin@shop.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Hour), session.ExpiresAt)

	parsed, err := jwt.Parse(session.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	assert.Equal(t, "HS256", parsed.Method.Alg())

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "u-admin", claims["user_id"])
	assert.Equal(t, "admin@shop.com", claims["email"])
	assert.Equal(t, float64(testNow.Add(time.Hour).Unix()), claims["exp"])
}

func TestSignIn_Failures(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "admin@shop.com", "wrong")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	_, err = s.SignIn(ctx, "nobody@shop.com", "correct-horse")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))

	_, err = s.SignIn(ctx, "staff@shop.com", "staff-pass")
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "valid non-admin is forced out")
}

func TestCurrentAdmin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u, err := s.CurrentAdmin(ctx, "u-admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@shop.com", u.Email)

	_, err = s.CurrentAdmin(ctx, "u-staff")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = s.CurrentAdmin(ctx, "u-deleted")
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = s.CurrentAdmin(ctx, "")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestEnsureAdmin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "Owner@Shop.com", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.com", created.Email)
	assert.True(t, created.HasRole(RoleAdmin))

	_, err = s.SignIn(ctx, "owner@shop.com", "long-enough")
	require.NoError(t, err)

	promoted, err := s.EnsureAdmin(ctx, "staff@shop.com", "new-password")
	require.NoError(t, err)
	assert.Equal(t, "u-staff", promoted.ID)
	assert.True(t, promoted.HasRole(RoleAdmin))
	assert.True(t, promoted.HasRole(RoleModerator))

	_, err = s.SignIn(ctx, "staff@shop.com", "staff-pass")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized), "password was reset")

	_, err = s.EnsureAdmin(ctx, "", "short")
	var verr *apperror.Validation
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}
