package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	TokenCookie    = "admin_token"
	tokenLocalsKey = "user"
	adminLocalsKey = "admin"
)

// RequireToken verifies the HS256 bearer token. Browsers that only carry the
// sign-in cookie are accepted too.
func RequireToken(secret string) fiber.Handler {
	verify := jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ContextKey: tokenLocalsKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperror.Respond(c, apperror.ErrUnauthorized)
		},
	})
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			if token := c.Cookies(TokenCookie); token != "" {
				c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
			}
		}
		return verify(c)
	}
}

// RequireAdmin re-checks the admin role on every request. Without it the
// token cookie is cleared and the client is told to sign out.
func RequireAdmin(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := s.CurrentAdmin(c.UserContext(), UserIDFromCtx(c))
		if err != nil {
			if errors.Is(err, apperror.ErrForbidden) || errors.Is(err, apperror.ErrUnauthorized) {
				clearTokenCookie(c)
			}
			return apperror.Respond(c, err)
		}
		c.Locals(adminLocalsKey, u)
		return c.Next()
	}
}

// UserIDFromCtx reads the user_id claim placed by RequireToken.
func UserIDFromCtx(c *fiber.Ctx) string {
	tok, ok := c.Locals(tokenLocalsKey).(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return strings.TrimSpace(id)
}

// AdminFromCtx returns the account loaded by RequireAdmin.
func AdminFromCtx(c *fiber.Ctx) (User, bool) {
	u, ok := c.Locals(adminLocalsKey).(User)
	return u, ok
}

func setTokenCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
