package cart

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	SessionHeader    = "X-Cart-Session"
	sessionLocalsKey = "cart_session"
	sessionTTL       = 30 * 24 * time.Hour
	maxSessionLength = 128
)

// SessionMiddleware resolves the cart session from the cookie or the
// X-Cart-Session header, minting a new one when neither is present. The id
// is copied out of the request buffer because stores keep it as a map key.
func SessionMiddleware(cookieName string, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Cookies(cookieName))
		if id == "" {
			id = strings.TrimSpace(c.Get(SessionHeader))
		}
		if id == "" || len(id) > maxSessionLength {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				Expires:  time.Now().Add(sessionTTL),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		id = utils.CopyString(id)
		c.Set(SessionHeader, id)
		c.Locals(sessionLocalsKey, id)
		return c.Next()
	}
}

// SessionID returns the session resolved by SessionMiddleware.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocalsKey).(string)
	return id
}
