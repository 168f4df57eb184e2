package auth

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeAppWithAuthHandler runs s on the wall clock so issued tokens pass
// expiry checks.
func makeAppWithAuthHandler(s *Service) *fiber.App {
	s.now = time.Now
	app := fiber.New()
	h := NewHandler(s, false)
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app, RequireToken(testSecret), RequireAdmin(s))

	admin := app.Group("/api/v1/admin", RequireToken(testSecret), RequireAdmin(s))
	admin.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app
}

func signIn(t *testing.T, app *fiber.App, email, password string) (int, map[string]any, []string) {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/sign-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out, res.Header.Values("Set-Cookie")
}

func TestSignInEndpoint(t *testing.T) {
	app := makeAppWithAuthHandler(newTestService(t))

	status, body, cookies := signIn(t, app, "admin@shop.com", "correct-horse")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	require.NotEmpty(t, cookies)
	assert.Contains(t, cookies[0], TokenCookie+"=")

	status, _, _ = signIn(t, app, "admin@shop.com", "nope")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body, _ = signIn(t, app, "staff@shop.com", "staff-pass")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, true, body["signOut"])
	assert.Nil(t, body["token"])
}

func TestAdminGuard(t *testing.T) {
	s := newTestService(t)
	app := makeAppWithAuthHandler(s)

	req := httptest.NewRequest("GET", "/api/v1/admin/ping", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode, "missing token")

	_, body, _ := signIn(t, app, "admin@shop.com", "correct-horse")
	token := body["token"].(string)

	req = httptest.NewRequest("GET", "/api/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Cookie", TokenCookie+"="+token)
	res, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode, "cookie-only session")
	me := map[string]any{}
	json.NewDecoder(res.Body).Decode(&me)
	assert.Equal(t, "admin@shop.com", me["email"])
	assert.Nil(t, me["PasswordHash"])
}

func TestAdminGuard_RoleRevoked(t *testing.T) {
	s := newTestService(t)
	app := makeAppWithAuthHandler(s)
	_, body, _ := signIn(t, app, "admin@shop.com", "correct-horse")
	token := body["token"].(string)

	repo := s.repo.(*InMemoryRepository)
	repo.mu.Lock()
	u := repo.users["u-admin"]
	u.Roles = []Role{RoleUser}
	repo.users["u-admin"] = u
	repo.mu.Unlock()

	req := httptest.NewRequest("GET", "/api/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	assert.Contains(t, res.Header.Get("Set-Cookie"), TokenCookie+"=;")
}

func TestAdminGuard_ForeignSignature(t *testing.T) {
	other := newTestService(t)
	other.secret = []byte("someone-else")
	other.now = time.Now
	session, err := other.SignIn(httptest.NewRequest("GET", "/", nil).Context(), "admin@shop.com", "correct-horse")
	require.NoError(t, err)

	app := makeAppWithAuthHandler(newTestService(t))
	req := httptest.NewRequest("GET", "/api/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
