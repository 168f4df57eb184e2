package promo

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func setupApp() *fiber.App {
	h := NewHandler(NewService(NewInMemoryRepository(seedCodes())))
	h.now = func() time.Time { return testNow }
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]any{}
	json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func TestValidateEndpoint(t *testing.T) {
	app := setupApp()

	status, body := postJSON(t, app, "/api/v1/promo/validate", `{"code":"save10"}`)
	if status != 200 || body["valid"] != true || body["code"] != "SAVE10" {
		t.Fatalf("unexpected response %d %v", status, body)
	}

	status, body = postJSON(t, app, "/api/v1/promo/validate", `{"code":"old"}`)
	if status != fiber.StatusBadRequest || body["reason"] != string(ReasonExpired) {
		t.Fatalf("expected EXPIRED rejection, got %d %v", status, body)
	}
}

func TestAdminCreateDuplicate(t *testing.T) {
	app := setupApp()

	status, _ := postJSON(t, app, "/api/v1/admin/promo-codes", `{"code":"save10","discountPercent":5}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	status, body := postJSON(t, app, "/api/v1/admin/promo-codes", `{"code":"eid","discountPercent":25,"maxUses":100}`)
	if status != fiber.StatusCreated || body["code"] != "EID" {
		t.Fatalf("unexpected create response %d %v", status, body)
	}
}
