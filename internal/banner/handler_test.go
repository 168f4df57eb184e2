package banner

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func setupApp() *fiber.App {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seed := []Banner{
		{ID: "b-1", ImageURL: "/uploads/banners/summer.jpg", SortOrder: 2, Active: true, CreatedAt: base},
		{ID: "b-2", ImageURL: "/uploads/banners/new.jpg", SortOrder: 1, Active: true, CreatedAt: base},
		{ID: "b-3", ImageURL: "/uploads/banners/old.jpg", SortOrder: 0, Active: false, CreatedAt: base},
	}
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func TestListActiveBanners(t *testing.T) {
	app := setupApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/banners", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	var items []Banner
	json.NewDecoder(res.Body).Decode(&items)
	if len(items) != 2 || items[0].ID != "b-2" {
		t.Fatalf("unexpected banners: %+v", items)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/banners?limit=1", nil), -1)
	items = nil
	json.NewDecoder(res.Body).Decode(&items)
	if len(items) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(items))
	}
}

func TestCreateBannerRequiresImage(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("POST", "/api/v1/admin/banners", strings.NewReader(`{"title":"Sale"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/banners", strings.NewReader(`{"title":"Sale","imageUrl":"/uploads/banners/sale.jpg"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req, -1)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}
}

func TestDeleteMissingBanner(t *testing.T) {
	app := setupApp()
	res, _ := app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/banners/nope", nil), -1)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
}
