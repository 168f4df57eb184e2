package cart

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware("cart_session", false))
	h.RegisterPublicRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) View {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "session-42")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("%s %s: expected 200, got %d", method, target, res.StatusCode)
	}
	var v View
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCartRoutes_Basic(t *testing.T) {
	app := makeAppWithCartHandler(NewHandler(NewService(NewInMemoryStore(), testProducts(), zap.NewNop())))

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{"GET /api/v1/cart", "POST /api/v1/cart/items", "PATCH /api/v1/cart/items/:lineId", "DELETE /api/v1/cart/items/:lineId", "DELETE /api/v1/cart", "POST /api/v1/cart/open"} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}

	v := doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":"p-bag","quantity":2}`)
	if v.TotalItems != 2 || !v.IsOpen {
		t.Fatalf("unexpected cart after add: %+v", v)
	}

	v = doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":"p-bag","quantity":1}`)
	if len(v.Items) != 1 || v.Items[0].Quantity != 3 {
		t.Fatalf("expected merged line with quantity 3, got %+v", v.Items)
	}

	v = doJSON(t, app, "PATCH", "/api/v1/cart/items/p-bag--", `{"quantity":0}`)
	if len(v.Items) != 0 {
		t.Fatalf("expected line removed at quantity 0, got %+v", v.Items)
	}

	doJSON(t, app, "POST", "/api/v1/cart/items", `{"productId":"p-dress","size":"S"}`)
	v = doJSON(t, app, "POST", "/api/v1/cart/open", `{"open":false}`)
	if v.IsOpen || v.TotalPrice.IntPart() != 150 {
		t.Fatalf("unexpected cart after close: %+v", v)
	}

	v = doJSON(t, app, "DELETE", "/api/v1/cart", "")
	if len(v.Items) != 0 || v.TotalItems != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", v)
	}
}

func TestCartRoutes_IssuesSessionCookie(t *testing.T) {
	app := makeAppWithCartHandler(NewHandler(NewService(NewInMemoryStore(), testProducts(), zap.NewNop())))

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/cart", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Header.Get("Set-Cookie"), "cart_session=") {
		t.Fatalf("expected a cart_session cookie, got %q", res.Header.Get("Set-Cookie"))
	}
	if res.Header.Get(SessionHeader) == "" {
		t.Fatalf("expected the session id to be echoed in %s", SessionHeader)
	}
}

func TestCartRoutes_UnknownProduct(t *testing.T) {
	app := makeAppWithCartHandler(NewHandler(NewService(NewInMemoryStore(), testProducts(), zap.NewNop())))

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productId":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req, -1)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func cookieRequest(t *testing.T, app *fiber.App, method, target, session, body string) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "cart_session="+session)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("%s %s: expected 200, got %d", method, target, res.StatusCode)
	}
}

func TestCartRoutes_CookieSessionsStayApart(t *testing.T) {
	store := NewInMemoryStore()
	app := makeAppWithCartHandler(NewHandler(NewService(store, testProducts(), zap.NewNop())))

	first := "AAAAAAAAAAAAAAAA"
	second := "BBBBBBBBBBBBBBBB"
	cookieRequest(t, app, "POST", "/api/v1/cart/items", first, `{"productId":"p-bag","quantity":2}`)
	for i := 0; i < 5; i++ {
		cookieRequest(t, app, "GET", "/api/v1/cart", second, "")
	}
	cookieRequest(t, app, "POST", "/api/v1/cart/open", second, `{"open":true}`)

	a, err := store.Load(context.Background(), first)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Lines) != 1 || a.Lines[0].Quantity != 2 {
		t.Fatalf("first session lost its cart: %+v", a)
	}
	b, err := store.Load(context.Background(), second)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Lines) != 0 {
		t.Fatalf("second session sees another cart: %+v", b)
	}
}
