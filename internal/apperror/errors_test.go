package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func respondWith(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return Respond(c, err) })

	res, testErr := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	if testErr != nil {
		t.Fatal(testErr)
	}
	body := map[string]any{}
	json.NewDecoder(res.Body).Decode(&body)
	return res.StatusCode, body
}

func TestRespond_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &Validation{Message: "bad", Fields: map[string]string{"name": "required"}}, 400, "VALIDATION"},
		{"not found wrapped", fmt.Errorf("load: %w", &NotFound{Resource: "order", ID: "ORD-1"}), 404, "NOT_FOUND"},
		{"conflict", &Conflict{Message: "slug exists"}, 409, "CONFLICT"},
		{"transition", &InvalidTransition{From: "delivered", To: "pending"}, 409, "INVALID_TRANSITION"},
		{"unauthorized", ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"forbidden", ErrForbidden, 403, "FORBIDDEN"},
		{"backend", errors.New("connection reset"), 500, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondWith(t, tc.err)
			if status != tc.status {
				t.Fatalf("expected %d got %d", tc.status, status)
			}
			if body["code"] != tc.code {
				t.Fatalf("expected code %s got %v", tc.code, body["code"])
			}
		})
	}
}

func TestRespond_BackendMessageIncluded(t *testing.T) {
	_, body := respondWith(t, errors.New("insert failed: timeout"))
	if body["detail"] != "insert failed: timeout" {
		t.Fatalf("expected backend message in detail, got %v", body["detail"])
	}
}

func TestRespond_ForbiddenSignsOut(t *testing.T) {
	_, body := respondWith(t, ErrForbidden)
	if body["signOut"] != true {
		t.Fatalf("expected signOut flag, got %v", body)
	}
}

func TestNewValidation_EmptyFieldsIsNil(t *testing.T) {
	if err := NewValidation("x", nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := NewValidation("x", map[string]string{"a": "b"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
