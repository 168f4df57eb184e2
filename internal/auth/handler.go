package auth

import (
	"errors"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service      *Service
	secureCookie bool
}

func NewHandler(s *Service, secureCookie bool) *Handler {
	return &Handler{service: s, secureCookie: secureCookie}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/auth/sign-in", h.signIn)
	r.Post("/api/v1/auth/sign-out", h.signOut)
}

// RegisterProtectedRoutes mounts the account routes behind guards, normally
// RequireToken followed by RequireAdmin.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router, guards ...fiber.Handler) {
	r.Get("/api/v1/auth/me", append(guards, h.me)...)
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	session, err := h.service.SignIn(c.UserContext(), payload.Email, payload.Password)
	if errors.Is(err, apperror.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		})
	}
	if err != nil {
		clearTokenCookie(c)
		return apperror.Respond(c, err)
	}

	setTokenCookie(c, session.Token, session.ExpiresAt, h.secureCookie)
	return c.JSON(fiber.Map{
		"message":   "تم تسجيل الدخول بنجاح",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      session.User,
	})
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	clearTokenCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) me(c *fiber.Ctx) error {
	u, ok := AdminFromCtx(c)
	if !ok {
		return apperror.Respond(c, apperror.ErrUnauthorized)
	}
	return c.JSON(u)
}
