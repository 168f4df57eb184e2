package settings

import (
	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/settings", h.getSettings)
}

// RegisterAdminRoutes expects r to be the authenticated admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/settings", h.getSettings)
	r.Put("/settings", h.updateSettings)
	r.Delete("/settings", h.resetSettings)
}

func (h *Handler) getSettings(c *fiber.Ctx) error {
	return c.JSON(h.service.Get(c.UserContext()))
}

func (h *Handler) updateSettings(c *fiber.Ctx) error {
	var p Patch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), p)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) resetSettings(c *fiber.Ctx) error {
	defaults, err := h.service.Reset(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(defaults)
}
