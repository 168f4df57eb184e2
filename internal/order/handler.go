package order

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
	r.Get("/api/v1/orders/track/:orderNumber", h.track)
	r.Get("/api/v1/orders/lookup", h.lookup)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/orders", h.list)
	r.Get("/orders/:id", h.get)
	r.Patch("/orders/:id/status", h.updateStatus)
	r.Delete("/orders/:id", h.delete)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) track(c *fiber.Ctx) error {
	t, err := h.service.Track(c.UserContext(), c.Params("orderNumber"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(t)
}

func (h *Handler) lookup(c *fiber.Ctx) error {
	orders, err := h.service.Lookup(c.UserContext(), c.Query("phone"), c.Query("email"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	o, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload.Status)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperror.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
