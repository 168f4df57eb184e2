package category

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
	r.Get("/api/v1/categories", h.listActive)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/categories", h.listAll)
	r.Post("/categories", h.create)
	r.Put("/categories/:id", h.update)
	r.Delete("/categories/:id", h.delete)
}

func (h *Handler) listActive(c *fiber.Ctx) error {
	items, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	items, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) create(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	var in Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperror.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
