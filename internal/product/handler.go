package product

import (
	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/products", h.browse)
	r.Get("/api/v1/products/featured", h.featured)
	r.Get("/api/v1/products/:slug", h.getBySlug)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/products", h.listAll)
	r.Post("/products", h.create)
	r.Put("/products/:id", h.update)
	r.Delete("/products/:id", h.delete)
}

func (h *Handler) browse(c *fiber.Ctx) error {
	items, err := h.service.Browse(c.UserContext(), c.Query("category"), c.Query("q"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) featured(c *fiber.Ctx) error {
	items, err := h.service.Featured(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) getBySlug(c *fiber.Ctx) error {
	p, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	items, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) create(c *fiber.Ctx) error {
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.Create(c.UserContext(), *in)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	in := new(Input)
	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Update(c.UserContext(), c.Params("id"), *in)
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
