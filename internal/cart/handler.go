package cart

import (
	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the session cart. Routes must sit behind SessionMiddleware.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Get("/api/v1/cart", h.getCart)
	r.Post("/api/v1/cart/items", h.addItem)
	r.Patch("/api/v1/cart/items/:lineId", h.updateQuantity)
	r.Delete("/api/v1/cart/items/:lineId", h.removeItem)
	r.Delete("/api/v1/cart", h.clearCart)
	r.Post("/api/v1/cart/open", h.setOpen)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type openRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(h.service.Get(c.UserContext(), SessionID(c)).View())
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(AddRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.Add(c.UserContext(), SessionID(c), *payload)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated.View())
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	updated, err := h.service.UpdateQuantity(c.UserContext(), SessionID(c), c.Params("lineId"), payload.Quantity)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated.View())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	updated, err := h.service.Remove(c.UserContext(), SessionID(c), c.Params("lineId"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated.View())
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), SessionID(c)); err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(Cart{}.View())
}

func (h *Handler) setOpen(c *fiber.Ctx) error {
	payload := openRequest{Open: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	updated, err := h.service.SetOpen(c.UserContext(), SessionID(c), payload.Open)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated.View())
}
