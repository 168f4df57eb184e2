package checkout

import (
	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/chic-commerce/storefront-api/internal/cart"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes checkout. Routes must sit behind cart.SessionMiddleware.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(r fiber.Router) {
	r.Post("/api/v1/checkout/quote", h.quote)
	r.Post("/api/v1/checkout", h.submit)
}

type quoteRequest struct {
	PromoCode string `json:"promoCode"`
}

func (h *Handler) quote(c *fiber.Ctx) error {
	payload := new(quoteRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	q, err := h.service.Quote(c.UserContext(), cart.SessionID(c), payload.PromoCode)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(q)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Request)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	receipt, err := h.service.Submit(c.UserContext(), cart.SessionID(c), *payload)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}
