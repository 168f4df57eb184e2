package cart

import (
	"context"
	"strings"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/chic-commerce/storefront-api/internal/product"
	"go.uber.org/zap"
)

// ProductLookup resolves purchasable products for add-to-cart.
type ProductLookup interface {
	GetActive(ctx context.Context, id string) (product.Product, error)
}

// AddRequest is the add-to-cart payload. A nil Quantity means 1.
type AddRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  *int   `json:"quantity"`
}

// Service loads a session's cart, applies one mutation and flushes it back.
type Service struct {
	store    Store
	products ProductLookup
	logger   *zap.Logger
}

func NewService(store Store, products ProductLookup, logger *zap.Logger) *Service {
	return &Service{store: store, products: products, logger: logger}
}

// Get returns the session cart. A load failure degrades to an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) Cart {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load cart, starting empty", zap.String("session", sessionID), zap.Error(err))
		return Cart{}
	}
	return c
}

// Add snapshots the product's name, effective price and first image into
// the cart at add time.
func (s *Service) Add(ctx context.Context, sessionID string, req AddRequest) (Cart, error) {
	fields := map[string]string{}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		fields["productId"] = "المنتج مطلوب"
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
		if qty <= 0 {
			fields["quantity"] = "الكمية يجب أن تكون 1 على الأقل"
		}
	}
	if err := apperror.NewValidation("لا يمكن إضافة المنتج إلى السلة", fields); err != nil {
		return Cart{}, err
	}

	p, err := s.products.GetActive(ctx, req.ProductID)
	if err != nil {
		return Cart{}, err
	}

	name := p.NameAr
	if name == "" {
		name = p.Name
	}
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(Item{
			ProductID: p.ID,
			Name:      name,
			UnitPrice: p.EffectivePrice(),
			Image:     p.PrimaryImage(),
			Size:      strings.TrimSpace(req.Size),
			Color:     strings.TrimSpace(req.Color),
		}, qty)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) { c.UpdateQuantity(lineID, quantity) })
}

func (s *Service) Remove(ctx context.Context, sessionID, lineID string) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) { c.RemoveItem(lineID) })
}

func (s *Service) SetOpen(ctx context.Context, sessionID string, open bool) (Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) { c.SetOpen(open) })
}

// Clear empties the session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (Cart, error) {
	c := s.Get(ctx, sessionID)
	fn(&c)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	s.logger.Debug("cart updated",
		zap.String("session", sessionID),
		zap.Int("lines", len(c.Lines)),
		zap.Int("totalItems", c.TotalItems()))
	return c, nil
}
