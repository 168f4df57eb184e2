package checkout

import (
	"context"
	"time"

	"github.com/chic-commerce/storefront-api/internal/cart"
	"github.com/chic-commerce/storefront-api/internal/order"
	"github.com/chic-commerce/storefront-api/internal/payment"
	"github.com/chic-commerce/storefront-api/internal/product"
	"github.com/chic-commerce/storefront-api/internal/promo"
	"github.com/chic-commerce/storefront-api/internal/settings"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type noCategories struct{}

func (noCategories) CategoryIDBySlug(ctx context.Context, slug string) (string, bool, error) {
	return "", false, nil
}

// shop wires every collaborator of checkout on in-memory backends.
type shop struct {
	carts    *cart.Service
	settings *settings.Service
	promos   *promo.Service
	promoDB  *promo.InMemoryRepository
	payments *payment.Service
	orders   *order.Service
	orderDB  *order.InMemoryRepository
	checkout *Service
}

func catalogue() []product.Product {
	return []product.Product{
		{ID: "p-dress", Name: "Linen Dress", NameAr: "فستان كتان", Slug: "linen-dress", Price: decimal.NewFromInt(200),
			Sizes: []string{"S", "M"}, Images: []string{"/uploads/products/dress.jpg"}, Active: true, CreatedAt: testNow},
		{ID: "p-bag", Name: "Tote Bag", NameAr: "حقيبة قماش", Slug: "tote-bag", Price: decimal.NewFromInt(120),
			DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(100)), Active: true, CreatedAt: testNow},
		{ID: "p-scarf", Name: "Silk Scarf", NameAr: "وشاح حرير", Slug: "silk-scarf", Price: decimal.NewFromInt(80),
			Active: true, CreatedAt: testNow},
	}
}

func promoCodes() []promo.Code {
	one := 1
	past := testNow.Add(-time.Hour)
	return []promo.Code{
		{ID: "pc-1", Code: "SAVE10", DiscountPercent: decimal.NewFromInt(10), Active: true, CreatedAt: testNow},
		{ID: "pc-2", Code: "ONCE", DiscountPercent: decimal.NewFromInt(20), Active: true, MaxUses: &one, CreatedAt: testNow},
		{ID: "pc-3", Code: "OLD", DiscountPercent: decimal.NewFromInt(30), Active: true, ExpiresAt: &past, CreatedAt: testNow},
	}
}

func paymentMethods() []payment.Method {
	return []payment.Method{
		{ID: "pm-cash", Name: "Cash on delivery", NameAr: "الدفع عند الاستلام", Type: payment.TypeCash, Active: true, SortOrder: 1},
		{ID: "pm-transfer", Name: "Bank transfer", NameAr: "تحويل بنكي", Type: payment.TypeTransfer, RequiresReference: true, Active: true, SortOrder: 2},
		{ID: "pm-off", Name: "Old wallet", NameAr: "محفظة قديمة", Type: payment.TypeWallet, Active: false, SortOrder: 3},
	}
}

func newShop(methods []payment.Method) *shop {
	logger := zap.NewNop()
	products := product.NewService(product.NewInMemoryRepository(catalogue()), noCategories{})

	s := &shop{
		carts:    cart.NewService(cart.NewInMemoryStore(), products, logger),
		settings: settings.NewService(settings.NewInMemoryRepository(nil), logger),
		promoDB:  promo.NewInMemoryRepository(promoCodes()),
		payments: payment.NewService(payment.NewInMemoryRepository(methods)),
		orderDB:  order.NewInMemoryRepository(nil),
	}
	s.promos = promo.NewService(s.promoDB)
	s.orders = order.NewService(s.orderDB, logger)
	s.checkout = NewService(s.carts, s.settings, s.promos, s.payments, s.orders, logger)
	s.checkout.now = func() time.Time { return testNow }
	return s
}

func (s *shop) add(session, productID, size string, qty int) error {
	_, err := s.carts.Add(context.Background(), session, cart.AddRequest{ProductID: productID, Size: size, Quantity: &qty})
	return err
}

func validRequest() Request {
	return Request{
		CustomerName:    "نورة",
		CustomerPhone:   "0551234567",
		CustomerAddress: "حي الياسمين، شارع 12",
		CustomerCity:    "الرياض",
		PaymentMethodID: "pm-cash",
	}
}
