package checkout

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/chic-commerce/storefront-api/internal/cart"
	"github.com/chic-commerce/storefront-api/internal/order"
	"github.com/chic-commerce/storefront-api/internal/payment"
	"github.com/chic-commerce/storefront-api/internal/promo"
	"github.com/chic-commerce/storefront-api/internal/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartSource interface {
	Get(ctx context.Context, sessionID string) cart.Cart
	Clear(ctx context.Context, sessionID string) error
}

type SettingsSource interface {
	Get(ctx context.Context) settings.SiteSettings
}

type PromoValidator interface {
	Validate(ctx context.Context, code string, now time.Time) (promo.Applied, error)
	Redeem(ctx context.Context, tx *sql.Tx, code string, now time.Time) error
}

type PaymentCatalog interface {
	ListActive(ctx context.Context) ([]payment.Method, error)
	GetActive(ctx context.Context, id string) (payment.Method, error)
}

type OrderWriter interface {
	Place(ctx context.Context, o order.Order, redeem order.RedeemFunc) (order.Order, error)
}

// Request is the customer form submitted at checkout.
type Request struct {
	CustomerName      string `json:"customerName"`
	CustomerPhone     string `json:"customerPhone"`
	CustomerAddress   string `json:"customerAddress"`
	CustomerCity      string `json:"customerCity"`
	CustomerEmail     string `json:"customerEmail"`
	Notes             string `json:"notes"`
	PaymentMethodID   string `json:"paymentMethodId"`
	TransferReference string `json:"transferReference"`
	PromoCode         string `json:"promoCode"`
}

func (r *Request) normalize() {
	for _, f := range []*string{
		&r.CustomerName, &r.CustomerPhone, &r.CustomerAddress, &r.CustomerCity,
		&r.CustomerEmail, &r.Notes, &r.PaymentMethodID, &r.TransferReference, &r.PromoCode,
	} {
		*f = strings.TrimSpace(*f)
	}
}

func (r Request) validate() map[string]string {
	errs := map[string]string{}
	if r.CustomerName == "" {
		errs["customerName"] = "الاسم مطلوب"
	}
	if r.CustomerPhone == "" {
		errs["customerPhone"] = "رقم الجوال مطلوب"
	}
	if r.CustomerAddress == "" {
		errs["customerAddress"] = "العنوان مطلوب"
	}
	if r.CustomerCity == "" {
		errs["customerCity"] = "المدينة مطلوبة"
	}
	return errs
}

// Quote is a priced preview of the session cart.
type Quote struct {
	Cart   cart.View      `json:"cart"`
	Totals Totals         `json:"totals"`
	Promo  *promo.Applied `json:"promo,omitempty"`
}

// Receipt is returned by a successful Submit.
type Receipt struct {
	OrderNumber string      `json:"orderNumber"`
	Order       order.Order `json:"order"`
}

type Service struct {
	carts    CartSource
	settings SettingsSource
	promos   PromoValidator
	payments PaymentCatalog
	orders   OrderWriter
	logger   *zap.Logger

	now       func() time.Time
	newNumber func() string
}

func NewService(carts CartSource, s SettingsSource, promos PromoValidator, payments PaymentCatalog, orders OrderWriter, logger *zap.Logger) *Service {
	return &Service{
		carts:     carts,
		settings:  s,
		promos:    promos,
		payments:  payments,
		orders:    orders,
		logger:    logger,
		now:       time.Now,
		newNumber: NewOrderNumber,
	}
}

// NewOrderNumber returns a short human-presentable number such as ORD-1A2B3C4D.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Quote prices the session cart. A rejected promo code is reported as a
// validation error on promoCode.
func (s *Service) Quote(ctx context.Context, sessionID, promoCode string) (Quote, error) {
	c := s.carts.Get(ctx, sessionID)
	q := Quote{Cart: c.View()}

	percent := decimal.Zero
	if code := strings.TrimSpace(promoCode); code != "" {
		applied, err := s.promos.Validate(ctx, code, s.now())
		if err != nil {
			return Quote{}, promoError(err)
		}
		q.Promo = &applied
		percent = applied.DiscountPercent
	}
	q.Totals = ComputeTotals(c.TotalPrice(), s.settings.Get(ctx), percent)
	return q, nil
}

// Submit validates the form against the session cart, writes the order with
// its lines and promo redemption as one unit, then empties the cart.
func (s *Service) Submit(ctx context.Context, sessionID string, req Request) (Receipt, error) {
	req.normalize()
	now := s.now()

	c := s.carts.Get(ctx, sessionID)
	errs := req.validate()
	if c.IsEmpty() {
		errs["items"] = "السلة فارغة"
	}

	method, err := s.resolvePayment(ctx, req, errs)
	if err != nil {
		return Receipt{}, err
	}

	percent := decimal.Zero
	var applied *promo.Applied
	if req.PromoCode != "" {
		a, err := s.promos.Validate(ctx, req.PromoCode, now)
		var rejection *promo.Rejection
		switch {
		case errors.As(err, &rejection):
			errs["promoCode"] = rejection.Message()
		case err != nil:
			return Receipt{}, err
		default:
			applied = &a
			percent = a.DiscountPercent
		}
	}

	if err := apperror.NewValidation("يرجى تصحيح بيانات الطلب", errs); err != nil {
		return Receipt{}, err
	}

	totals := ComputeTotals(c.TotalPrice(), s.settings.Get(ctx), percent)
	o := s.build(req, c, totals, method, applied, now.UTC())

	var redeem order.RedeemFunc
	if applied != nil {
		code := applied.Code
		redeem = func(ctx context.Context, tx *sql.Tx) error {
			return s.promos.Redeem(ctx, tx, code, now)
		}
	}

	placed, err := s.orders.Place(ctx, o, redeem)
	if err != nil {
		return Receipt{}, promoError(err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("cart not cleared after checkout",
			zap.String("orderNumber", placed.OrderNumber), zap.Error(err))
	}
	return Receipt{OrderNumber: placed.OrderNumber, Order: placed}, nil
}

// resolvePayment returns the chosen method, or nil when the catalogue is
// empty and none was chosen. Problems are recorded in errs.
func (s *Service) resolvePayment(ctx context.Context, req Request, errs map[string]string) (*payment.Method, error) {
	if req.PaymentMethodID == "" {
		methods, err := s.payments.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if len(methods) > 0 {
			errs["paymentMethodId"] = "يرجى اختيار طريقة الدفع"
		}
		return nil, nil
	}

	m, err := s.payments.GetActive(ctx, req.PaymentMethodID)
	var nf *apperror.NotFound
	if errors.As(err, &nf) {
		errs["paymentMethodId"] = "طريقة الدفع غير متاحة"
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m.RequiresReference && req.TransferReference == "" {
		errs["transferReference"] = "رقم مرجع التحويل مطلوب"
	}
	return &m, nil
}

func (s *Service) build(req Request, c cart.Cart, t Totals, method *payment.Method, applied *promo.Applied, now time.Time) order.Order {
	o := order.Order{
		ID:              uuid.NewString(),
		OrderNumber:     s.newNumber(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerEmail:   optional(req.CustomerEmail),
		Notes:           optional(req.Notes),
		Subtotal:        t.Subtotal,
		ShippingCost:    t.ShippingCost,
		DiscountAmount:  t.DiscountAmount,
		Total:           t.Total,
		Status:          order.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if t.TaxEnabled {
		o.Tax = decimal.NewNullDecimal(t.Tax)
	}
	if applied != nil {
		o.PromoCode = &applied.Code
	}
	if method != nil {
		name := method.NameAr
		o.PaymentMethod = &name
		o.TransferReference = optional(req.TransferReference)
	}

	o.Items = make([]order.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		productID := l.ProductID
		o.Items = append(o.Items, order.Line{
			ID:          uuid.NewString(),
			ProductID:   &productID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Size:        optional(l.Size),
			Color:       optional(l.Color),
		})
	}
	return o
}

// promoError turns a promo rejection into a field error; anything else is
// returned unchanged.
func promoError(err error) error {
	var rejection *promo.Rejection
	if errors.As(err, &rejection) {
		return &apperror.Validation{
			Message: rejection.Message(),
			Fields:  map[string]string{"promoCode": rejection.Message()},
		}
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
