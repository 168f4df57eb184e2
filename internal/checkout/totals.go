package checkout

import (
	"github.com/chic-commerce/storefront-api/internal/settings"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the priced breakdown of a cart.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Tax            decimal.Decimal `json:"tax"`
	TaxEnabled     bool            `json:"taxEnabled"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

// ComputeTotals prices a cart subtotal. Shipping is waived at or above the
// free-shipping threshold; tax is rounded half away from zero to whole
// units and is zero when the deployment charges no tax; the discount is
// kept at full precision. The total never goes below zero.
func ComputeTotals(subtotal decimal.Decimal, s settings.SiteSettings, discountPercent decimal.Decimal) Totals {
	t := Totals{
		Subtotal:     subtotal,
		ShippingCost: s.ShippingCost,
		Tax:          decimal.Zero,
		TaxEnabled:   s.TaxEnabled(),
	}
	if subtotal.GreaterThanOrEqual(s.FreeShippingThreshold) {
		t.ShippingCost = decimal.Zero
	}
	if t.TaxEnabled {
		t.Tax = subtotal.Mul(s.TaxRate).Div(hundred).Round(0)
	}
	t.DiscountAmount = subtotal.Mul(discountPercent).Div(hundred)

	t.Total = subtotal.Add(t.ShippingCost).Add(t.Tax).Sub(t.DiscountAmount)
	if t.Total.IsNegative() {
		t.Total = decimal.Zero
	}
	return t
}
