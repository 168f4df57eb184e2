package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is a product snapshot attached to an order. Lines never change
// after the order is written.
type Line struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	Size        *string         `json:"size,omitempty"`
	Color       *string         `json:"color,omitempty"`
}

// Order is the durable record of a checkout. Money is stored at full
// precision; Total = Subtotal + ShippingCost + Tax - DiscountAmount,
// clamped at zero.
type Order struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	CustomerName      string              `json:"customerName"`
	CustomerPhone     string              `json:"customerPhone"`
	CustomerAddress   string              `json:"customerAddress"`
	CustomerCity      string              `json:"customerCity"`
	CustomerEmail     *string             `json:"customerEmail,omitempty"`
	Items             []Line              `json:"items"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	ShippingCost      decimal.Decimal     `json:"shippingCost"`
	DiscountAmount    decimal.Decimal     `json:"discountAmount"`
	Tax               decimal.NullDecimal `json:"tax"`
	Total             decimal.Decimal     `json:"total"`
	PromoCode         *string             `json:"promoCode,omitempty"`
	PaymentMethod     *string             `json:"paymentMethod,omitempty"`
	TransferReference *string             `json:"transferReference,omitempty"`
	Notes             *string             `json:"notes,omitempty"`
	Status            Status              `json:"status"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}
