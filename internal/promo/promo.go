package promo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Code is an admin-defined percentage discount rule.
type Code struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Active          bool            `json:"active"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	MaxUses         *int            `json:"maxUses,omitempty"`
	CurrentUses     int             `json:"currentUses"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Reason explains why a code was rejected.
type Reason string

const (
	ReasonNotFound      Reason = "NOT_FOUND"
	ReasonExpired       Reason = "EXPIRED"
	ReasonUsageExceeded Reason = "USAGE_EXCEEDED"
)

// Rejection is returned when a code cannot be applied.
type Rejection struct {
	Reason Reason
}

func (r *Rejection) Error() string {
	return "promo code rejected: " + string(r.Reason)
}

// Message is the shopper-facing explanation.
func (r *Rejection) Message() string {
	switch r.Reason {
	case ReasonExpired:
		return "انتهت صلاحية كود الخصم"
	case ReasonUsageExceeded:
		return "تم استنفاد عدد مرات استخدام كود الخصم"
	default:
		return "كود الخصم غير صالح"
	}
}

// Applied is a code that passed validation.
type Applied struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// Normalize returns the canonical stored form of a code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Check applies the usability rules in order: missing or inactive, then
// expiry, then the usage cap.
func Check(c *Code, now time.Time) error {
	if c == nil || !c.Active {
		return &Rejection{Reason: ReasonNotFound}
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return &Rejection{Reason: ReasonExpired}
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return &Rejection{Reason: ReasonUsageExceeded}
	}
	return nil
}

type Input struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Active          *bool           `json:"active"`
	ExpiresAt       *time.Time      `json:"expiresAt"`
	MaxUses         *int            `json:"maxUses"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if Normalize(in.Code) == "" {
		errs["code"] = "الكود مطلوب"
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		errs["discountPercent"] = "نسبة الخصم يجب أن تكون بين 0 و 100"
	}
	if in.MaxUses != nil && *in.MaxUses < 1 {
		errs["maxUses"] = "الحد الأقصى للاستخدام يجب أن يكون 1 على الأقل"
	}
	return errs
}

func (in Input) apply(c *Code) {
	c.Code = Normalize(in.Code)
	c.DiscountPercent = in.DiscountPercent
	c.ExpiresAt = in.ExpiresAt
	c.MaxUses = in.MaxUses
	if in.Active != nil {
		c.Active = *in.Active
	}
}
