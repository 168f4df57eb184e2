package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Prices are in the store currency.
type Product struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	NameAr        string              `json:"nameAr"`
	Slug          string              `json:"slug"`
	Description   *string             `json:"description,omitempty"`
	DescriptionAr *string             `json:"descriptionAr,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discountPrice"`
	CategoryID    *string             `json:"categoryId,omitempty"`
	Sizes         []string            `json:"sizes"`
	Colors        []string            `json:"colors"`
	Images        []string            `json:"images"`
	Stock         int                 `json:"stock"`
	Featured      bool                `json:"featured"`
	Active        bool                `json:"active"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// EffectivePrice is what the shopper pays per unit.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid && p.DiscountPrice.Decimal.LessThan(p.Price) {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

// PrimaryImage is the first image, or "" when there are none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	ActiveOnly   bool
	FeaturedOnly bool
	CategoryID   string
	Query        string
	Limit        int
}

// MinSearchLength is the shortest query the storefront search accepts.
const MinSearchLength = 2

type Input struct {
	Name          string              `json:"name"`
	NameAr        string              `json:"nameAr"`
	Slug          string              `json:"slug"`
	Description   *string             `json:"description"`
	DescriptionAr *string             `json:"descriptionAr"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discountPrice"`
	CategoryID    *string             `json:"categoryId"`
	Sizes         []string            `json:"sizes"`
	Colors        []string            `json:"colors"`
	Images        []string            `json:"images"`
	Stock         int                 `json:"stock"`
	Featured      bool                `json:"featured"`
	Active        *bool               `json:"active"`
}

func (in *Input) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if in.CategoryID != nil && strings.TrimSpace(*in.CategoryID) == "" {
		in.CategoryID = nil
	}
	in.Sizes = compact(in.Sizes)
	in.Colors = compact(in.Colors)
	in.Images = compact(in.Images)
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "اسم المنتج مطلوب"
	}
	if in.NameAr == "" {
		errs["nameAr"] = "اسم المنتج بالعربية مطلوب"
	}
	if in.Slug == "" {
		errs["slug"] = "الرابط المختصر مطلوب"
	} else if strings.ContainsAny(in.Slug, " /?#") {
		errs["slug"] = "الرابط المختصر يحتوي على أحرف غير مسموحة"
	}
	if in.Price.IsNegative() {
		errs["price"] = "السعر لا يمكن أن يكون سالباً"
	}
	if in.DiscountPrice.Valid && in.DiscountPrice.Decimal.IsNegative() {
		errs["discountPrice"] = "سعر الخصم لا يمكن أن يكون سالباً"
	}
	if in.Stock < 0 {
		errs["stock"] = "المخزون لا يمكن أن يكون سالباً"
	}
	return errs
}

func (in Input) apply(p *Product) {
	p.Name = in.Name
	p.NameAr = in.NameAr
	p.Slug = in.Slug
	p.Description = in.Description
	p.DescriptionAr = in.DescriptionAr
	p.Price = in.Price
	p.DiscountPrice = in.DiscountPrice
	p.CategoryID = in.CategoryID
	p.Sizes = in.Sizes
	p.Colors = in.Colors
	p.Images = in.Images
	p.Stock = in.Stock
	p.Featured = in.Featured
	if in.Active != nil {
		p.Active = *in.Active
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
