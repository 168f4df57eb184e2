package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount *string
		want     string
	}{
		{"no discount", "200", nil, "200"},
		{"lower discount", "200", ptr("150"), "150"},
		{"discount not lower", "200", ptr("250"), "200"},
		{"zero discount", "200", ptr("0"), "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: decimal.RequireFromString(tc.price)}
			if tc.discount != nil {
				p.DiscountPrice = decimal.NewNullDecimal(decimal.RequireFromString(*tc.discount))
			}
			assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString(tc.want)), "got %s", p.EffectivePrice())
		})
	}
}

func TestInputValidate(t *testing.T) {
	in := Input{Name: " ", Slug: "has space", Price: decimal.NewFromInt(-1), Stock: -2,
		DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(-5))}
	in.normalize()
	errs := in.validate()
	for _, field := range []string{"name", "nameAr", "slug", "price", "stock", "discountPrice"} {
		assert.Contains(t, errs, field)
	}
}

func ptr(s string) *string { return &s }
