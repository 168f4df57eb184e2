package settings

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Keys of the site_settings key/value table.
const (
	KeyStoreName             = "store_name"
	KeyStoreNameAr           = "store_name_ar"
	KeyLogo                  = "logo"
	KeyCurrency              = "currency"
	KeyCurrencySymbol        = "currency_symbol"
	KeyPhone                 = "store_phone"
	KeyEmail                 = "store_email"
	KeyAddress               = "store_address"
	KeyWhatsappNumber        = "whatsapp_number"
	KeyAnnouncementText      = "announcement_text"
	KeyTaxRate               = "tax_rate"
	KeyShippingCost          = "shipping_cost"
	KeyFreeShippingThreshold = "free_shipping_threshold"
)

// SiteSettings is the process-wide store configuration.
type SiteSettings struct {
	StoreName             string          `json:"storeName"`
	StoreNameAr           string          `json:"storeNameAr"`
	Logo                  string          `json:"logo"`
	Currency              string          `json:"currency"`
	CurrencySymbol        string          `json:"currencySymbol"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email"`
	Address               string          `json:"address"`
	WhatsappNumber        string          `json:"whatsappNumber"`
	AnnouncementText      string          `json:"announcementText"`
	TaxRate               decimal.Decimal `json:"taxRate"`
	ShippingCost          decimal.Decimal `json:"shippingCost"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() SiteSettings {
	return SiteSettings{
		StoreName:             "Chic Commerce",
		StoreNameAr:           "شيك كومرس",
		Logo:                  "/placeholder.svg",
		Currency:              "SAR",
		CurrencySymbol:        "ر.س",
		Phone:                 "+966501234567",
		Email:                 "info@chiccommerce.com",
		Address:               "الرياض، المملكة العربية السعودية",
		TaxRate:               decimal.NewFromInt(15),
		ShippingCost:          decimal.NewFromInt(50),
		FreeShippingThreshold: decimal.NewFromInt(500),
	}
}

// TaxEnabled is false for deployments that do not charge tax.
func (s SiteSettings) TaxEnabled() bool {
	return s.TaxRate.IsPositive()
}

// FormatMoney rounds amount to whole currency units for display.
func (s SiteSettings) FormatMoney(amount decimal.Decimal) string {
	return strings.TrimSpace(amount.Round(0).String() + " " + s.CurrencySymbol)
}

// Patch carries a partial settings update; nil fields are left untouched.
type Patch struct {
	StoreName             *string          `json:"storeName,omitempty"`
	StoreNameAr           *string          `json:"storeNameAr,omitempty"`
	Logo                  *string          `json:"logo,omitempty"`
	Currency              *string          `json:"currency,omitempty"`
	CurrencySymbol        *string          `json:"currencySymbol,omitempty"`
	Phone                 *string          `json:"phone,omitempty"`
	Email                 *string          `json:"email,omitempty"`
	Address               *string          `json:"address,omitempty"`
	WhatsappNumber        *string          `json:"whatsappNumber,omitempty"`
	AnnouncementText      *string          `json:"announcementText,omitempty"`
	TaxRate               *decimal.Decimal `json:"taxRate,omitempty"`
	ShippingCost          *decimal.Decimal `json:"shippingCost,omitempty"`
	FreeShippingThreshold *decimal.Decimal `json:"freeShippingThreshold,omitempty"`
}

func (p Patch) validate() map[string]string {
	errs := map[string]string{}
	if p.TaxRate != nil && (p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		errs["taxRate"] = "نسبة الضريبة يجب أن تكون بين 0 و 100"
	}
	if p.ShippingCost != nil && p.ShippingCost.IsNegative() {
		errs["shippingCost"] = "تكلفة الشحن لا يمكن أن تكون سالبة"
	}
	if p.FreeShippingThreshold != nil && p.FreeShippingThreshold.IsNegative() {
		errs["freeShippingThreshold"] = "حد الشحن المجاني لا يمكن أن يكون سالباً"
	}
	return errs
}

// values flattens the patch into key/value pairs for storage.
func (p Patch) values() map[string]string {
	out := map[string]string{}
	str := func(key string, v *string) {
		if v != nil {
			out[key] = strings.TrimSpace(*v)
		}
	}
	num := func(key string, v *decimal.Decimal) {
		if v != nil {
			out[key] = v.String()
		}
	}
	str(KeyStoreName, p.StoreName)
	str(KeyStoreNameAr, p.StoreNameAr)
	str(KeyLogo, p.Logo)
	str(KeyCurrency, p.Currency)
	str(KeyCurrencySymbol, p.CurrencySymbol)
	str(KeyPhone, p.Phone)
	str(KeyEmail, p.Email)
	str(KeyAddress, p.Address)
	str(KeyWhatsappNumber, p.WhatsappNumber)
	str(KeyAnnouncementText, p.AnnouncementText)
	num(KeyTaxRate, p.TaxRate)
	num(KeyShippingCost, p.ShippingCost)
	num(KeyFreeShippingThreshold, p.FreeShippingThreshold)
	return out
}

// parse overlays stored key/value pairs on the defaults. Malformed numeric
// values are reported in invalid and the default is kept.
func parse(values map[string]string) (s SiteSettings, invalid map[string]string) {
	s = Defaults()
	invalid = map[string]string{}

	strs := map[string]*string{
		KeyStoreName:        &s.StoreName,
		KeyStoreNameAr:      &s.StoreNameAr,
		KeyLogo:             &s.Logo,
		KeyCurrency:         &s.Currency,
		KeyCurrencySymbol:   &s.CurrencySymbol,
		KeyPhone:            &s.Phone,
		KeyEmail:            &s.Email,
		KeyAddress:          &s.Address,
		KeyWhatsappNumber:   &s.WhatsappNumber,
		KeyAnnouncementText: &s.AnnouncementText,
	}
	nums := map[string]*decimal.Decimal{
		KeyTaxRate:               &s.TaxRate,
		KeyShippingCost:          &s.ShippingCost,
		KeyFreeShippingThreshold: &s.FreeShippingThreshold,
	}

	for key, raw := range values {
		if dst, ok := strs[key]; ok {
			*dst = raw
			continue
		}
		if dst, ok := nums[key]; ok {
			d, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil || d.IsNegative() {
				invalid[key] = raw
				continue
			}
			*dst = d
		}
	}
	return s, invalid
}
