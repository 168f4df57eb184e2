package server

import (
	"context"
	"fmt"

	"github.com/chic-commerce/storefront-api/internal/category"
	"github.com/chic-commerce/storefront-api/internal/payment"
	"github.com/chic-commerce/storefront-api/internal/settings"
)

// SeedReport counts what Seed wrote.
type SeedReport struct {
	Admin          bool
	Categories     int
	PaymentMethods int
	Settings       bool
}

func defaultCategories() []category.Input {
	placeholder := "/placeholder.svg"
	return []category.Input{
		{Name: "Shoes", NameAr: "أحذية", Slug: "shoes", ImageURL: &placeholder, SortOrder: 1},
		{Name: "Belts", NameAr: "أحزمة", Slug: "belts", ImageURL: &placeholder, SortOrder: 2},
		{Name: "Wallets", NameAr: "محافظ", Slug: "wallets", ImageURL: &placeholder, SortOrder: 3},
	}
}

func defaultPaymentMethods() []payment.Input {
	str := func(s string) *string { return &s }
	return []payment.Input{
		{
			Name: "Credit/Debit Card", NameAr: "بطاقة الائتمان/الخصم", Icon: str("💳"), Type: payment.TypeCard,
			Description: str("Pay securely with your credit or debit card"), DescriptionAr: str("ادفع بأمان باستخدام بطاقتك الائتمانية أو الخصم"),
			Instructions: str("Enter your card details to complete the payment"), InstructionsAr: str("أدخل بيانات بطاقتك لإتمام الدفع"),
			SortOrder: 1,
		},
		{
			Name: "Bank Transfer", NameAr: "تحويل بنكي", Icon: str("🏦"), Type: payment.TypeTransfer,
			Description: str("Transfer funds directly to our bank account"), DescriptionAr: str("حول الأموال مباشرة إلى حسابنا البنكي"),
			Instructions: str("You will receive bank details after confirming your order"), InstructionsAr: str("ستتلقى تفاصيل البنك بعد تأكيد طلبك"),
			RequiresReference: true, SortOrder: 2,
		},
		{
			Name: "Cash on Delivery", NameAr: "الدفع عند الاستلام", Icon: str("💰"), Type: payment.TypeCash,
			Description: str("Pay when your order arrives"), DescriptionAr: str("ادفع عند وصول طلبك"),
			Instructions: str("Pay the delivery person when your package arrives"), InstructionsAr: str("ادفع لموظف التسليم عند وصول طردك"),
			SortOrder: 3,
		},
	}
}

// Seed creates the admin account and fills empty catalogues with defaults.
// Running it again leaves existing rows alone.
func Seed(ctx context.Context, svc *Services, adminEmail, adminPassword string) (SeedReport, error) {
	var report SeedReport

	if adminEmail != "" {
		if _, err := svc.Auth.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
			return report, fmt.Errorf("admin: %w", err)
		}
		report.Admin = true
	}

	existing, err := svc.Categories.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) == 0 {
		for _, in := range defaultCategories() {
			if _, err := svc.Categories.Create(ctx, in); err != nil {
				return report, fmt.Errorf("category %s: %w", in.Slug, err)
			}
			report.Categories++
		}
	}

	methods, err := svc.Payments.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("list payment methods: %w", err)
	}
	if len(methods) == 0 {
		for _, in := range defaultPaymentMethods() {
			if _, err := svc.Payments.Create(ctx, in); err != nil {
				return report, fmt.Errorf("payment method %s: %w", in.Name, err)
			}
			report.PaymentMethods++
		}
	}

	current := svc.Settings.Get(ctx)
	if _, err := svc.Settings.Update(ctx, settings.Patch{
		StoreName:             &current.StoreName,
		StoreNameAr:           &current.StoreNameAr,
		Currency:              &current.Currency,
		CurrencySymbol:        &current.CurrencySymbol,
		TaxRate:               &current.TaxRate,
		ShippingCost:          &current.ShippingCost,
		FreeShippingThreshold: &current.FreeShippingThreshold,
	}); err != nil {
		return report, fmt.Errorf("settings: %w", err)
	}
	report.Settings = true

	return report, nil
}
