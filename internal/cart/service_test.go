package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/chic-commerce/storefront-api/internal/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noCategories struct{}

func (noCategories) CategoryIDBySlug(ctx context.Context, slug string) (string, bool, error) {
	return "", false, nil
}

func testProducts() *product.Service {
	now := time.Now()
	seed := []product.Product{
		{ID: "p-dress", Name: "Linen Dress", NameAr: "فستان كتان", Slug: "linen-dress", Price: decimal.NewFromInt(200),
			DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(150)), Images: []string{"/uploads/products/dress.jpg", "/uploads/products/dress-2.jpg"}, Active: true, CreatedAt: now},
		{ID: "p-bag", Name: "Tote Bag", NameAr: "حقيبة", Slug: "tote-bag", Price: decimal.NewFromInt(120), Active: true, CreatedAt: now},
		{ID: "p-hidden", Name: "Hidden", NameAr: "مخفي", Slug: "hidden", Price: decimal.NewFromInt(10), Active: false, CreatedAt: now},
	}
	return product.NewService(product.NewInMemoryRepository(seed), noCategories{})
}

type brokenStore struct{ *InMemoryStore }

func (brokenStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	return Cart{}, errors.New("corrupt cart")
}

func intPtr(v int) *int { return &v }

func TestService_AddSnapshotsProduct(t *testing.T) {
	svc := NewService(NewInMemoryStore(), testProducts(), zap.NewNop())
	ctx := context.Background()

	c, err := svc.Add(ctx, "s1", AddRequest{ProductID: "p-dress", Size: "M", Quantity: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)

	line := c.Lines[0]
	assert.Equal(t, "فستان كتان", line.Name)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(150)), "effective price is snapshotted")
	assert.Equal(t, "/uploads/products/dress.jpg", line.Image)
	assert.Equal(t, "p-dress-M-", line.ID)
}

func TestService_AddDefaultsToOne(t *testing.T) {
	svc := NewService(NewInMemoryStore(), testProducts(), zap.NewNop())
	c, err := svc.Add(context.Background(), "s1", AddRequest{ProductID: "p-bag"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalItems())
}

func TestService_AddRejectsBadInput(t *testing.T) {
	svc := NewService(NewInMemoryStore(), testProducts(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", AddRequest{ProductID: "p-bag", Quantity: intPtr(0)})
	var verr *apperror.Validation
	assert.True(t, errors.As(err, &verr))

	_, err = svc.Add(ctx, "s1", AddRequest{ProductID: "p-hidden"})
	var nf *apperror.NotFound
	assert.True(t, errors.As(err, &nf))

	_, err = svc.Add(ctx, "s1", AddRequest{ProductID: "p-unknown"})
	assert.True(t, errors.As(err, &nf))
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := NewService(NewInMemoryStore(), testProducts(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", AddRequest{ProductID: "p-bag"})
	require.NoError(t, err)

	assert.True(t, svc.Get(ctx, "s2").IsEmpty())
	assert.Equal(t, 1, svc.Get(ctx, "s1").TotalItems())
}

func TestService_ClearAndReload(t *testing.T) {
	svc := NewService(NewInMemoryStore(), testProducts(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", AddRequest{ProductID: "p-bag", Quantity: intPtr(3)})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))
	assert.True(t, svc.Get(ctx, "s1").IsEmpty())
}

func TestService_LoadFailureDegradesToEmpty(t *testing.T) {
	svc := NewService(brokenStore{NewInMemoryStore()}, testProducts(), zap.NewNop())
	assert.True(t, svc.Get(context.Background(), "s1").IsEmpty())
}
