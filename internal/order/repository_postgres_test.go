package order

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLineOrder() Order {
	o := sampleOrder("o-1", "ORD-AAAA1111", StatusPending, time.Now())
	o.Items = append(o.Items, Line{ID: "o-1-l2", ProductName: "حقيبة", Quantity: 2, UnitPrice: o.Subtotal})
	return o
}

func TestPostgresCreate_HeaderLinesAndRedeemInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WithArgs("o-1-l1", "o-1", sqlmock.AnyArg(), "فستان كتان", 1, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE promo_codes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	redeem := func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE promo_codes SET current_uses = current_uses + 1 WHERE code = $1", "SAVE10")
		return err
	}
	_, err = NewPostgresRepository(db).Create(context.Background(), twoLineOrder(), redeem)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_LineFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	_, err = NewPostgresRepository(db).Create(context.Background(), twoLineOrder(), nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var orderRowColumns = []string{"id", "order_number", "customer_name", "customer_phone", "customer_address", "customer_city", "customer_email",
	"subtotal", "shipping_cost", "discount_amount", "tax", "total", "promo_code", "payment_method", "transfer_reference", "notes",
	"status", "created_at", "updated_at"}

func TestPostgresGetByNumber_AttachesLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM orders WHERE order_number").WithArgs("ORD-AAAA1111").WillReturnRows(
		sqlmock.NewRows(orderRowColumns).AddRow("o-1", "ORD-AAAA1111", "سارة", "0500000000", "حي النخيل", "الرياض", nil,
			"500", "0", "50", "75", "525", "SAVE10", "الدفع عند الاستلام", nil, nil, "confirmed", now, now))
	mock.ExpectQuery("FROM order_items").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price", "size", "color"}).
			AddRow("l-1", "o-1", "p-1", "فستان", 1, "300", "M", nil).
			AddRow("l-2", "o-1", nil, "حقيبة", 2, "100", nil, nil))

	o, err := NewPostgresRepository(db).GetByNumber(context.Background(), "ORD-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status)
	require.Len(t, o.Items, 2)
	assert.Nil(t, o.Items[1].ProductID)
	assert.True(t, o.Tax.Valid)
	assert.Equal(t, "525", o.Total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

const storedOrderID = "3c9e6f2a-8d41-4b7e-a5c0-2f6d9b1e7a48"

func TestPostgresUpdateStatus_Concurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("UPDATE orders SET status").WithArgs("shipped", sqlmock.AnyArg(), storedOrderID, "pending").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM orders WHERE id").WithArgs(storedOrderID).WillReturnRows(
		sqlmock.NewRows(orderRowColumns).AddRow(storedOrderID, "ORD-AAAA1111", "سارة", "0500000000", "حي النخيل", "الرياض", nil,
			"200", "50", "0", nil, "250", nil, nil, nil, nil, "cancelled", now, now))
	mock.ExpectQuery("FROM order_items").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price", "size", "color"}))

	_, err = NewPostgresRepository(db).UpdateStatus(context.Background(), storedOrderID, StatusPending, StatusShipped, now)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestPostgresRepository_MalformedIDIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()
	_, err = repo.GetByID(ctx, "o-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.UpdateStatus(ctx, "not-a-uuid", StatusPending, StatusConfirmed, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "42"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet(), "malformed ids must not reach Postgres")
}

// moneyArg records the driver value bound for a money column.
type moneyArg struct {
	got *decimal.Decimal
}

func (a moneyArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	*a.got = d
	return true
}

func TestPostgresCreate_WritesTermsThatSumToTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	o := sampleOrder("o-9", "ORD-99999999", StatusPending, time.Now())
	o.Subtotal = decimal.RequireFromString("99.99")
	o.ShippingCost = decimal.NewFromInt(50)
	o.Tax = decimal.NewNullDecimal(decimal.NewFromInt(15))
	o.DiscountAmount = decimal.RequireFromString("12.49875")
	o.Total = decimal.RequireFromString("152.48125")

	var subtotal, shipping, discount, tax, total decimal.Decimal
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WithArgs(
		"o-9", "ORD-99999999", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		moneyArg{&subtotal}, moneyArg{&shipping}, moneyArg{&discount}, moneyArg{&tax}, moneyArg{&total},
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err = NewPostgresRepository(db).Create(context.Background(), o, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, discount.Equal(decimal.RequireFromString("12.49875")), "discount written as %s", discount)
	assert.True(t, subtotal.Add(shipping).Add(tax).Sub(discount).Equal(total), "written total %s", total)
}

func TestPostgresFindByContact(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM orders").WithArgs("", "noura@example.com").WillReturnRows(
		sqlmock.NewRows(orderRowColumns).AddRow(storedOrderID, "ORD-DDDD4444", "نورة", "0511111111", "حي الملقا", "الرياض", "Noura@Example.com",
			"200", "50", "0", nil, "250", nil, nil, nil, nil, "pending", now, now))
	mock.ExpectQuery("FROM order_items").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "quantity", "price", "size", "color"}).
			AddRow("l-1", storedOrderID, nil, "حقيبة", 1, "200", nil, nil))

	orders, err := NewPostgresRepository(db).FindByContact(context.Background(), "", "noura@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].CustomerEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
