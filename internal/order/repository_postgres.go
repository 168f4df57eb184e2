package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chic-commerce/storefront-api/internal/database"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, order_number, customer_name, customer_phone, customer_address, customer_city, customer_email,
		subtotal, shipping_cost, discount_amount, tax, total, promo_code, payment_method, transfer_reference, notes,
		status, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (id, order_number, customer_name, customer_phone, customer_address, customer_city, customer_email,
			subtotal, shipping_cost, discount_amount, tax, total, promo_code, payment_method, transfer_reference, notes,
			status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`
	insertLineQuery = `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, size, color)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	getOrderByIDQuery     = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	getOrderByNumberQuery = `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	listOrdersQuery       = `SELECT ` + orderColumns + ` FROM orders WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC`
	findByContactQuery    = `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 <> '' AND customer_phone = $1) OR ($2 <> '' AND lower(customer_email) = lower($2))
		ORDER BY created_at DESC`
	listLinesQuery        = `
		SELECT id, order_id, product_id, product_name, quantity, price, size, color
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at, id
	`
	// updateStatusQuery only applies when the stored status still matches
	// the validated source status.
	updateStatusQuery = `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	deleteOrderQuery  = `DELETE FROM orders WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the header, every line and the redemption in one
// transaction.
func (r *PostgresRepository) Create(ctx context.Context, o Order, redeem RedeemFunc) (Order, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertOrderQuery,
			o.ID, o.OrderNumber, o.CustomerName, o.CustomerPhone, o.CustomerAddress, o.CustomerCity, o.CustomerEmail,
			o.Subtotal, o.ShippingCost, o.DiscountAmount, o.Tax, o.Total, o.PromoCode, o.PaymentMethod, o.TransferReference, o.Notes,
			string(o.Status), o.CreatedAt, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, l := range o.Items {
			if _, err := tx.ExecContext(ctx, insertLineQuery,
				l.ID, o.ID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice, l.Size, l.Color); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		if redeem != nil {
			return redeem(ctx, tx)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o                                      Order
		status                                 string
		email, promo, method, reference, notes sql.NullString
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.CustomerCity, &email,
		&o.Subtotal, &o.ShippingCost, &o.DiscountAmount, &o.Tax, &o.Total, &promo, &method, &reference, &notes,
		&status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	o.Status = Status(status)
	o.CustomerEmail = nullable(email)
	o.PromoCode = nullable(promo)
	o.PaymentMethod = nullable(method)
	o.TransferReference = nullable(reference)
	o.Notes = nullable(notes)
	o.Items = []Line{}
	return o, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	if !database.ValidID(id) {
		return Order{}, ErrNotFound
	}
	return r.getOne(ctx, getOrderByIDQuery, id)
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, number string) (Order, error) {
	return r.getOne(ctx, getOrderByNumberQuery, number)
}

func (r *PostgresRepository) getOne(ctx context.Context, q, arg string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	orders := []Order{o}
	if err := r.attachLines(ctx, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) List(ctx context.Context, status Status) ([]Order, error) {
	return r.queryMany(ctx, listOrdersQuery, string(status))
}

func (r *PostgresRepository) FindByContact(ctx context.Context, phone, email string) ([]Order, error) {
	return r.queryMany(ctx, findByContactQuery, phone, email)
}

func (r *PostgresRepository) queryMany(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachLines loads the lines of every order with a single query.
func (r *PostgresRepository) attachLines(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	rows, err := r.db.QueryContext(ctx, listLinesQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l                   Line
			orderID             string
			productID, size, co sql.NullString
		)
		if err := rows.Scan(&l.ID, &orderID, &productID, &l.ProductName, &l.Quantity, &l.UnitPrice, &size, &co); err != nil {
			return err
		}
		l.ProductID = nullable(productID)
		l.Size = nullable(size)
		l.Color = nullable(co)
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, l)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Order, error) {
	if !database.ValidID(id) {
		return Order{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateStatusQuery, string(to), at, id, string(from))
	if err != nil {
		return Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return Order{}, err
		}
		return Order{}, ErrStatusChanged
	}
	return r.GetByID(ctx, id)
}

// Delete removes the order; lines go with it through the foreign key.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteOrderQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
