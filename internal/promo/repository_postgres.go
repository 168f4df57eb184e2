package promo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chic-commerce/storefront-api/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	promoColumns = `id, code, discount_percent, active, expires_at, max_uses, current_uses, created_at`

	listPromoQuery      = `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`
	getPromoByIDQuery   = `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = $1`
	getPromoByCodeQuery = `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`
	insertPromoQuery    = `
		INSERT INTO promo_codes (id, code, discount_percent, active, expires_at, max_uses, current_uses, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	updatePromoQuery = `
		UPDATE promo_codes
		SET code = $1, discount_percent = $2, active = $3, expires_at = $4, max_uses = $5
		WHERE id = $6
	`
	deletePromoQuery = `DELETE FROM promo_codes WHERE id = $1`

	// redeemPromoQuery re-asserts every usability rule so two concurrent
	// redemptions cannot both take the last use.
	redeemPromoQuery = `
		UPDATE promo_codes
		SET current_uses = current_uses + 1
		WHERE code = $1
		  AND active
		  AND (expires_at IS NULL OR expires_at > $2)
		  AND (max_uses IS NULL OR current_uses < max_uses)
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCode(row rowScanner) (Code, error) {
	var (
		c       Code
		expires sql.NullTime
		maxUses sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Code, &c.DiscountPercent, &c.Active, &expires, &maxUses, &c.CurrentUses, &c.CreatedAt); err != nil {
		return Code{}, err
	}
	if expires.Valid {
		c.ExpiresAt = &expires.Time
	}
	if maxUses.Valid {
		n := int(maxUses.Int64)
		c.MaxUses = &n
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Code, error) {
	rows, err := r.db.QueryContext(ctx, listPromoQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Code, 0)
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Code, error) {
	if !database.ValidID(id) {
		return Code{}, ErrNotFound
	}
	return r.getOne(ctx, getPromoByIDQuery, id)
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (Code, error) {
	return r.getOne(ctx, getPromoByCodeQuery, code)
}

func (r *PostgresRepository) getOne(ctx context.Context, q, arg string) (Code, error) {
	c, err := scanCode(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Code{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, c Code) (Code, error) {
	_, err := r.db.ExecContext(ctx, insertPromoQuery,
		c.ID, c.Code, c.DiscountPercent, c.Active, c.ExpiresAt, c.MaxUses, c.CurrentUses, c.CreatedAt)
	if database.IsUniqueViolation(err) {
		return Code{}, ErrCodeTaken
	}
	if err != nil {
		return Code{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c Code) (Code, error) {
	if !database.ValidID(c.ID) {
		return Code{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updatePromoQuery,
		c.Code, c.DiscountPercent, c.Active, c.ExpiresAt, c.MaxUses, c.ID)
	if database.IsUniqueViolation(err) {
		return Code{}, ErrCodeTaken
	}
	if err != nil {
		return Code{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Code{}, ErrNotFound
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deletePromoQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Redeem reports the rule that failed when the guarded update matches no
// row, reading the code back inside the same transaction.
func (r *PostgresRepository) Redeem(ctx context.Context, tx *sql.Tx, code string, now time.Time) error {
	var q queryer = r.db
	if tx != nil {
		q = tx
	}
	res, err := q.ExecContext(ctx, redeemPromoQuery, code, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	c, err := scanCode(q.QueryRowContext(ctx, getPromoByCodeQuery, code))
	if errors.Is(err, sql.ErrNoRows) {
		return &Rejection{Reason: ReasonNotFound}
	}
	if err != nil {
		return err
	}
	if err := Check(&c, now); err != nil {
		return err
	}
	return &Rejection{Reason: ReasonUsageExceeded}
}
