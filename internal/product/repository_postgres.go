package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chic-commerce/storefront-api/internal/database"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, name_ar, slug, description, description_ar, price, discount_price, category_id, sizes, colors, images, stock, featured, active, created_at, updated_at`

	getProductByIDQuery   = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	getProductBySlugQuery = `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	insertProductQuery    = `
		INSERT INTO products (id, name, name_ar, slug, description, description_ar, price, discount_price, category_id, sizes, colors, images, stock, featured, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			name_ar = $2,
			slug = $3,
			description = $4,
			description_ar = $5,
			price = $6,
			discount_price = $7,
			category_id = $8,
			sizes = $9,
			colors = $10,
			images = $11,
			stock = $12,
			featured = $13,
			active = $14,
			updated_at = $15
		WHERE id = $16
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p                   Product
		desc, descAr, catID sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.NameAr, &p.Slug, &desc, &descAr, &p.Price, &p.DiscountPrice, &catID,
		pq.Array(&p.Sizes), pq.Array(&p.Colors), pq.Array(&p.Images),
		&p.Stock, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	if descAr.Valid {
		p.DescriptionAr = &descAr.String
	}
	if catID.Valid {
		p.CategoryID = &catID.String
	}
	return p, nil
}

// buildListQuery renders the filter into a WHERE clause with positional args.
func buildListQuery(f Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.ActiveOnly {
		where = append(where, "active")
	}
	if f.FeaturedOnly {
		where = append(where, "featured")
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR name_ar ILIKE $%d)", n, n))
	}

	var b strings.Builder
	b.WriteString("SELECT " + productColumns + " FROM products")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	q, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	if !database.ValidID(id) {
		return Product{}, ErrNotFound
	}
	return r.getOne(ctx, getProductByIDQuery, id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	return r.getOne(ctx, getProductBySlugQuery, slug)
}

func (r *PostgresRepository) getOne(ctx context.Context, q, arg string) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.Name, p.NameAr, p.Slug, p.Description, p.DescriptionAr, p.Price, p.DiscountPrice, p.CategoryID,
		pq.Array(p.Sizes), pq.Array(p.Colors), pq.Array(p.Images),
		p.Stock, p.Featured, p.Active, p.CreatedAt, p.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return Product{}, ErrSlugTaken
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p Product) (Product, error) {
	if !database.ValidID(p.ID) {
		return Product{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateProductQuery,
		p.Name, p.NameAr, p.Slug, p.Description, p.DescriptionAr, p.Price, p.DiscountPrice, p.CategoryID,
		pq.Array(p.Sizes), pq.Array(p.Colors), pq.Array(p.Images),
		p.Stock, p.Featured, p.Active, p.UpdatedAt, p.ID)
	if database.IsUniqueViolation(err) {
		return Product{}, ErrSlugTaken
	}
	if err != nil {
		return Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
