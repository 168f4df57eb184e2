package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chic-commerce/storefront-api/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	categoryColumns = `id, name, name_ar, slug, image_url, sort_order, active, created_at, updated_at`

	listCategoriesQuery       = `SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name`
	listActiveCategoriesQuery = `SELECT ` + categoryColumns + ` FROM categories WHERE active ORDER BY sort_order, name`
	getCategoryByIDQuery      = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	getCategoryBySlugQuery    = `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	insertCategoryQuery       = `
		INSERT INTO categories (id, name, name_ar, slug, image_url, sort_order, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	updateCategoryQuery = `
		UPDATE categories
		SET name = $1, name_ar = $2, slug = $3, image_url = $4, sort_order = $5, active = $6, updated_at = $7
		WHERE id = $8
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (Category, error) {
	var (
		c   Category
		img sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug, &img, &c.SortOrder, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Category{}, err
	}
	if img.Valid {
		c.ImageURL = &img.String
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]Category, error) {
	q := listCategoriesQuery
	if activeOnly {
		q = listActiveCategoriesQuery
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Category, error) {
	if !database.ValidID(id) {
		return Category{}, ErrNotFound
	}
	return r.getOne(ctx, getCategoryByIDQuery, id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (Category, error) {
	return r.getOne(ctx, getCategoryBySlugQuery, slug)
}

func (r *PostgresRepository) getOne(ctx context.Context, q, arg string) (Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, c Category) (Category, error) {
	_, err := r.db.ExecContext(ctx, insertCategoryQuery,
		c.ID, c.Name, c.NameAr, c.Slug, c.ImageURL, c.SortOrder, c.Active, c.CreatedAt, c.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return Category{}, ErrSlugTaken
	}
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c Category) (Category, error) {
	if !database.ValidID(c.ID) {
		return Category{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateCategoryQuery,
		c.Name, c.NameAr, c.Slug, c.ImageURL, c.SortOrder, c.Active, c.UpdatedAt, c.ID)
	if database.IsUniqueViolation(err) {
		return Category{}, ErrSlugTaken
	}
	if err != nil {
		return Category{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
