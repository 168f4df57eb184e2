package banner

import (
	"context"
	"database/sql"
	"errors"

	"github.com/chic-commerce/storefront-api/internal/database"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	bannerColumns = `id, title, title_ar, subtitle, subtitle_ar, image_url, link, sort_order, active, created_at, updated_at`

	listBannersQuery = `
		SELECT ` + bannerColumns + ` FROM banners
		WHERE ($1 = FALSE OR active)
		ORDER BY sort_order, created_at
		LIMIT NULLIF($2, 0)
	`
	getBannerQuery    = `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`
	insertBannerQuery = `
		INSERT INTO banners (id, title, title_ar, subtitle, subtitle_ar, image_url, link, sort_order, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	updateBannerQuery = `
		UPDATE banners
		SET title = $1, title_ar = $2, subtitle = $3, subtitle_ar = $4, image_url = $5, link = $6, sort_order = $7, active = $8, updated_at = $9
		WHERE id = $10
	`
	deleteBannerQuery = `DELETE FROM banners WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBanner(row rowScanner) (Banner, error) {
	var (
		b                                Banner
		title, titleAr, sub, subAr, link sql.NullString
	)
	if err := row.Scan(&b.ID, &title, &titleAr, &sub, &subAr, &b.ImageURL, &link, &b.SortOrder, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Banner{}, err
	}
	b.Title = nullable(title)
	b.TitleAr = nullable(titleAr)
	b.Subtitle = nullable(sub)
	b.SubtitleAr = nullable(subAr)
	b.Link = nullable(link)
	return b, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// List returns banners ordered by sort order; limit 0 means no limit.
func (r *PostgresRepository) List(ctx context.Context, activeOnly bool, limit int) ([]Banner, error) {
	rows, err := r.db.QueryContext(ctx, listBannersQuery, activeOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Banner, error) {
	if !database.ValidID(id) {
		return Banner{}, ErrNotFound
	}
	b, err := scanBanner(r.db.QueryRowContext(ctx, getBannerQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Banner{}, ErrNotFound
	}
	return b, err
}

func (r *PostgresRepository) Create(ctx context.Context, b Banner) (Banner, error) {
	_, err := r.db.ExecContext(ctx, insertBannerQuery,
		b.ID, b.Title, b.TitleAr, b.Subtitle, b.SubtitleAr, b.ImageURL, b.Link, b.SortOrder, b.Active, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b Banner) (Banner, error) {
	if !database.ValidID(b.ID) {
		return Banner{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateBannerQuery,
		b.Title, b.TitleAr, b.Subtitle, b.SubtitleAr, b.ImageURL, b.Link, b.SortOrder, b.Active, b.UpdatedAt, b.ID)
	if err != nil {
		return Banner{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Banner{}, ErrNotFound
	}
	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteBannerQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
