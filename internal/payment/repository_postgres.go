package payment

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
	methodColumns = `id, name, name_ar, description, description_ar, icon, type, instructions, instructions_ar, requires_reference, active, sort_order, created_at, updated_at`

	listMethodsQuery       = `SELECT ` + methodColumns + ` FROM payment_methods ORDER BY sort_order, name`
	listActiveMethodsQuery = `SELECT ` + methodColumns + ` FROM payment_methods WHERE active ORDER BY sort_order, name`
	getMethodQuery         = `SELECT ` + methodColumns + ` FROM payment_methods WHERE id = $1`
	insertMethodQuery      = `
		INSERT INTO payment_methods (id, name, name_ar, description, description_ar, icon, type, instructions, instructions_ar, requires_reference, active, sort_order, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	updateMethodQuery = `
		UPDATE payment_methods
		SET name = $1, name_ar = $2, description = $3, description_ar = $4, icon = $5, type = $6,
			instructions = $7, instructions_ar = $8, requires_reference = $9, active = $10, sort_order = $11, updated_at = $12
		WHERE id = $13
	`
	deleteMethodQuery = `DELETE FROM payment_methods WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMethod(row rowScanner) (Method, error) {
	var (
		m                                       Method
		desc, descAr, icon, instr, instrAr, typ sql.NullString
	)
	err := row.Scan(&m.ID, &m.Name, &m.NameAr, &desc, &descAr, &icon, &typ, &instr, &instrAr,
		&m.RequiresReference, &m.Active, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Method{}, err
	}
	m.Description = nullable(desc)
	m.DescriptionAr = nullable(descAr)
	m.Icon = nullable(icon)
	m.Instructions = nullable(instr)
	m.InstructionsAr = nullable(instrAr)
	m.Type = TypeCustom
	if t := Type(typ.String); typ.Valid && t.Valid() {
		m.Type = t
	}
	return m, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func (r *PostgresRepository) List(ctx context.Context, activeOnly bool) ([]Method, error) {
	q := listMethodsQuery
	if activeOnly {
		q = listActiveMethodsQuery
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Method, 0)
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Method, error) {
	if !database.ValidID(id) {
		return Method{}, ErrNotFound
	}
	m, err := scanMethod(r.db.QueryRowContext(ctx, getMethodQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Method{}, ErrNotFound
	}
	return m, err
}

func (r *PostgresRepository) Create(ctx context.Context, m Method) (Method, error) {
	_, err := r.db.ExecContext(ctx, insertMethodQuery,
		m.ID, m.Name, m.NameAr, m.Description, m.DescriptionAr, m.Icon, string(m.Type), m.Instructions, m.InstructionsAr,
		m.RequiresReference, m.Active, m.SortOrder, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return Method{}, err
	}
	return m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, m Method) (Method, error) {
	if !database.ValidID(m.ID) {
		return Method{}, ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, updateMethodQuery,
		m.Name, m.NameAr, m.Description, m.DescriptionAr, m.Icon, string(m.Type), m.Instructions, m.InstructionsAr,
		m.RequiresReference, m.Active, m.SortOrder, m.UpdatedAt, m.ID)
	if err != nil {
		return Method{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Method{}, ErrNotFound
	}
	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !database.ValidID(id) {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, deleteMethodQuery, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
