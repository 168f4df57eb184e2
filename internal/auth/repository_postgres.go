package auth

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
	getUserByIDQuery = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	insertUserQuery = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, lower($2), $3, $4)
	`
	updatePasswordQuery = `UPDATE users SET password_hash = $2 WHERE id = $1`
	listRolesQuery      = `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`
	assignRoleQuery     = `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (User, error) {
	if !database.ValidID(id) {
		return User{}, ErrNotFound
	}
	return r.getOne(ctx, getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, getUserByEmailQuery, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, q, arg string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.Roles, err = r.Roles(ctx, u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	_, err := r.db.ExecContext(ctx, insertUserQuery, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if database.IsUniqueViolation(err) {
		return User{}, ErrEmailExists
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, updatePasswordQuery, id, hash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Roles(ctx context.Context, userID string) ([]Role, error) {
	rows, err := r.db.QueryContext(ctx, listRolesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]Role, 0, 1)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, Role(role))
	}
	return roles, rows.Err()
}

func (r *PostgresRepository) AssignRole(ctx context.Context, userID string, role Role) error {
	_, err := r.db.ExecContext(ctx, assignRoleQuery, userID, string(role))
	return err
}
