package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore keeps each session's lines as a JSONB array.
type PostgresStore struct {
	db *sql.DB
}

const (
	loadCartQuery = `SELECT lines, is_open FROM carts WHERE session_id = $1`
	saveCartQuery = `
		INSERT INTO carts (session_id, lines, is_open, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (session_id) DO UPDATE
		SET lines = EXCLUDED.lines, is_open = EXCLUDED.is_open, updated_at = now()
	`
	deleteCartQuery = `DELETE FROM carts WHERE session_id = $1`
)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	var (
		raw []byte
		c   Cart
	)
	err := s.db.QueryRowContext(ctx, loadCartQuery, sessionID).Scan(&raw, &c.IsOpen)
	if errors.Is(err, sql.ErrNoRows) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.Lines); err != nil {
			return Cart{}, fmt.Errorf("decode cart lines: %w", err)
		}
	}
	return c, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID string, c Cart) error {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, saveCartQuery, sessionID, string(raw), c.IsOpen)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, deleteCartQuery, sessionID)
	return err
}
