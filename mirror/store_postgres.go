package mirror

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// PostgresStore keeps the mirror record in a single-row table keyed by
// an instance name, so several dashboard processes can share one
// database:
//
//	CREATE TABLE IF NOT EXISTS session_mirror (
//	    id         TEXT PRIMARY KEY,
//	    token      BYTEA NOT NULL,
//	    role       TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	pool     *pgxpool.Pool
	instance string
}

// NewPostgresStore creates a postgres-backed mirror store. An empty
// instance name falls back to "local".
func NewPostgresStore(pool *pgxpool.Pool, instance string) *PostgresStore {
	if instance == "" {
		instance = "local"
	}
	return &PostgresStore{pool: pool, instance: instance}
}

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO session_mirror (id, token, role, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, role = EXCLUDED.role, updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, query, s.instance, rec.Token, string(rec.Role), rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving session mirror row: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (Record, error) {
	rec := Record{}
	var role string
	query := `SELECT token, role, updated_at FROM session_mirror WHERE id = $1`

	err := s.pool.QueryRow(ctx, query, s.instance).Scan(&rec.Token, &role, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNoStoredSession
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading session mirror row: %w", err)
	}
	rec.Role = session.Role(role)
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM session_mirror WHERE id = $1`, s.instance)
	if err != nil {
		return fmt.Errorf("deleting session mirror row: %w", err)
	}
	return nil
}
