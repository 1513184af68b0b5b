package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortcode/internal/shortener"
)

const uniqueViolation = "23505"

// schema keeps the unique constraint on short_code at the storage layer.
const schema = `
	CREATE TABLE IF NOT EXISTS short_urls (
		id           UUID PRIMARY KEY,
		original_url TEXT        NOT NULL,
		short_code   TEXT        NOT NULL,
		short_url    TEXT        NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		CONSTRAINT short_urls_short_code_key UNIQUE (short_code)
	)
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed mapping store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the short_urls table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}

func (p *PostgresStore) Exists(ctx context.Context, code shortener.Code) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM short_urls WHERE short_code = $1)`

	var exists bool

	if err := p.pool.QueryRow(ctx, query, string(code)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check code existence: %w", err)
	}

	return exists, nil
}

func (p *PostgresStore) Insert(ctx context.Context, mapping *shortener.Mapping) error {
	query := `
		INSERT INTO short_urls (id, original_url, short_code, short_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (short_code) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		mapping.ID,
		mapping.OriginalURL,
		string(mapping.ShortCode),
		mapping.ShortURL,
		mapping.CreatedAt,
		mapping.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shortener.ErrConflict
		}

		return fmt.Errorf("insert mapping: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrConflict
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
