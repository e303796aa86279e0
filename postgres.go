package kmlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps values in the kmlog_kv table, keyed by
// "<prefix>:<key>"
type PostgresStore struct {
	pool   *pgxpool.Pool
	prefix string
}

const (
	pgCreateTable = `
CREATE TABLE IF NOT EXISTS kmlog_kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	pgSelectValue = `SELECT value FROM kmlog_kv WHERE key = $1`

	pgUpsertValue = `
INSERT INTO kmlog_kv (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to cfg.DSN and creates the kmlog_kv table if it
// does not exist yet. cfg.Timeout bounds the connection attempt
func NewPostgresStore(
	ctx context.Context, cfg StoreConfig,
) (*PostgresStore, error) {
	connCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	pool, err := pgxpool.New(connCtx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, err
	}

	s, err := NewPostgresStoreFromPool(connCtx, pool, cfg.prefix())
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreFromPool wraps an existing pool. Closing the returned
// Store closes the pool
func NewPostgresStoreFromPool(
	ctx context.Context, pool *pgxpool.Pool, prefix string,
) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, pgCreateTable); err != nil {
		return nil, fmt.Errorf("create kmlog_kv: %w", err)
	}
	return &PostgresStore{
		pool:   pool,
		prefix: prefix,
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	err := s.pool.QueryRow(ctx, pgSelectValue, buildKey(s.prefix, key)).
		Scan(&val)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func (s *PostgresStore) Put(
	ctx context.Context, key string, value []byte,
) error {
	_, err := s.pool.Exec(ctx, pgUpsertValue, buildKey(s.prefix, key), value)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
