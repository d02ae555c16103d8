package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// PostgresRepository stores each collection as one row of kv_store.
// The schema is created by the goose migrations in /migrations.
type PostgresRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewPostgresRepo(db *dbpg.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var value []byte
	if err = row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scan %s: %w", key, err)
	}

	return value, true, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_store (key, value, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query, key, value)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
			return fmt.Errorf("set %s: kv_store table missing, run migrations: %w", key, err)
		}
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Master.Close()
}
