package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/excellence-hub/excellence/internal/database"
	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps documents in a shared PostgreSQL table so several
// server instances see the same state.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore wraps an open connection pool. Migrations are the caller's job.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	pgSelect = `SELECT value FROM kv_entries WHERE key = $1`
	pgUpsert = `INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	pgDelete = `DELETE FROM kv_entries WHERE key = $1`
	pgLock   = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

type pgQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgGet(ctx context.Context, q pgQuerier, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRow(ctx, pgSelect, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, database.MapPostgresError(err)
	}
	return value, true, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return pgGet(ctx, s.db.Pool, key)
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Pool.Exec(ctx, pgUpsert, key, string(value)); err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Pool.Exec(ctx, pgDelete, key); err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, keys []string, fn func(Tx) error) error {
	// Lock in a stable order so two updates over overlapping keys cannot deadlock.
	ordered := append([]string(nil), keys...)
	sort.Strings(ordered)

	return s.db.WithTransaction(ctx, func(pgTx pgx.Tx) error {
		for _, k := range ordered {
			if _, err := pgTx.Exec(ctx, pgLock, k); err != nil {
				return database.MapPostgresError(err)
			}
		}

		tx := newStagedTx(keys)
		for _, k := range ordered {
			v, ok, err := pgGet(ctx, pgTx, k)
			if err != nil {
				return err
			}
			if ok {
				tx.load(k, v)
			}
		}
		if err := tx.run(fn); err != nil {
			return err
		}
		return tx.each(func(key string, value []byte, deleted bool) error {
			var err error
			if deleted {
				_, err = pgTx.Exec(ctx, pgDelete, key)
			} else {
				_, err = pgTx.Exec(ctx, pgUpsert, key, string(value))
			}
			if err != nil {
				return fmt.Errorf("apply %s: %w", key, database.MapPostgresError(err))
			}
			return nil
		})
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
