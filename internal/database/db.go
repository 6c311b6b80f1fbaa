package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/excellence-hub/excellence/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPostgresError translates driver errors into model sentinels.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: postgres %s: %s", models.ErrStorage, pgErr.Code, pgErr.Message)
	}

	return fmt.Errorf("%w: %v", models.ErrStorage, err)
}

// WithTransaction runs fn in a read-committed transaction. It commits when
// fn returns nil and rolls back on an error or a panic.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginTxFunc(ctx, db.Pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}
