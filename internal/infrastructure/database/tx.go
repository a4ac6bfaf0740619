package database

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TxRunner runs a function inside a single database transaction.
// Services depend on this interface so multi-step writes (entity save plus
// association replace) commit or roll back together.
type TxRunner interface {
	ExecuteInTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// ExecuteInTransaction begins a transaction, runs fn and commits on success.
// Any error from fn rolls everything back; rollback on a committed
// transaction is a no-op, so the deferred rollback is always safe.
func (db *PostgresDB) ExecuteInTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error().Err(rbErr).Msg("Transaction rollback error")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}
