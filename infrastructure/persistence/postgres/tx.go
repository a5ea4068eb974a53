package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogapi/application/ports"
	apperrors "blogapi/pkg/errors"
)

// txKey is the key type for storing a transaction in context
type txKey struct{}

// withTx returns a new context with the transaction attached
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext retrieves the transaction from context if one exists
func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// executorFrom returns the transaction from context when present,
// falling back to the pool.
func executorFrom(ctx context.Context, pool *pgxpool.Pool) executor {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return pool
}

// TxManager implements ports.TxManager over a pgx pool. After-commit
// hooks registered during the transaction run only once the commit
// succeeds; a rollback drops them.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new transaction manager
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx executes fn within a database transaction. If a transaction
// already exists in the context it is reused, delegating commit and
// rollback to the outer call.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewDatabaseError("begin transaction", err)
	}

	txCtx := ports.WithAfterCommitHooks(withTx(ctx, tx))

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewDatabaseError("commit transaction", err)
	}

	ports.RunAfterCommitHooks(txCtx)
	return nil
}

var _ ports.TxManager = (*TxManager)(nil)
