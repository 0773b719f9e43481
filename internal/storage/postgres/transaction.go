package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"soposyncd/internal/domain"
)

type ctxKey string

const txKey ctxKey = "tx"

// TransactionManager scopes ledger operations to a single database
// transaction. The engine wraps each workflow's pass in one transaction so
// a failure leaves either the pre-pass or the fully-updated ledger state.
type TransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %v", domain.ErrStorage, err)
	}

	txCtx := context.WithValue(ctx, txKey, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

func getTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

func getExecutor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := getTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
