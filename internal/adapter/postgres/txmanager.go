package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager scopes a unit of work to one transaction carried in the context.
type TxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager creates a TxManager issuing read-committed transactions.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTx calls fn with a context whose QuerierFromCtx is a transaction.
// fn returning nil commits; an error or panic rolls back.
//
// Inside an outer RunInTx the call becomes a savepoint, so a failed inner
// unit rolls back alone and the outer one decides about the rest.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	run := func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}
	if outer, ok := txFromCtx(ctx); ok {
		return pgx.BeginFunc(ctx, outer, run)
	}
	return pgx.BeginTxFunc(ctx, m.pool, m.opts, run)
}
