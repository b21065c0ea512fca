package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/domain/repository"
)

// Ensure TxRunner implements milling.TxRunner.
var _ milling.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to that tx
// and commits, or rolls everything back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	baggedRepo repository.BaggedStockRepository,
	totalsRepo repository.StockTotalsRepository,
	inventoryRepo repository.ProductInventoryRepository,
	purchaseRepo repository.PaddyPurchaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewBatchRepository(tx),
		NewBaggedStockRepository(tx),
		NewStockTotalsRepository(tx),
		NewProductInventoryRepository(tx),
		NewPaddyPurchaseRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReadOnly begins a read-only REPEATABLE READ transaction so the stock
// screens read one consistent snapshot.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	baggedRepo repository.BaggedStockRepository,
	totalsRepo repository.StockTotalsRepository,
	inventoryRepo repository.ProductInventoryRepository,
	bagSizeRepo repository.BagSizeRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewBatchRepository(tx),
		NewBaggedStockRepository(tx),
		NewStockTotalsRepository(tx),
		NewProductInventoryRepository(tx),
		NewBagSizeRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit read-only transaction: %w", err)
	}
	return nil
}
