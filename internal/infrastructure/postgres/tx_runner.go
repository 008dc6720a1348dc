package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukapos/pos-api/internal/application/catalog"
	"github.com/dukapos/pos-api/internal/application/sales"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// Ensure TxRunner satisfies the application ports.
var (
	_ sales.TxRunner   = (*TxRunner)(nil)
	_ catalog.TxRunner = (*TxRunner)(nil)
)

// TxRunner executes callbacks inside one PostgreSQL transaction, handing the
// callback repositories bound to that transaction. Serialization failures and
// deadlocks surface as domain.ErrConflict so callers can retry.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories and
// commits, or rolls back when fn fails. Nothing outside the transaction ever
// observes partial writes.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	invTxRepo repository.InventoryTransactionRepository,
	customerRepo repository.CustomerRepository,
	custTxRepo repository.CustomerTransactionRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	invTxRepo := NewInventoryTransactionRepository(tx)
	customerRepo := NewCustomerRepository(tx)
	custTxRepo := NewCustomerTransactionRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(itemRepo, invTxRepo, customerRepo, custTxRepo, saleRepo); err != nil {
		if isRetryableConflict(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableConflict(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
