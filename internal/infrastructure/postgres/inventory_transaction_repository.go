package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo append-only adapter for the stock audit ledger.
// The table has no UPDATE or DELETE path.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository builds the adapter. Pass a pool or a tx.
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create appends one stock audit row.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (id, item_id, quantity, type, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ItemID, tx.Quantity, tx.Type, nullIfEmpty(tx.Reference), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByItem returns the most recent transactions for an item.
func (r *InventoryTransactionRepo) ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, item_id, quantity, type, COALESCE(reference, ''), created_at
		FROM inventory_transactions
		WHERE item_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var tx entity.InventoryTransaction
		if err := rows.Scan(&tx.ID, &tx.ItemID, &tx.Quantity, &tx.Type, &tx.Reference, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
