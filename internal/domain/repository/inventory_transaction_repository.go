package repository

import "github.com/dukapos/pos-api/internal/domain/entity"

// InventoryTransactionRepository append-only access to the stock audit ledger.
// There is deliberately no Update or Delete.
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	ListByItem(itemID string, limit int) ([]*entity.InventoryTransaction, error)
}
