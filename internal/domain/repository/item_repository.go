package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain/entity"
)

// ItemRepository data access for inventory items.
// Implementations must be usable with either a pool or an open transaction;
// GetForUpdate is only meaningful inside a transaction.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate reads the item and locks its row (SELECT FOR UPDATE) so
	// concurrent sales against the same item serialize on its stock.
	GetForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateQuantity restates the stock level. Only the sale coordinator and
	// restock path may call it, always inside a transaction.
	UpdateQuantity(id string, quantity decimal.Decimal) error
	List(limit, offset int) ([]*entity.Item, error)
	ListLowStock() ([]*entity.Item, error)
}
