package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory transaction types.
const (
	TxTypeStockIn    = "STOCK_IN"
	TxTypeStockOut   = "STOCK_OUT"
	TxTypeAdjustment = "ADJUSTMENT"
)

// InventoryTransaction is the append-only audit record of a stock change.
// Rows are only ever inserted; summing STOCK_OUT minus STOCK_IN over an item's
// history reconciles with the difference between its initial and current stock.
type InventoryTransaction struct {
	ID        string
	ItemID    string
	Quantity  decimal.Decimal // always positive; Type carries the direction
	Type      string          // STOCK_IN, STOCK_OUT, ADJUSTMENT
	Reference string          // sale id or restock note
	CreatedAt time.Time
}
