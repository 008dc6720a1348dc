package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Units of measure. "pcs" is sold in whole numbers only; the rest accept
// fractional quantities (two decimal places).
const (
	UnitPieces = "pcs"
	UnitKg     = "kg"
	UnitLitres = "litres"
	UnitMetres = "metres"
)

// Item is an inventory item (SKU) of the shop. Quantity is the current stock
// on hand and is mutated only through sale transactions and restocks; it is
// decimal-valued to support fractional units like kg.
type Item struct {
	ID            string
	Name          string
	Category      string
	Subtype       string // optional
	Unit          string // pcs, kg, litres, ...
	BasePrice     decimal.Decimal // cost per unit
	SellPrice     decimal.Decimal // default/reference selling price
	LimitPrice    decimal.Decimal // floor price; sales below this are rejected
	Quantity      decimal.Decimal // current stock, never negative
	LowStockLimit decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WholeUnit reports whether the item is sold in whole quantities only.
func (i *Item) WholeUnit() bool {
	return i.Unit == UnitPieces
}

// LowOnStock reports whether current stock is at or below the low-stock limit.
func (i *Item) LowOnStock() bool {
	if i.LowStockLimit.IsZero() {
		return false
	}
	return i.Quantity.LessThanOrEqual(i.LowStockLimit)
}
