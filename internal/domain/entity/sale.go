package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types.
const (
	PaymentCash  = "CASH"
	PaymentMpesa = "MPESA"
)

// Sale is the header of a recorded sale. It owns its SaleItems (cascade
// deleted with it) and is the unit of atomicity: the sale, its items, the
// inventory transactions and the customer ledger entries it spawns are
// written or reversed together.
// Invariant: TotalAmount == Σ(item.Quantity × item.Price) − Discount.
type Sale struct {
	ID          string
	CustomerID  string
	UserID      string // who recorded the sale
	TotalAmount decimal.Decimal // subtotal minus discount
	Discount    decimal.Decimal
	PaidAmount  decimal.Decimal
	PaymentType string // CASH, MPESA
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleItem is one line of a sale. Price is the price actually charged,
// frozen at sale time; it is never recomputed from the catalog.
type SaleItem struct {
	ID       string
	SaleID   string
	ItemID   string
	Quantity decimal.Decimal
	Price    decimal.Decimal // per unit, as negotiated
}

// Subtotal returns quantity × price for the line.
func (si *SaleItem) Subtotal() decimal.Decimal {
	return si.Quantity.Mul(si.Price)
}

// Outstanding returns the unpaid portion of the sale (zero or positive for a
// credit sale; negative when the customer overpaid).
func (s *Sale) Outstanding() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}
