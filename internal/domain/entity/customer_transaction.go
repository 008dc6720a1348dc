package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTransaction is an immutable customer ledger entry. Amount is signed:
// negative for charges against the customer, positive for payments received.
// A sale appends a charge entry of -totalAmount and, when money changed hands,
// a payment entry of +paidAmount. Reversals and adjustments are new
// compensating rows; history is never edited.
type CustomerTransaction struct {
	ID         string
	CustomerID string
	Amount     decimal.Decimal
	Reason     string
	SaleID     string // optional back-reference for audit drill-down
	CreatedAt  time.Time
}
