package entity

import "time"

// Customer is a shop customer. The balance is never stored: it is derived as
// the sum of the customer's ledger entries (see CustomerTransaction).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance status classification.
const (
	BalanceCredit  = "Credit"  // balance > 0: the shop owes the customer
	BalanceDue     = "Due"     // balance < 0: the customer owes the shop
	BalanceSettled = "Settled" // balance == 0
)
