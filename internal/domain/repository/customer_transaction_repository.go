package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain/entity"
)

// CustomerTransactionRepository append-only access to the customer ledger.
// Balances are derived (SumByCustomer), never stored.
type CustomerTransactionRepository interface {
	Create(tx *entity.CustomerTransaction) error
	ListByCustomer(customerID string, limit int) ([]*entity.CustomerTransaction, error)
	SumByCustomer(customerID string) (decimal.Decimal, error)
}
