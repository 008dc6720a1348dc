package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse customer with derived balance and status.
type CustomerResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"` // Credit | Due | Settled
}

// CustomerTransactionResponse one customer ledger row.
type CustomerTransactionResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	SaleID    string          `json:"sale_id,omitempty"`
	CreatedAt string          `json:"created_at"`
}
