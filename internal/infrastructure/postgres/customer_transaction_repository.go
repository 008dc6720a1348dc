package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

var _ repository.CustomerTransactionRepository = (*CustomerTransactionRepo)(nil)

// CustomerTransactionRepo append-only adapter for the customer ledger.
// Balances are derived with SumByCustomer; there is no UPDATE or DELETE.
type CustomerTransactionRepo struct {
	q Querier
}

// NewCustomerTransactionRepository builds the adapter. Pass a pool or a tx.
func NewCustomerTransactionRepository(q Querier) *CustomerTransactionRepo {
	return &CustomerTransactionRepo{q: q}
}

// Create appends one ledger entry.
func (r *CustomerTransactionRepo) Create(tx *entity.CustomerTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customer_transactions (id, customer_id, amount, reason, sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CustomerID, tx.Amount, tx.Reason, nullIfEmpty(tx.SaleID), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer transaction: %w", err)
	}
	return nil
}

// ListByCustomer returns the most recent ledger entries for a customer.
func (r *CustomerTransactionRepo) ListByCustomer(customerID string, limit int) ([]*entity.CustomerTransaction, error) {
	query := `
		SELECT id, customer_id, amount, reason, COALESCE(sale_id, ''), created_at
		FROM customer_transactions
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list customer transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerTransaction
	for rows.Next() {
		var tx entity.CustomerTransaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.Amount, &tx.Reason, &tx.SaleID, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}

// SumByCustomer derives the balance: the commutative sum of all entry amounts.
func (r *CustomerTransactionRepo) SumByCustomer(customerID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM customer_transactions WHERE customer_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum customer transactions: %w", err)
	}
	return sum, nil
}
