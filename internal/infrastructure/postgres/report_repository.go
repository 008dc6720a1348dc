package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo read-only aggregate queries for the ledger read model. Always
// pool-backed: reports never run inside a write transaction.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds the adapter.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesProfit sums revenue and cost over sale items in the range. Cost uses
// the item's current base price; COALESCE returns zero for empty ranges.
func (r *ReportRepo) SalesProfit(ctx context.Context, from, to time.Time) (revenue, cost decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(si.quantity * si.price),        0) AS revenue,
	    COALESCE(SUM(si.quantity * i.base_price),    0) AS cost
	FROM sales s
	JOIN sale_items si ON si.sale_id = s.id
	JOIN items      i  ON i.id       = si.item_id
	WHERE s.created_at BETWEEN $1 AND $2`

	err = r.pool.QueryRow(ctx, query, from, to).Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.SalesProfit: %w", err)
	}
	return revenue, cost, nil
}

// SalesCash sums collected and billed amounts over sales in the range.
func (r *ReportRepo) SalesCash(ctx context.Context, from, to time.Time) (collected, billed decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(paid_amount),  0) AS collected,
	    COALESCE(SUM(total_amount), 0) AS billed
	FROM sales
	WHERE created_at BETWEEN $1 AND $2`

	err = r.pool.QueryRow(ctx, query, from, to).Scan(&collected, &billed)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.SalesCash: %w", err)
	}
	return collected, billed, nil
}

// StockValue values current stock at cost and at sell price.
func (r *ReportRepo) StockValue(ctx context.Context) (atCost, atSell decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity * base_price), 0) AS at_cost,
	    COALESCE(SUM(quantity * sell_price), 0) AS at_sell
	FROM items`

	err = r.pool.QueryRow(ctx, query).Scan(&atCost, &atSell)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.StockValue: %w", err)
	}
	return atCost, atSell, nil
}

// CustomerBalances derives every customer's balance from the append-only
// ledger. The sum is commutative, so the result is independent of insertion
// or scan order.
func (r *ReportRepo) CustomerBalances(ctx context.Context) ([]repository.CustomerBalanceRow, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COALESCE(c.phone, '')          AS phone,
	    COALESCE(SUM(ct.amount), 0)    AS balance
	FROM customers c
	LEFT JOIN customer_transactions ct ON ct.customer_id = c.id
	GROUP BY c.id, c.name, c.phone
	ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.CustomerBalances: %w", err)
	}
	defer rows.Close()

	var results []repository.CustomerBalanceRow
	for rows.Next() {
		var row repository.CustomerBalanceRow
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.Phone, &row.Balance); err != nil {
			return nil, fmt.Errorf("reports.CustomerBalances scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
