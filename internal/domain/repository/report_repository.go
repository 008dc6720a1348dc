package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerBalanceRow one customer with its derived ledger balance.
type CustomerBalanceRow struct {
	CustomerID string
	Name       string
	Phone      string
	Balance    decimal.Decimal
}

// ReportRepository read-only aggregate queries over the ledger tables.
// All queries are idempotent: they scan append-only history plus current
// catalog snapshots, so re-running them with no intervening writes always
// yields the same numbers.
type ReportRepository interface {
	// SalesProfit sums revenue (Σ qty×price) and cost (Σ qty×base_price) over
	// sale items in the date range.
	SalesProfit(ctx context.Context, from, to time.Time) (revenue, cost decimal.Decimal, err error)
	// SalesCash sums collected (Σ paid_amount) and billed (Σ total_amount)
	// over sales in the date range.
	SalesCash(ctx context.Context, from, to time.Time) (collected, billed decimal.Decimal, err error)
	// StockValue sums current stock at cost and at sell price.
	StockValue(ctx context.Context) (atCost, atSell decimal.Decimal, err error)
	// CustomerBalances derives every customer's balance from the ledger.
	CustomerBalances(ctx context.Context) ([]CustomerBalanceRow, error)
}
