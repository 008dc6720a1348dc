package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// Aggregator is the read model over the ledger tables: balances, profit and
// loss, cash flow and inventory valuation. Everything here is read-only and
// idempotent: the inputs are append-only history plus catalog snapshots, so
// re-running any query against the same state yields the same numbers.
type Aggregator struct {
	reportRepo   repository.ReportRepository
	customerRepo repository.CustomerRepository
	custTxRepo   repository.CustomerTransactionRepository
}

// NewAggregator builds the read model.
func NewAggregator(
	reportRepo repository.ReportRepository,
	customerRepo repository.CustomerRepository,
	custTxRepo repository.CustomerTransactionRepository,
) *Aggregator {
	return &Aggregator{
		reportRepo:   reportRepo,
		customerRepo: customerRepo,
		custTxRepo:   custTxRepo,
	}
}

// ClassifyBalance maps a derived balance to its status label. This is the
// single source of truth for credit/debt status; read paths must not rederive
// it with ad hoc comparisons.
func ClassifyBalance(balance decimal.Decimal) string {
	switch {
	case balance.GreaterThan(decimal.Zero):
		return entity.BalanceCredit
	case balance.LessThan(decimal.Zero):
		return entity.BalanceDue
	default:
		return entity.BalanceSettled
	}
}

// percentOf returns part/whole × 100, or zero when the whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2)
}

// CustomerBalance derives one customer's balance from the ledger.
func (a *Aggregator) CustomerBalance(ctx context.Context, customerID string) (*dto.CustomerResponse, error) {
	customer, err := a.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	balance, err := a.custTxRepo.SumByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID:      customer.ID,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Balance: balance,
		Status:  ClassifyBalance(balance),
	}, nil
}

// ProfitAndLoss aggregates revenue, cost and margin over the date range.
func (a *Aggregator) ProfitAndLoss(ctx context.Context, from, to time.Time) (*dto.ProfitLossResponse, error) {
	revenue, cost, err := a.reportRepo.SalesProfit(ctx, from, to)
	if err != nil {
		return nil, err
	}
	profit := revenue.Sub(cost)
	return &dto.ProfitLossResponse{
		From:         from.Format("2006-01-02"),
		To:           to.Format("2006-01-02"),
		TotalRevenue: revenue,
		TotalCost:    cost,
		TotalProfit:  profit,
		ProfitMargin: percentOf(profit, revenue),
	}, nil
}

// CashFlow aggregates collected vs outstanding amounts over the date range.
func (a *Aggregator) CashFlow(ctx context.Context, from, to time.Time) (*dto.CashFlowResponse, error) {
	collected, billed, err := a.reportRepo.SalesCash(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.CashFlowResponse{
		From:             from.Format("2006-01-02"),
		To:               to.Format("2006-01-02"),
		TotalCollected:   collected,
		TotalRevenue:     billed,
		TotalOutstanding: billed.Sub(collected),
		CollectionRate:   percentOf(collected, billed),
	}, nil
}

// InventoryValuation values current stock at cost and at sell price.
func (a *Aggregator) InventoryValuation(ctx context.Context) (*dto.ValuationResponse, error) {
	atCost, atSell, err := a.reportRepo.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ValuationResponse{
		CurrentValue:    atCost,
		PotentialValue:  atSell,
		ProfitPotential: atSell.Sub(atCost),
	}, nil
}

// CustomerBalances lists every customer with derived balance and status.
func (a *Aggregator) CustomerBalances(ctx context.Context) ([]dto.CustomerBalanceResponse, error) {
	rows, err := a.reportRepo.CustomerBalances(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerBalanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CustomerBalanceResponse{
			CustomerID: r.CustomerID,
			Name:       r.Name,
			Phone:      r.Phone,
			Balance:    r.Balance,
			Status:     ClassifyBalance(r.Balance),
		})
	}
	return out, nil
}
