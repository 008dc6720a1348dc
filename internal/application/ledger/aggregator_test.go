package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/pos-api/internal/application/ledger"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// stubReportRepo returns canned aggregate numbers.
type stubReportRepo struct {
	revenue, cost     decimal.Decimal
	collected, billed decimal.Decimal
	atCost, atSell    decimal.Decimal
	balances          []repository.CustomerBalanceRow
}

func (s *stubReportRepo) SalesProfit(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return s.revenue, s.cost, nil
}

func (s *stubReportRepo) SalesCash(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return s.collected, s.billed, nil
}

func (s *stubReportRepo) StockValue(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return s.atCost, s.atSell, nil
}

func (s *stubReportRepo) CustomerBalances(ctx context.Context) ([]repository.CustomerBalanceRow, error) {
	return s.balances, nil
}

type stubCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (s *stubCustomerRepo) Create(c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return s.customers[id], nil
}
func (s *stubCustomerRepo) FindByPhone(phone string) (*entity.Customer, error) { return nil, nil }
func (s *stubCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

type stubCustTxRepo struct {
	sums map[string]decimal.Decimal
}

func (s *stubCustTxRepo) Create(tx *entity.CustomerTransaction) error { return nil }
func (s *stubCustTxRepo) ListByCustomer(customerID string, limit int) ([]*entity.CustomerTransaction, error) {
	return nil, nil
}
func (s *stubCustTxRepo) SumByCustomer(customerID string) (decimal.Decimal, error) {
	return s.sums[customerID], nil
}

func TestClassifyBalance(t *testing.T) {
	assert.Equal(t, entity.BalanceCredit, ledger.ClassifyBalance(d("0.01")))
	assert.Equal(t, entity.BalanceDue, ledger.ClassifyBalance(d("-0.01")))
	assert.Equal(t, entity.BalanceSettled, ledger.ClassifyBalance(decimal.Zero))
}

func TestProfitAndLoss(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{revenue: d("1000"), cost: d("600")}, nil, nil)

	out, err := agg.ProfitAndLoss(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.True(t, out.TotalProfit.Equal(d("400")))
	assert.True(t, out.ProfitMargin.Equal(d("40")))
}

func TestProfitAndLoss_ZeroRevenue(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{}, nil, nil)

	out, err := agg.ProfitAndLoss(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.True(t, out.TotalProfit.IsZero())
	assert.True(t, out.ProfitMargin.IsZero(), "no division by zero on an empty range")
}

func TestCashFlow(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{collected: d("750"), billed: d("1000")}, nil, nil)

	out, err := agg.CashFlow(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.True(t, out.TotalOutstanding.Equal(d("250")))
	assert.True(t, out.CollectionRate.Equal(d("75")))
}

func TestInventoryValuation(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{atCost: d("5000"), atSell: d("7500")}, nil, nil)

	out, err := agg.InventoryValuation(context.Background())
	require.NoError(t, err)
	assert.True(t, out.CurrentValue.Equal(d("5000")))
	assert.True(t, out.PotentialValue.Equal(d("7500")))
	assert.True(t, out.ProfitPotential.Equal(d("2500")))
}

func TestCustomerBalance(t *testing.T) {
	customers := &stubCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Amina"},
	}}
	sums := &stubCustTxRepo{sums: map[string]decimal.Decimal{"cust-1": d("-150")}}
	agg := ledger.NewAggregator(&stubReportRepo{}, customers, sums)

	out, err := agg.CustomerBalance(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(d("-150")))
	assert.Equal(t, entity.BalanceDue, out.Status)

	_, err = agg.CustomerBalance(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerBalances_StatusPerRow(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{balances: []repository.CustomerBalanceRow{
		{CustomerID: "a", Name: "Amina", Balance: d("-100")},
		{CustomerID: "b", Name: "Brian", Balance: d("20")},
		{CustomerID: "c", Name: "Cynthia", Balance: decimal.Zero},
	}}, nil, nil)

	out, err := agg.CustomerBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, entity.BalanceDue, out[0].Status)
	assert.Equal(t, entity.BalanceCredit, out[1].Status)
	assert.Equal(t, entity.BalanceSettled, out[2].Status)
}

// Reports are pure reads: running the same query twice against unchanged
// state yields identical numbers.
func TestReports_Idempotent(t *testing.T) {
	agg := ledger.NewAggregator(&stubReportRepo{revenue: d("1000"), cost: d("600"), collected: d("750"), billed: d("1000")}, nil, nil)
	from, to := time.Now().AddDate(0, -1, 0), time.Now()

	first, err := agg.ProfitAndLoss(context.Background(), from, to)
	require.NoError(t, err)
	second, err := agg.ProfitAndLoss(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
