package dto

import "github.com/shopspring/decimal"

// ProfitLossResponse aggregated profit for a date range.
type ProfitLossResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // percent; 0 when revenue is 0
}

// CashFlowResponse collected vs outstanding for a date range.
type CashFlowResponse struct {
	From             string          `json:"from"`
	To               string          `json:"to"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	CollectionRate   decimal.Decimal `json:"collection_rate"` // percent; 0 when revenue is 0
}

// ValuationResponse current inventory value at cost and at sell price.
type ValuationResponse struct {
	CurrentValue    decimal.Decimal `json:"current_value"`
	PotentialValue  decimal.Decimal `json:"potential_value"`
	ProfitPotential decimal.Decimal `json:"profit_potential"`
}

// CustomerBalanceResponse one row of the customer balances report.
type CustomerBalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
}
