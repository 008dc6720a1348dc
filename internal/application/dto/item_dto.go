package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body for POST /api/items.
type CreateItemRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Subtype       string          `json:"subtype,omitempty"`
	Unit          string          `json:"unit"`
	BasePrice     decimal.Decimal `json:"base_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	LimitPrice    decimal.Decimal `json:"limit_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	LowStockLimit decimal.Decimal `json:"low_stock_limit"`
}

// UpdateItemRequest body for PUT /api/items/:id. Nil fields keep old values.
// Quantity is not updatable here; stock moves only through sales and restocks.
type UpdateItemRequest struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Subtype       *string          `json:"subtype,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	BasePrice     *decimal.Decimal `json:"base_price,omitempty"`
	SellPrice     *decimal.Decimal `json:"sell_price,omitempty"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	LowStockLimit *decimal.Decimal `json:"low_stock_limit,omitempty"`
}

// RestockRequest body for POST /api/items/:id/restock.
type RestockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// ItemResponse item in responses.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Subtype       string          `json:"subtype,omitempty"`
	Unit          string          `json:"unit"`
	BasePrice     decimal.Decimal `json:"base_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	LimitPrice    decimal.Decimal `json:"limit_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	LowStockLimit decimal.Decimal `json:"low_stock_limit"`
	LowOnStock    bool            `json:"low_on_stock"`
}

// InventoryTransactionResponse one stock ledger row.
type InventoryTransactionResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Type      string          `json:"type"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt string          `json:"created_at"`
}
