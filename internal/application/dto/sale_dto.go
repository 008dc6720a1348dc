package dto

import "github.com/shopspring/decimal"

// SaleItemRequest one requested sale line (item, quantity, negotiated price).
type SaleItemRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateSaleRequest body for POST /api/sales.
type CreateSaleRequest struct {
	CustomerID  string            `json:"customer_id"`
	Items       []SaleItemRequest `json:"items"`
	Discount    decimal.Decimal   `json:"discount"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
	PaymentType string            `json:"payment_type"`
	Notes       string            `json:"notes,omitempty"`
}

// UpdateSaleRequest body for PUT /api/sales/:id. Nil fields keep the old
// value; a non-nil Items replaces the whole line-item set.
type UpdateSaleRequest struct {
	CustomerID  *string            `json:"customer_id,omitempty"`
	Items       []SaleItemRequest  `json:"items,omitempty"`
	Discount    *decimal.Decimal   `json:"discount,omitempty"`
	PaidAmount  *decimal.Decimal   `json:"paid_amount,omitempty"`
	PaymentType *string            `json:"payment_type,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
}

// SaleItemResponse one sale line with the resolved item name.
type SaleItemResponse struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// SaleResponse full sale for create/get responses.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	UserID       string             `json:"user_id"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Discount     decimal.Decimal    `json:"discount"`
	PaidAmount   decimal.Decimal    `json:"paid_amount"`
	Outstanding  decimal.Decimal    `json:"outstanding"`
	PaymentType  string             `json:"payment_type"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    string             `json:"created_at"`
	Items        []SaleItemResponse `json:"items"`
	Warnings     []string           `json:"warnings,omitempty"`
}
