package repository

import "github.com/dukapos/pos-api/internal/domain/entity"

// SaleRepository data access for sales and their line items.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate reads the sale and locks its row so concurrent updates to
	// the same sale are mutually exclusive.
	GetForUpdate(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	Update(sale *entity.Sale) error
	// DeleteItemsBySaleID removes the line items (used when replacing the
	// item set on update; the sale row itself stays).
	DeleteItemsBySaleID(saleID string) error
	// Delete removes the sale header; line items cascade.
	Delete(id string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
