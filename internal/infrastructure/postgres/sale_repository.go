package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo SaleRepository implementation (usable with pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, customer_id, user_id, total_amount, discount, paid_amount, payment_type, notes, created_at, updated_at`

// Create persists the sale header.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, customer_id, user_id, total_amount, discount, paid_amount, payment_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.UserID, sale.TotalAmount, sale.Discount,
		sale.PaidAmount, sale.PaymentType, nullIfEmpty(sale.Notes), sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persists one sale line with the quantity and price frozen at
// sale time.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ItemID, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID reads one sale header.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanSale(r.q.QueryRow(context.Background(), query, id), "get sale")
}

// GetForUpdate reads the sale and locks its row so competing writers of the
// same sale serialize instead of last-writer-wins.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanSale(r.q.QueryRow(context.Background(), query, id), "get sale for update")
}

// GetItemsBySaleID returns all lines of a sale.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, item_id, quantity, price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var si entity.SaleItem
		if err := rows.Scan(&si.ID, &si.SaleID, &si.ItemID, &si.Quantity, &si.Price); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &si)
	}
	return list, rows.Err()
}

// Update persists the sale header after a mutation.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET customer_id = $2, total_amount = $3, discount = $4, paid_amount = $5,
		    payment_type = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.TotalAmount, sale.Discount, sale.PaidAmount,
		sale.PaymentType, nullIfEmpty(sale.Notes), sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// DeleteItemsBySaleID removes the line items when the set is replaced.
func (r *SaleRepo) DeleteItemsBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return nil
}

// Delete removes the sale header; sale_items cascade via FK.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List returns recent sales, newest first.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var notes *string
		if err := rows.Scan(
			&s.ID, &s.CustomerID, &s.UserID, &s.TotalAmount, &s.Discount,
			&s.PaidAmount, &s.PaymentType, &notes, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if notes != nil {
			s.Notes = *notes
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanSale(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	var notes *string
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.UserID, &s.TotalAmount, &s.Discount,
		&s.PaidAmount, &s.PaymentType, &notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}
