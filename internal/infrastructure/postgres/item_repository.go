package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ItemRepository implementation (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, category, subtype, unit, base_price, sell_price, limit_price, quantity, low_stock_limit, created_at, updated_at`

// Create persists a new item.
func (r *ItemRepo) Create(item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO items (id, name, category, subtype, unit, base_price, sell_price, limit_price, quantity, low_stock_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, nullIfEmpty(item.Subtype), item.Unit,
		item.BasePrice, item.SellPrice, item.LimitPrice, item.Quantity, item.LowStockLimit,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item already exists: %w", err)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID reads one item.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetForUpdate reads the item and locks its row (SELECT FOR UPDATE) so
// concurrent stock mutations against the same item serialize.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// Update persists catalog fields. Quantity is excluded: stock is restated only
// through UpdateQuantity inside the coordinator's transaction.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, subtype = $4, unit = $5,
		    base_price = $6, sell_price = $7, limit_price = $8,
		    low_stock_limit = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, nullIfEmpty(item.Subtype), item.Unit,
		item.BasePrice, item.SellPrice, item.LimitPrice, item.LowStockLimit, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateQuantity restates the stock level. The CHECK (quantity >= 0)
// constraint on the table is the last line of defense; the coordinator
// validates before calling.
func (r *ItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	query := `UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// List returns a page of items ordered by name.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.collectItems(rows)
}

// ListLowStock returns items at or below their low-stock limit.
func (r *ItemRepo) ListLowStock() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE low_stock_limit > 0 AND quantity <= low_stock_limit
		ORDER BY quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return r.collectItems(rows)
}

func (r *ItemRepo) scanItem(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	var subtype *string
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &subtype, &it.Unit,
		&it.BasePrice, &it.SellPrice, &it.LimitPrice, &it.Quantity, &it.LowStockLimit,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if subtype != nil {
		it.Subtype = *subtype
	}
	return &it, nil
}

func (r *ItemRepo) collectItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		var subtype *string
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Category, &subtype, &it.Unit,
			&it.BasePrice, &it.SellPrice, &it.LimitPrice, &it.Quantity, &it.LowStockLimit,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if subtype != nil {
			it.Subtype = *subtype
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
