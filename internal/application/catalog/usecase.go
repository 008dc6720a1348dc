package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with tx-bound
// repositories. Same contract as the sale coordinator's runner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		custTxRepo repository.CustomerTransactionRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ItemUseCase catalog management: item CRUD and restocks. Stock levels are
// mutated only here (restock) and by the sale coordinator.
type ItemUseCase struct {
	repo      repository.ItemRepository
	invTxRepo repository.InventoryTransactionRepository
	txRunner  TxRunner
}

// NewItemUseCase builds the use case.
func NewItemUseCase(repo repository.ItemRepository, invTxRepo repository.InventoryTransactionRepository, txRunner TxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, invTxRepo: invTxRepo, txRunner: txRunner}
}

// Create registers a new inventory item. The opening quantity, when non-zero,
// gets a STOCK_IN audit row so the transaction history reconciles from zero.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThan(decimal.Zero) || in.BasePrice.LessThan(decimal.Zero) ||
		in.SellPrice.LessThan(decimal.Zero) || in.LimitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.SellPrice.LessThan(in.LimitPrice) {
		return nil, domain.ErrInvalidAmount
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Category:      in.Category,
		Subtype:       in.Subtype,
		Unit:          in.Unit,
		BasePrice:     in.BasePrice,
		SellPrice:     in.SellPrice,
		LimitPrice:    in.LimitPrice,
		Quantity:      in.Quantity,
		LowStockLimit: in.LowStockLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		_ repository.CustomerRepository,
		_ repository.CustomerTransactionRepository,
		_ repository.SaleRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if item.Quantity.GreaterThan(decimal.Zero) {
			return invTxRepo.Create(&entity.InventoryTransaction{
				ID:        uuid.New().String(),
				ItemID:    item.ID,
				Quantity:  item.Quantity,
				Type:      entity.TxTypeStockIn,
				Reference: "opening stock",
				CreatedAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update edits catalog fields. Quantity is not touched here; stock moves only
// through sales and restocks. sellPrice >= limitPrice stays enforced.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Subtype != nil {
		item.Subtype = *in.Subtype
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.BasePrice != nil {
		item.BasePrice = *in.BasePrice
	}
	if in.SellPrice != nil {
		item.SellPrice = *in.SellPrice
	}
	if in.LimitPrice != nil {
		item.LimitPrice = *in.LimitPrice
	}
	if in.LowStockLimit != nil {
		item.LowStockLimit = *in.LowStockLimit
	}
	if item.BasePrice.LessThan(decimal.Zero) || item.SellPrice.LessThan(decimal.Zero) || item.LimitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if item.SellPrice.LessThan(item.LimitPrice) {
		return nil, domain.ErrInvalidAmount
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Restock adds stock: locks the item row, increments the quantity and appends
// a STOCK_IN audit row, all in one transaction.
func (uc *ItemUseCase) Restock(ctx context.Context, id string, in dto.RestockRequest) (*dto.ItemResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	var item *entity.Item
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		_ repository.CustomerRepository,
		_ repository.CustomerTransactionRepository,
		_ repository.SaleRepository,
	) error {
		var err error
		item, err = itemRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		now := time.Now()
		item.Quantity = item.Quantity.Add(in.Quantity)
		if err := itemRepo.UpdateQuantity(id, item.Quantity); err != nil {
			return err
		}
		reference := in.Note
		if reference == "" {
			reference = "restock"
		}
		return invTxRepo.Create(&entity.InventoryTransaction{
			ID:        uuid.New().String(),
			ItemID:    id,
			Quantity:  in.Quantity,
			Type:      entity.TxTypeStockIn,
			Reference: reference,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID returns one item.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

// List returns a page of items.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// ListLowStock returns items at or below their low-stock limit.
func (uc *ItemUseCase) ListLowStock(ctx context.Context) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// ListTransactions returns recent inventory transactions for an item (ops
// read path; must stay consistent with the core).
func (uc *ItemUseCase) ListTransactions(ctx context.Context, itemID string, limit int) ([]dto.InventoryTransactionResponse, error) {
	item, err := uc.repo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	txs, err := uc.invTxRepo.ListByItem(itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.InventoryTransactionResponse{
			ID:        tx.ID,
			ItemID:    tx.ItemID,
			Quantity:  tx.Quantity,
			Type:      tx.Type,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		Subtype:       item.Subtype,
		Unit:          item.Unit,
		BasePrice:     item.BasePrice,
		SellPrice:     item.SellPrice,
		LimitPrice:    item.LimitPrice,
		Quantity:      item.Quantity,
		LowStockLimit: item.LowStockLimit,
		LowOnStock:    item.LowOnStock(),
	}
}
