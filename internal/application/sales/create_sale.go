package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/pricing"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// CreateSaleUseCase records a sale: validates stock and pricing against
// row-locked catalog snapshots, computes totals, and atomically writes the
// sale, its line items, the stock decrements and the customer ledger entries.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	policy       pricing.WholeUnitPolicy
}

// NewCreateSaleUseCase builds the use case. The plain repositories are
// pool-backed and used for read paths only; all writes go through the TxRunner.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	policy pricing.WholeUnitPolicy,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		policy:       policy,
	}
}

// CreateSale runs the whole sale transaction. Any failure rolls back every
// write: stock levels, ledger entries and the sale itself.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) || in.PaidAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = entity.PaymentCash
	}

	now := time.Now()
	saleID := uuid.New().String()
	var resp *dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		custTxRepo repository.CustomerTransactionRepository,
		saleRepo repository.SaleRepository,
	) error {
		customer, err := customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		// Lock every referenced item in ascending id order so two sales
		// touching the same items cannot deadlock.
		items, err := lockItems(itemRepo, itemIDs(in.Items))
		if err != nil {
			return err
		}

		// Per line: quantize the quantity, validate the price against the
		// locked catalog snapshot, and deduct from the in-memory stock so
		// duplicate lines for the same item are checked cumulatively.
		var warnings []string
		saleItems := make([]*entity.SaleItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, line := range in.Items {
			item := items[line.ItemID]
			qty, warning, err := pricing.QuantizeQuantity(item, line.Quantity, uc.policy)
			if err != nil {
				return err
			}
			if warning != "" {
				warnings = append(warnings, warning)
			}
			if err := pricing.ValidatePrice(item, line.Price); err != nil {
				return err
			}
			if item.Quantity.LessThan(qty) {
				return domain.ErrInsufficientStock
			}
			item.Quantity = item.Quantity.Sub(qty)
			subtotal = subtotal.Add(qty.Mul(line.Price))
			saleItems = append(saleItems, &entity.SaleItem{
				ID:       uuid.New().String(),
				SaleID:   saleID,
				ItemID:   line.ItemID,
				Quantity: qty,
				Price:    line.Price,
			})
		}

		if in.Discount.GreaterThan(subtotal) {
			return domain.ErrInvalidAmount
		}
		totalAmount := subtotal.Sub(in.Discount)

		sale := &entity.Sale{
			ID:          saleID,
			CustomerID:  in.CustomerID,
			UserID:      userID,
			TotalAmount: totalAmount,
			Discount:    in.Discount,
			PaidAmount:  in.PaidAmount,
			PaymentType: paymentType,
			Notes:       in.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, si := range saleItems {
			if err := saleRepo.CreateItem(si); err != nil {
				return err
			}
		}

		// Stock: restate each locked item once and append one STOCK_OUT
		// audit row per line, referencing the sale.
		for _, si := range saleItems {
			if err := invTxRepo.Create(&entity.InventoryTransaction{
				ID:        uuid.New().String(),
				ItemID:    si.ItemID,
				Quantity:  si.Quantity,
				Type:      entity.TxTypeStockOut,
				Reference: saleID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		for _, item := range items {
			if err := itemRepo.UpdateQuantity(item.ID, item.Quantity); err != nil {
				return err
			}
		}

		// Ledger: a charge entry for the full total and, when money changed
		// hands, a payment entry. Balance = Σ amounts, so an under-paid sale
		// leaves paidAmount − totalAmount outstanding.
		if err := custTxRepo.Create(&entity.CustomerTransaction{
			ID:         uuid.New().String(),
			CustomerID: in.CustomerID,
			Amount:     totalAmount.Neg(),
			Reason:     fmt.Sprintf("Charge for sale %s", saleID),
			SaleID:     saleID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if in.PaidAmount.GreaterThan(decimal.Zero) {
			if err := custTxRepo.Create(&entity.CustomerTransaction{
				ID:         uuid.New().String(),
				CustomerID: in.CustomerID,
				Amount:     in.PaidAmount,
				Reason:     fmt.Sprintf("Payment for sale %s", saleID),
				SaleID:     saleID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		}

		resp = toSaleResponse(sale, customer.Name, saleItems, itemNames(items), warnings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSale returns a sale with its lines and resolved item names.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	saleItems, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(saleItems))
	for _, si := range saleItems {
		if _, ok := names[si.ItemID]; ok {
			continue
		}
		if item, _ := uc.itemRepo.GetByID(si.ItemID); item != nil {
			names[si.ItemID] = item.Name
		}
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(sale.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toSaleResponse(sale, customerName, saleItems, names, nil), nil
}

// ListSales returns recent sales without their line items.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s, "", nil, nil, nil))
	}
	return out, nil
}

// itemIDs returns the unique item ids of the request lines.
func itemIDs(lines []dto.SaleItemRequest) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	return ids
}

// lockItems loads and row-locks the given items in ascending id order.
func lockItems(itemRepo repository.ItemRepository, ids []string) (map[string]*entity.Item, error) {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	items := make(map[string]*entity.Item, len(sorted))
	for _, id := range sorted {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		items[id] = item
	}
	return items, nil
}

func itemNames(items map[string]*entity.Item) map[string]string {
	names := make(map[string]string, len(items))
	for id, item := range items {
		names[id] = item.Name
	}
	return names
}

func toSaleResponse(sale *entity.Sale, customerName string, items []*entity.SaleItem, names map[string]string, warnings []string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:           sale.ID,
		CustomerID:   sale.CustomerID,
		CustomerName: customerName,
		UserID:       sale.UserID,
		TotalAmount:  sale.TotalAmount,
		Discount:     sale.Discount,
		PaidAmount:   sale.PaidAmount,
		Outstanding:  sale.Outstanding(),
		PaymentType:  sale.PaymentType,
		Notes:        sale.Notes,
		CreatedAt:    sale.CreatedAt.Format(time.RFC3339),
		Items:        make([]dto.SaleItemResponse, 0, len(items)),
		Warnings:     warnings,
	}
	for _, si := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:       si.ID,
			ItemID:   si.ItemID,
			ItemName: names[si.ItemID],
			Quantity: si.Quantity,
			Price:    si.Price,
			Subtotal: si.Subtotal(),
		})
	}
	return resp
}
