package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/pricing"
	"github.com/dukapos/pos-api/internal/domain/repository"
)

// UpdateSaleUseCase edits or cancels an existing sale, reversing and
// reapplying its ledger effects. The sale row is locked for the whole
// transaction so competing writers of the same sale serialize; stock is
// validated against post-restoration availability.
type UpdateSaleUseCase struct {
	txRunner TxRunner
	policy   pricing.WholeUnitPolicy
}

// NewUpdateSaleUseCase builds the use case.
func NewUpdateSaleUseCase(txRunner TxRunner, policy pricing.WholeUnitPolicy) *UpdateSaleUseCase {
	return &UpdateSaleUseCase{txRunner: txRunner, policy: policy}
}

// UpdateSale applies a partial update. Omitted fields keep their old values;
// a non-nil Items replaces the whole line-item set. All ledger corrections
// are appended as new compensating entries, never edits.
func (uc *UpdateSaleUseCase) UpdateSale(ctx context.Context, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.Discount != nil && in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.PaidAmount != nil && in.PaidAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.Items != nil && len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		custTxRepo repository.CustomerTransactionRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		oldLines, err := saleRepo.GetItemsBySaleID(saleID)
		if err != nil {
			return err
		}

		newCustomerID := sale.CustomerID
		if in.CustomerID != nil && *in.CustomerID != "" {
			newCustomerID = *in.CustomerID
		}
		customer, err := customerRepo.GetByID(newCustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		// Per-item quantity totals before and after the update.
		oldQty := make(map[string]decimal.Decimal, len(oldLines))
		for _, l := range oldLines {
			oldQty[l.ItemID] = oldQty[l.ItemID].Add(l.Quantity)
		}

		itemsChanged := in.Items != nil
		var newLines []*entity.SaleItem
		var warnings []string
		if itemsChanged {
			newLines = make([]*entity.SaleItem, 0, len(in.Items))
			for _, line := range in.Items {
				if line.ItemID == "" {
					return domain.ErrInvalidInput
				}
				newLines = append(newLines, &entity.SaleItem{
					ID:       uuid.New().String(),
					SaleID:   saleID,
					ItemID:   line.ItemID,
					Quantity: line.Quantity,
					Price:    line.Price,
				})
			}
		} else {
			newLines = oldLines
		}

		// Lock the union of old and new items in ascending id order, then
		// validate the new set against post-restoration availability.
		ids := make([]string, 0, len(oldQty)+len(newLines))
		seen := make(map[string]bool, len(oldQty)+len(newLines))
		for id := range oldQty {
			seen[id] = true
			ids = append(ids, id)
		}
		for _, l := range newLines {
			if !seen[l.ItemID] {
				seen[l.ItemID] = true
				ids = append(ids, l.ItemID)
			}
		}
		items, err := lockItems(itemRepo, ids)
		if err != nil {
			return err
		}

		newQty := make(map[string]decimal.Decimal, len(newLines))
		subtotal := decimal.Zero
		for _, l := range newLines {
			item := items[l.ItemID]
			if itemsChanged {
				qty, warning, err := pricing.QuantizeQuantity(item, l.Quantity, uc.policy)
				if err != nil {
					return err
				}
				if warning != "" {
					warnings = append(warnings, warning)
				}
				l.Quantity = qty
				if err := pricing.ValidatePrice(item, l.Price); err != nil {
					return err
				}
			}
			newQty[l.ItemID] = newQty[l.ItemID].Add(l.Quantity)
			subtotal = subtotal.Add(l.Subtotal())
		}

		for id, item := range items {
			available := item.Quantity.Add(oldQty[id])
			if newQty[id].GreaterThan(available) {
				return domain.ErrInsufficientStock
			}
			item.Quantity = available.Sub(newQty[id])
		}

		discount := sale.Discount
		if in.Discount != nil {
			discount = *in.Discount
		}
		paid := sale.PaidAmount
		if in.PaidAmount != nil {
			paid = *in.PaidAmount
		}
		if discount.GreaterThan(subtotal) {
			return domain.ErrInvalidAmount
		}
		totalAmount := subtotal.Sub(discount)

		// Inventory ledger: one delta row per item, then restate the stock.
		for _, id := range ids {
			delta := newQty[id].Sub(oldQty[id])
			if delta.IsZero() {
				continue
			}
			invTx := &entity.InventoryTransaction{
				ID:        uuid.New().String(),
				ItemID:    id,
				Reference: saleID,
				CreatedAt: now,
			}
			if delta.GreaterThan(decimal.Zero) {
				invTx.Type = entity.TxTypeStockOut
				invTx.Quantity = delta
			} else {
				invTx.Type = entity.TxTypeStockIn
				invTx.Quantity = delta.Neg()
			}
			if err := invTxRepo.Create(invTx); err != nil {
				return err
			}
		}
		for _, item := range items {
			if err := itemRepo.UpdateQuantity(item.ID, item.Quantity); err != nil {
				return err
			}
		}

		if itemsChanged {
			if err := saleRepo.DeleteItemsBySaleID(saleID); err != nil {
				return err
			}
			for _, l := range newLines {
				if err := saleRepo.CreateItem(l); err != nil {
					return err
				}
			}
		}

		// Customer ledger: append compensating entries for the net change.
		oldNet := sale.PaidAmount.Sub(sale.TotalAmount)
		newNet := paid.Sub(totalAmount)
		if newCustomerID != sale.CustomerID {
			if err := appendLedgerEntry(custTxRepo, sale.CustomerID, oldNet.Neg(),
				fmt.Sprintf("Reversal of sale %s (customer change)", saleID), saleID, now); err != nil {
				return err
			}
			if err := appendLedgerEntry(custTxRepo, newCustomerID, newNet,
				fmt.Sprintf("Charge for sale %s (customer change)", saleID), saleID, now); err != nil {
				return err
			}
		} else if diff := newNet.Sub(oldNet); !diff.IsZero() {
			if err := appendLedgerEntry(custTxRepo, sale.CustomerID, diff,
				fmt.Sprintf("Adjustment for sale %s", saleID), saleID, now); err != nil {
				return err
			}
		}

		sale.CustomerID = newCustomerID
		sale.TotalAmount = totalAmount
		sale.Discount = discount
		sale.PaidAmount = paid
		if in.PaymentType != nil && *in.PaymentType != "" {
			sale.PaymentType = *in.PaymentType
		}
		if in.Notes != nil {
			sale.Notes = *in.Notes
		}
		sale.UpdatedAt = now
		if err := saleRepo.Update(sale); err != nil {
			return err
		}

		resp = toSaleResponse(sale, customer.Name, newLines, itemNames(items), warnings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteSale cancels a sale: restores all deducted stock and appends one
// reversal ledger entry so the derived balance matches a world where the sale
// never happened, while both audit trails keep showing that it did.
func (uc *UpdateSaleUseCase) DeleteSale(ctx context.Context, saleID string) error {
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		invTxRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		custTxRepo repository.CustomerTransactionRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		lines, err := saleRepo.GetItemsBySaleID(saleID)
		if err != nil {
			return err
		}

		restore := make(map[string]decimal.Decimal, len(lines))
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			if _, ok := restore[l.ItemID]; !ok {
				ids = append(ids, l.ItemID)
			}
			restore[l.ItemID] = restore[l.ItemID].Add(l.Quantity)
		}
		items, err := lockItems(itemRepo, ids)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, l := range lines {
			if err := invTxRepo.Create(&entity.InventoryTransaction{
				ID:        uuid.New().String(),
				ItemID:    l.ItemID,
				Quantity:  l.Quantity,
				Type:      entity.TxTypeStockIn,
				Reference: saleID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		for id, item := range items {
			item.Quantity = item.Quantity.Add(restore[id])
			if err := itemRepo.UpdateQuantity(id, item.Quantity); err != nil {
				return err
			}
		}

		// Net ledger effect of the sale was paid − total; compensate with the
		// opposite amount.
		if reversal := sale.TotalAmount.Sub(sale.PaidAmount); !reversal.IsZero() {
			if err := appendLedgerEntry(custTxRepo, sale.CustomerID, reversal,
				fmt.Sprintf("Reversal of sale %s", saleID), saleID, now); err != nil {
				return err
			}
		}

		return saleRepo.Delete(saleID)
	})
}

func appendLedgerEntry(custTxRepo repository.CustomerTransactionRepository, customerID string, amount decimal.Decimal, reason, saleID string, now time.Time) error {
	if amount.IsZero() {
		return nil
	}
	return custTxRepo.Create(&entity.CustomerTransaction{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Amount:     amount,
		Reason:     reason,
		SaleID:     saleID,
		CreatedAt:  now,
	})
}
