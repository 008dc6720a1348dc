package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/pos-api/internal/application/dto"
	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/pricing"
)

// sellSoap records a baseline sale of 5 soap at 50 each, 100 paid: total 250,
// outstanding 150, balance −150.
func sellSoap(t *testing.T, f *fixture) *dto.SaleResponse {
	t.Helper()
	out, err := f.createUC.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("5"), Price: d("50")}},
		PaidAmount: d("100"),
	})
	require.NoError(t, err)
	return out
}

func newUpdateFixture(t *testing.T) *fixture {
	f := newFixture(pricing.PolicyReject)
	seedCustomer(f, "cust-1", "Amina")
	seedCustomer(f, "cust-2", "Brian")
	seedItem(f, "item-soap", "Soap", entity.UnitPieces, "20", "30", "50", "40")
	seedItem(f, "item-sugar", "Sugar", entity.UnitKg, "50", "100", "150", "120")
	return f
}

func TestUpdateSale_ReduceQuantityRestoresStock(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f) // stock 20 -> 15

	out, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("3"), Price: d("50")}},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(d("150")))
	assert.True(t, f.store.items["item-soap"].Quantity.Equal(d("17")), "two units restored")

	// Audit trail: 5 out then 2 back in nets to 3, matching 20 − 17.
	assert.True(t, f.store.stockOutMinusIn("item-soap").Equal(d("3")))

	// Ledger: old net −150, new net 100 − 150 = −50, so one +100 adjustment.
	assert.True(t, f.store.ledgerSum("cust-1").Equal(d("-50")))
	assert.Len(t, f.store.custTxs, 3, "corrections append, never edit")
}

func TestUpdateSale_IncreaseQuantityChecksAvailability(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f) // stock 15, sale holds 5

	// 15 free + 5 already in the sale = 20 available; 21 must fail.
	_, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("21"), Price: d("50")}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.store.items["item-soap"].Quantity.Equal(d("15")), "failed update changes nothing")

	// 20 is exactly the post-restoration availability.
	out, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("20"), Price: d("50")}},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(d("1000")))
	assert.True(t, f.store.items["item-soap"].Quantity.IsZero())
}

func TestUpdateSale_PaidAmountOnlyAdjustsLedger(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f) // balance −150

	paid := d("250")
	out, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		PaidAmount: &paid,
	})
	require.NoError(t, err)

	assert.True(t, out.Outstanding.IsZero())
	assert.True(t, f.store.ledgerSum("cust-1").IsZero(), "settling the sale settles the balance")
	// Items untouched: no new inventory transactions beyond the original.
	assert.Len(t, f.store.invTxs, 1)
}

func TestUpdateSale_SwitchItemSet(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f)

	out, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ItemID: "item-sugar", Quantity: d("2"), Price: d("150")}},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(d("300")))
	assert.True(t, f.store.items["item-soap"].Quantity.Equal(d("20")), "soap fully restored")
	assert.True(t, f.store.items["item-sugar"].Quantity.Equal(d("48")))
	assert.True(t, f.store.stockOutMinusIn("item-soap").IsZero())
	assert.True(t, f.store.stockOutMinusIn("item-sugar").Equal(d("2")))
	// Old net −150, new net 100 − 300 = −200, one −50 adjustment.
	assert.True(t, f.store.ledgerSum("cust-1").Equal(d("-200")))
}

func TestUpdateSale_CustomerChangeMovesLedgerEffect(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f) // cust-1 balance −150

	newCustomer := "cust-2"
	_, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		CustomerID: &newCustomer,
	})
	require.NoError(t, err)

	assert.True(t, f.store.ledgerSum("cust-1").IsZero(), "old customer reversed to zero")
	assert.True(t, f.store.ledgerSum("cust-2").Equal(d("-150")), "new customer carries the debt")
}

func TestUpdateSale_PriceBelowFloorRejected(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f)

	_, err := f.updateUC.UpdateSale(context.Background(), sale.ID, dto.UpdateSaleRequest{
		Items: []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("2"), Price: d("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrPriceBelowFloor)
	assert.True(t, f.store.items["item-soap"].Quantity.Equal(d("15")))
}

func TestUpdateSale_UnknownSale(t *testing.T) {
	f := newUpdateFixture(t)
	_, err := f.updateUC.UpdateSale(context.Background(), "ghost", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_RestoresStockAndReversesBalance(t *testing.T) {
	f := newUpdateFixture(t)
	sale := sellSoap(t, f) // stock 15, balance −150

	require.NoError(t, f.updateUC.DeleteSale(context.Background(), sale.ID))

	assert.True(t, f.store.items["item-soap"].Quantity.Equal(d("20")))
	assert.True(t, f.store.ledgerSum("cust-1").IsZero(), "balance as if the sale never happened")
	assert.Empty(t, f.store.sales)

	// Both audit trails keep showing the full history.
	assert.Len(t, f.store.invTxs, 2, "original STOCK_OUT plus the restoring STOCK_IN")
	assert.Len(t, f.store.custTxs, 3, "charge, payment and reversal entries all kept")
	assert.True(t, f.store.stockOutMinusIn("item-soap").IsZero())
}

func TestDeleteSale_FullyPaidLeavesNoReversalEntry(t *testing.T) {
	f := newUpdateFixture(t)
	out, err := f.createUC.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{ItemID: "item-soap", Quantity: d("2"), Price: d("50")}},
		PaidAmount: d("100"),
	})
	require.NoError(t, err)

	require.NoError(t, f.updateUC.DeleteSale(context.Background(), out.ID))

	// Net effect was zero, so no compensating entry is appended.
	assert.Len(t, f.store.custTxs, 2)
	assert.True(t, f.store.ledgerSum("cust-1").IsZero())
}

func TestDeleteSale_UnknownSale(t *testing.T) {
	f := newUpdateFixture(t)
	err := f.updateUC.DeleteSale(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
