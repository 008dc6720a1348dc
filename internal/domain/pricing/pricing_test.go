package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
	"github.com/dukapos/pos-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testItem(unit string) *entity.Item {
	return &entity.Item{
		ID:         "item-1",
		Name:       "Sugar",
		Unit:       unit,
		BasePrice:  d("100"),
		SellPrice:  d("150"),
		LimitPrice: d("120"),
		Quantity:   d("10"),
	}
}

func TestValidatePrice_AtOrAboveFloor(t *testing.T) {
	item := testItem(entity.UnitPieces)

	assert.NoError(t, pricing.ValidatePrice(item, d("120")), "price exactly at the floor is allowed")
	assert.NoError(t, pricing.ValidatePrice(item, d("150")))
	assert.NoError(t, pricing.ValidatePrice(item, d("999.99")))
}

func TestValidatePrice_BelowFloorRejected(t *testing.T) {
	item := testItem(entity.UnitPieces)

	err := pricing.ValidatePrice(item, d("119.99"))
	assert.ErrorIs(t, err, domain.ErrPriceBelowFloor)

	err = pricing.ValidatePrice(item, d("0"))
	assert.ErrorIs(t, err, domain.ErrPriceBelowFloor)
}

func TestValidatePrice_NegativeRejected(t *testing.T) {
	item := testItem(entity.UnitPieces)
	assert.ErrorIs(t, pricing.ValidatePrice(item, d("-1")), domain.ErrInvalidAmount)
}

func TestValidatePrice_NoFloorConfigured(t *testing.T) {
	item := testItem(entity.UnitPieces)
	item.LimitPrice = decimal.Zero

	// With no floor, any non-negative price is accepted, even zero (giveaway).
	assert.NoError(t, pricing.ValidatePrice(item, d("0")))
	assert.NoError(t, pricing.ValidatePrice(item, d("1")))
}

func TestQuantizeQuantity_WholeUnitInteger(t *testing.T) {
	item := testItem(entity.UnitPieces)

	qty, warning, err := pricing.QuantizeQuantity(item, d("3"), pricing.PolicyReject)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("3")))
	assert.Empty(t, warning)
}

func TestQuantizeQuantity_WholeUnitFractionRejected(t *testing.T) {
	item := testItem(entity.UnitPieces)

	_, _, err := pricing.QuantizeQuantity(item, d("2.5"), pricing.PolicyReject)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuantizeQuantity_WholeUnitFractionRoundedDown(t *testing.T) {
	item := testItem(entity.UnitPieces)

	qty, warning, err := pricing.QuantizeQuantity(item, d("2.5"), pricing.PolicyRoundDown)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("2")))
	assert.NotEmpty(t, warning, "truncation must be reported to the caller")
}

func TestQuantizeQuantity_RoundDownToZeroRejected(t *testing.T) {
	item := testItem(entity.UnitPieces)

	// 0.5 pcs truncates to 0, which would be a no-op sale line.
	_, _, err := pricing.QuantizeQuantity(item, d("0.5"), pricing.PolicyRoundDown)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuantizeQuantity_ContinuousUnitTruncatedToTwoPlaces(t *testing.T) {
	item := testItem(entity.UnitKg)

	qty, warning, err := pricing.QuantizeQuantity(item, d("1.259"), pricing.PolicyReject)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("1.25")))
	assert.Empty(t, warning)

	qty, _, err = pricing.QuantizeQuantity(item, d("0.25"), pricing.PolicyReject)
	require.NoError(t, err)
	assert.True(t, qty.Equal(d("0.25")))
}

func TestQuantizeQuantity_ZeroOrNegativeRejected(t *testing.T) {
	item := testItem(entity.UnitKg)

	_, _, err := pricing.QuantizeQuantity(item, decimal.Zero, pricing.PolicyReject)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = pricing.QuantizeQuantity(item, d("-2"), pricing.PolicyReject)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
