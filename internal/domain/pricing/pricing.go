package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dukapos/pos-api/internal/domain"
	"github.com/dukapos/pos-api/internal/domain/entity"
)

// WholeUnitPolicy decides what happens when a fractional quantity is requested
// for an item sold in whole units ("pcs").
type WholeUnitPolicy string

const (
	// PolicyReject fails the sale with ErrInvalidInput.
	PolicyReject WholeUnitPolicy = "reject"
	// PolicyRoundDown truncates the quantity and reports a warning.
	PolicyRoundDown WholeUnitPolicy = "round_down"
)

// ValidatePrice checks a proposed per-unit price against the item's floor
// price. Pure: no side effects. Must run against the item snapshot read inside
// the same transaction as the sale write, not a stale cached read.
func ValidatePrice(item *entity.Item, proposedPrice decimal.Decimal) error {
	if proposedPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if item.LimitPrice.GreaterThan(decimal.Zero) && proposedPrice.LessThan(item.LimitPrice) {
		return domain.ErrPriceBelowFloor
	}
	return nil
}

// QuantizeQuantity normalizes a requested quantity for the item's unit of
// measure. Whole-unit items ("pcs") must carry integer quantities: depending on
// policy the quantity is either rejected or truncated with a warning.
// Continuous units (kg, litres, ...) are truncated to two decimal places.
// The returned quantity is always > 0 on success.
func QuantizeQuantity(item *entity.Item, qty decimal.Decimal, policy WholeUnitPolicy) (decimal.Decimal, string, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return decimal.Zero, "", domain.ErrInvalidInput
	}
	if item.WholeUnit() {
		truncated := qty.Truncate(0)
		if truncated.Equal(qty) {
			return qty, "", nil
		}
		if policy == PolicyRoundDown {
			if !truncated.GreaterThan(decimal.Zero) {
				return decimal.Zero, "", domain.ErrInvalidInput
			}
			warning := fmt.Sprintf("quantity %s for %s rounded down to %s (sold in whole units)",
				qty.String(), item.Name, truncated.String())
			return truncated, warning, nil
		}
		return decimal.Zero, "", domain.ErrInvalidInput
	}
	return qty.Truncate(2), "", nil
}
