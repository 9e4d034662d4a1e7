package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/money"
)

// ValidateAllocations checks that a proposed allocation set is internally
// consistent with the budget total: every category is a known one, every
// amount is non-negative, and the amounts sum to exactly the total. A
// budget must be fully and exactly allocated, no slack permitted.
func ValidateAllocations(total decimal.Decimal, allocations map[models.CategoryType]decimal.Decimal) error {
	if len(allocations) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one category allocation is required")
	}

	amounts := make([]decimal.Decimal, 0, len(allocations))
	for category, amount := range allocations {
		if !category.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("unknown category: %s", category))
		}
		if amount.IsNegative() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("allocation for category %s must not be negative", category))
		}
		amounts = append(amounts, amount)
	}

	if sum := money.Sum(amounts...); !sum.Equal(total) {
		return apperrors.WithMessage(apperrors.ErrAllocationMismatch,
			fmt.Sprintf("the sum of category allocations (%s) must equal the total budget amount (%s)",
				sum, total))
	}
	return nil
}

// CheckAllocationShrink rejects an allocation update that would push a
// category's planned amount below the money already spent in it. The check
// runs once per changed category and is independent of the 90% warnings.
func CheckAllocationShrink(category models.CategoryType, newAmount, spent decimal.Decimal) error {
	if newAmount.LessThan(spent) {
		return apperrors.WithMessage(apperrors.ErrAllocationShrink,
			fmt.Sprintf("cannot reduce the allocation for category %s to %s: %s is already spent",
				category, newAmount, spent))
	}
	return nil
}
