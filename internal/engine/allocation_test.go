package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"fiscus/internal/models"
)

func TestValidateAllocations(t *testing.T) {
	t.Run("exact_sum_passes", func(t *testing.T) {
		err := ValidateAllocations(d("10000"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR:        d("5000"),
			models.CategoryMarketing: d("5000"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("under_allocated_rejected", func(t *testing.T) {
		err := ValidateAllocations(d("10000"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR: d("9000"),
		})
		assertCode(t, err, "ALLOCATION_MISMATCH")
	})

	t.Run("over_allocated_rejected", func(t *testing.T) {
		err := ValidateAllocations(d("10000"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR:        d("6000"),
			models.CategoryMarketing: d("5000"),
		})
		assertCode(t, err, "ALLOCATION_MISMATCH")
	})

	t.Run("no_slack_from_rounding", func(t *testing.T) {
		// 0.1 + 0.2 allocated against 0.3 must be exact equality.
		err := ValidateAllocations(d("0.3"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR:        d("0.1"),
			models.CategoryMarketing: d("0.2"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown_category_rejected", func(t *testing.T) {
		err := ValidateAllocations(d("100"), map[models.CategoryType]decimal.Decimal{
			models.CategoryType("SNACKS"): d("100"),
		})
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount_rejected", func(t *testing.T) {
		err := ValidateAllocations(d("100"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR:        d("200"),
			models.CategoryMarketing: d("-100"),
		})
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("empty_allocations_rejected", func(t *testing.T) {
		err := ValidateAllocations(d("100"), nil)
		assertCode(t, err, "INVALID_INPUT")
	})

	t.Run("zero_amounts_allowed", func(t *testing.T) {
		err := ValidateAllocations(d("100"), map[models.CategoryType]decimal.Decimal{
			models.CategoryHR:     d("100"),
			models.CategoryTravel: d("0"),
		})
		if err != nil {
			t.Fatalf("a zero allocation is non-negative and must pass, got %v", err)
		}
	})
}

func TestCheckAllocationShrink(t *testing.T) {
	t.Run("below_spend_rejected", func(t *testing.T) {
		err := CheckAllocationShrink(models.CategoryHR, d("4000"), d("4600"))
		assertCode(t, err, "ALLOCATION_SHRINK_REJECTED")
	})

	t.Run("equal_to_spend_allowed", func(t *testing.T) {
		if err := CheckAllocationShrink(models.CategoryHR, d("4600"), d("4600")); err != nil {
			t.Fatalf("shrinking down to exactly the committed spend must pass, got %v", err)
		}
	})

	t.Run("growth_allowed", func(t *testing.T) {
		if err := CheckAllocationShrink(models.CategoryHR, d("6000"), d("4600")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
