package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected error code %q, got %q (message: %s)", code, appErr.Code, appErr.Message)
	}
}

// testBudget builds the aggregate from spec scenario A: total 10000 for
// 2024, HR and MARKETING at 5000 each.
func testBudget(expenses ...models.Expense) *models.Budget {
	return &models.Budget{
		Year:        2024,
		TotalAmount: d("10000"),
		Allocations: []models.Allocation{
			{Category: models.CategoryHR, Amount: d("5000")},
			{Category: models.CategoryMarketing, Amount: d("5000")},
		},
		Expenses: expenses,
	}
}

func TestGateExpense(t *testing.T) {
	t.Run("passes_within_allocation", func(t *testing.T) {
		b := testBudget()
		if err := GateExpense(b, models.CategoryHR, d("4600"), true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects_unplanned_category", func(t *testing.T) {
		b := testBudget()
		err := GateExpense(b, models.CategoryTravel, d("1"), true)
		assertCode(t, err, "CATEGORY_NOT_PLANNED")
	})

	t.Run("rejects_over_ceiling", func(t *testing.T) {
		b := testBudget()
		err := GateExpense(b, models.CategoryHR, d("5100"), true)
		assertCode(t, err, "CATEGORY_BUDGET_EXCEEDED")
	})

	t.Run("exact_ceiling_is_allowed", func(t *testing.T) {
		b := testBudget()
		if err := GateExpense(b, models.CategoryHR, d("5000"), true); err != nil {
			t.Fatalf("spending exactly the planned amount must pass, got %v", err)
		}
	})

	t.Run("category_check_wins_over_ceiling", func(t *testing.T) {
		// Both conditions true at once: the first failing check in the
		// fixed order decides the error.
		b := testBudget()
		err := GateExpense(b, models.CategoryIT, d("999999"), true)
		assertCode(t, err, "CATEGORY_NOT_PLANNED")
	})

	t.Run("reduction_skips_ceiling", func(t *testing.T) {
		// Even with the category total far past the ceiling, a mutation
		// flagged as a reduction is never rejected.
		b := testBudget()
		if err := GateExpense(b, models.CategoryHR, d("7000"), false); err != nil {
			t.Fatalf("reduction must never breach the ceiling, got %v", err)
		}
	})

	t.Run("reduction_still_requires_planned_category", func(t *testing.T) {
		b := testBudget()
		err := GateExpense(b, models.CategoryOperations, d("10"), false)
		assertCode(t, err, "CATEGORY_NOT_PLANNED")
	})
}

func TestWarningsAfterCommit(t *testing.T) {
	t.Run("none_below_line", func(t *testing.T) {
		b := testBudget(models.Expense{Category: models.CategoryHR, Amount: d("4500")})
		warnings := WarningsAfterCommit(b, models.CategoryHR, d("4500"))
		if len(warnings) != 0 {
			t.Fatalf("landing exactly on 90%% must not warn, got %v", warnings)
		}
	})

	t.Run("category_warning_above_line", func(t *testing.T) {
		// Spec scenario C: 4600 against a 5000 HR allocation.
		b := testBudget(models.Expense{Category: models.CategoryHR, Amount: d("4600")})
		warnings := WarningsAfterCommit(b, models.CategoryHR, d("4600"))
		if len(warnings) != 1 {
			t.Fatalf("expected 1 warning, got %v", warnings)
		}
		if warnings[0].Code != WarnCategoryThreshold {
			t.Errorf("expected %s, got %s", WarnCategoryThreshold, warnings[0].Code)
		}
	})

	t.Run("budget_warning", func(t *testing.T) {
		b := testBudget(
			models.Expense{Category: models.CategoryHR, Amount: d("4500")},
			models.Expense{Category: models.CategoryMarketing, Amount: d("4600")},
		)
		// The marketing mutation pushes the whole budget past 9000.
		warnings := WarningsAfterCommit(b, models.CategoryMarketing, d("4600"))
		codes := make([]string, len(warnings))
		for i, w := range warnings {
			codes[i] = w.Code
		}
		if len(warnings) != 2 || codes[0] != WarnCategoryThreshold || codes[1] != WarnBudgetThreshold {
			t.Fatalf("expected category then budget warning, got %v", codes)
		}
	})

	t.Run("budget_warning_names_the_year", func(t *testing.T) {
		b := testBudget(
			models.Expense{Category: models.CategoryHR, Amount: d("5000")},
			models.Expense{Category: models.CategoryMarketing, Amount: d("4500")},
		)
		warnings := WarningsAfterCommit(b, models.CategoryHR, d("5000"))
		found := false
		for _, w := range warnings {
			if w.Code == WarnBudgetThreshold {
				found = true
				if want := "2024"; !strings.Contains(w.Message, want) {
					t.Errorf("expected message to contain %q, got %q", want, w.Message)
				}
			}
		}
		if !found {
			t.Fatal("expected a budget threshold warning")
		}
	})
}
