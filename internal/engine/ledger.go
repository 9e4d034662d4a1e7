// Package engine implements the budget consumption rules: ledger sums over
// a loaded budget aggregate, allocation validation, and the ordered
// threshold checks that decide whether an expense mutation passes, warns,
// or is rejected. The package is pure; persistence is the caller's job.
package engine

import (
	"github.com/shopspring/decimal"

	"fiscus/internal/models"
	"fiscus/internal/money"
)

// TotalForCategory sums the amounts of all expenses in the ledger posted
// against the given category.
func TotalForCategory(expenses []models.Expense, category models.CategoryType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == category {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalForCategoryExcluding is TotalForCategory with one expense left out,
// used when re-validating an edit so the expense's old amount does not
// count against its own new amount.
func TotalForCategoryExcluding(expenses []models.Expense, category models.CategoryType, excludeID uint) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Category == category && e.ID != excludeID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalForBudget sums the amounts of every expense in the ledger.
func TotalForBudget(expenses []models.Expense) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return money.Sum(amounts...)
}
