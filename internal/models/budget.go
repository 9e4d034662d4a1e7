package models

import "github.com/shopspring/decimal"

// Budget is the yearly spending plan: a total ceiling plus one planned
// allocation per category. At most one budget exists per fiscal year.
// The budget is always loaded and mutated as one aggregate together with
// its allocations and expenses.
type Budget struct {
	Base
	// Uniqueness applies to live rows only: deleting a budget frees its
	// year for a new plan.
	Year        int             `gorm:"uniqueIndex:idx_budgets_year,where:deleted_at IS NULL;not null" json:"year"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	ManagerID   *uint           `json:"manager_id,omitempty"`

	// Relationships
	Allocations []Allocation `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"allocations"`
	Expenses    []Expense    `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}

// Allocation is the portion of a budget's total earmarked for one category.
// Each budget holds at most one allocation row per category. Allocation rows
// are replaced wholesale on update, so they carry no soft-delete column.
type Allocation struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	BudgetID uint            `gorm:"not null;uniqueIndex:idx_budget_category" json:"budget_id"`
	Category CategoryType    `gorm:"not null;uniqueIndex:idx_budget_category" json:"category"`
	Amount   decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
}

// PlannedFor returns the planned amount for a category and whether the
// category is part of the plan at all.
func (b *Budget) PlannedFor(category CategoryType) (decimal.Decimal, bool) {
	for _, a := range b.Allocations {
		if a.Category == category {
			return a.Amount, true
		}
	}
	return decimal.Zero, false
}

// PlannedAmounts returns the allocation map keyed by category.
func (b *Budget) PlannedAmounts() map[CategoryType]decimal.Decimal {
	planned := make(map[CategoryType]decimal.Decimal, len(b.Allocations))
	for _, a := range b.Allocations {
		planned[a.Category] = a.Amount
	}
	return planned
}
