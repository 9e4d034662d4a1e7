package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/money"
)

// Warning codes attached to successful expense mutations.
const (
	WarnCategoryThreshold = "CATEGORY_THRESHOLD_WARNING"
	WarnBudgetThreshold   = "BUDGET_THRESHOLD_WARNING"
)

// Warning is a non-fatal advisory raised after a mutation is committed.
// Warnings never roll back the mutation they annotate.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GateExpense applies the hard checks for a prospective expense mutation,
// in fixed order:
//
//  1. the category must be part of the budget's plan;
//  2. the category total after the mutation must not exceed the planned
//     allocation (exact equality is allowed).
//
// newCategoryTotal is the category total as it will stand once the mutation
// is applied. For an edit that reduces the amount the caller passes
// enforceCeiling=false: a pure reduction can never breach the ceiling and
// is always permitted. The category check still applies.
//
// Only these two checks can prevent persistence; the 90% thresholds are
// advisory and evaluated separately after commit.
func GateExpense(b *models.Budget, category models.CategoryType, newCategoryTotal decimal.Decimal, enforceCeiling bool) error {
	planned, ok := b.PlannedFor(category)
	if !ok {
		return apperrors.WithMessage(apperrors.ErrCategoryNotPlanned,
			fmt.Sprintf("no planned budget found for the category: %s", category))
	}

	if enforceCeiling && newCategoryTotal.GreaterThan(planned) {
		return apperrors.WithMessage(apperrors.ErrCategoryBudgetExceeded,
			fmt.Sprintf("this expense would exceed the budget for the category %s", category))
	}
	return nil
}

// WarningsAfterCommit evaluates the advisory thresholds on the
// post-mutation ledger: first the per-category 90% line, then the 90% line
// of the whole budget. b.Expenses must already reflect the mutation.
// Strict inequality: landing exactly on the line does not warn.
func WarningsAfterCommit(b *models.Budget, category models.CategoryType, newCategoryTotal decimal.Decimal) []Warning {
	var warnings []Warning

	if planned, ok := b.PlannedFor(category); ok {
		if newCategoryTotal.GreaterThan(money.WarnLine(planned)) {
			warnings = append(warnings, Warning{
				Code:    WarnCategoryThreshold,
				Message: fmt.Sprintf("you exceeded 90%% of the budget for category %s", category),
			})
		}
	}

	totalActual := TotalForBudget(b.Expenses)
	if totalActual.GreaterThan(money.WarnLine(b.TotalAmount)) {
		warnings = append(warnings, Warning{
			Code:    WarnBudgetThreshold,
			Message: fmt.Sprintf("you exceeded 90%% of the total budget for the year %d", b.Year),
		})
	}

	return warnings
}
