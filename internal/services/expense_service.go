package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fiscus/internal/engine"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// RecordExpense posts a new expense against the budget of its date's year.
// The hard checks (category planned, category ceiling) gate persistence;
// the 90% warnings are evaluated on the post-mutation ledger and returned
// with the saved expense. The whole operation is one transaction with the
// budget row locked, so two concurrent submissions to the same category
// cannot both slip past the ceiling on stale totals.
func (s *expenseService) RecordExpense(draft ExpenseDraft) (*ExpenseResult, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var result *ExpenseResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := lockBudgetForYear(tx, draft.Date.Year())
		if err != nil {
			return err
		}

		newCategoryTotal := engine.TotalForCategory(budget.Expenses, draft.Category).Add(draft.Amount)
		if err := engine.GateExpense(budget, draft.Category, newCategoryTotal, true); err != nil {
			return err
		}

		expense := &models.Expense{
			BudgetID:    budget.ID,
			Amount:      draft.Amount,
			Date:        draft.Date,
			Category:    draft.Category,
			Description: draft.Description,
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		budget.Expenses = append(budget.Expenses, *expense)
		result = &ExpenseResult{
			Expense:  expense,
			Warnings: engine.WarningsAfterCommit(budget, draft.Category, newCategoryTotal),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AmendExpense re-validates an edited expense against the budget of its
// new date, which may belong to a different year than before. The ceiling
// check only runs when the amount grew: a pure reduction can never
// overspend and is always accepted. Warnings are re-evaluated either way.
func (s *expenseService) AmendExpense(expenseID uint, draft ExpenseDraft) (*ExpenseResult, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var result *ExpenseResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		expense, err := findExpense(tx, expenseID)
		if err != nil {
			return err
		}
		oldAmount := expense.Amount

		budget, err := lockBudgetForYear(tx, draft.Date.Year())
		if err != nil {
			return err
		}

		// The expense's own old amount must not count against its new one.
		newCategoryTotal := engine.TotalForCategoryExcluding(budget.Expenses, draft.Category, expense.ID).
			Add(draft.Amount)
		enforceCeiling := draft.Amount.GreaterThan(oldAmount)
		if err := engine.GateExpense(budget, draft.Category, newCategoryTotal, enforceCeiling); err != nil {
			return err
		}

		expense.BudgetID = budget.ID
		expense.Amount = draft.Amount
		expense.Date = draft.Date
		expense.Category = draft.Category
		expense.Description = draft.Description
		if err := tx.Save(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		applyToLedger(budget, *expense)
		result = &ExpenseResult{
			Expense:  expense,
			Warnings: engine.WarningsAfterCommit(budget, draft.Category, newCategoryTotal),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyToLedger reflects a saved mutation in the in-memory aggregate so the
// warning checks see the ledger as it stands after the commit.
func applyToLedger(budget *models.Budget, expense models.Expense) {
	for i := range budget.Expenses {
		if budget.Expenses[i].ID == expense.ID {
			budget.Expenses[i] = expense
			return
		}
	}
	// The expense moved in from another year's budget.
	budget.Expenses = append(budget.Expenses, expense)
}

// GetExpenses returns a paginated list of expenses, optionally filtered by
// category.
func (s *expenseService) GetExpenses(page pagination.PageRequest, category *models.CategoryType) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves a single expense.
func (s *expenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	return findExpense(s.db, expenseID)
}

// DeleteExpense removes an expense. No business rule cascades from this:
// freed budget simply becomes available again.
func (s *expenseService) DeleteExpense(expenseID uint) error {
	expense, err := findExpense(s.db, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func findExpense(tx *gorm.DB, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := tx.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrExpenseNotFound,
				fmt.Sprintf("expense not found with id %d", expenseID))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

func validateDraft(draft ExpenseDraft) error {
	if !draft.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if draft.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if !draft.Category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown category: %s", draft.Category))
	}
	return nil
}

// lockBudgetForYear resolves the budget owning the given calendar year and
// locks its row for the rest of the transaction. The aggregate is loaded
// after the lock is held so the ceiling checks never see stale totals.
func lockBudgetForYear(tx *gorm.DB, year int) (*models.Budget, error) {
	var budget models.Budget
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("year = ?", year).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNoBudgetForYear,
				fmt.Sprintf("no budget found for the year: %d", year))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := tx.Preload("Allocations").Preload("Expenses").First(&budget, budget.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}
