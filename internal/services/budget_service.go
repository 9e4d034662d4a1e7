package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fiscus/internal/engine"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/money"
	"fiscus/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates the budget for a fiscal year. At most one budget may
// exist per year, and the category allocations must sum to exactly the
// total amount. No threshold checks apply here: a fresh budget has no
// expenses yet.
func (s *budgetService) CreateBudget(
	managerID uint,
	year int,
	totalAmount decimal.Decimal,
	allocations map[models.CategoryType]decimal.Decimal,
) (*models.Budget, error) {
	if year <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be a positive calendar year")
	}
	if !totalAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	if err := engine.ValidateAllocations(totalAmount, allocations); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Year:        year,
		TotalAmount: totalAmount,
		Allocations: allocationRows(allocations),
	}
	if managerID != 0 {
		budget.ManagerID = &managerID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Budget{}).Where("year = ?", year).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.WithMessage(apperrors.ErrBudgetAlreadyExists,
				fmt.Sprintf("a budget for the year %d already exists", year))
		}

		// The duplicate check above races with concurrent creates for the
		// same year; the unique index is the authority, so translate its
		// violation instead of surfacing a storage error.
		if err := tx.Create(budget).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.WithMessage(apperrors.ErrBudgetAlreadyExists,
					fmt.Sprintf("a budget for the year %d already exists", year))
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// allocationRows converts an allocation map into rows in a stable order.
func allocationRows(allocations map[models.CategoryType]decimal.Decimal) []models.Allocation {
	categories := make([]models.CategoryType, 0, len(allocations))
	for category := range allocations {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	rows := make([]models.Allocation, len(categories))
	for i, category := range categories {
		rows[i] = models.Allocation{Category: category, Amount: allocations[category]}
	}
	return rows
}

// GetBudgets returns a paginated list of budgets with their allocations.
func (s *budgetService) GetBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Allocations").Scopes(pagination.Paginate(page)).
		Order("year DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID loads the full budget aggregate: allocations and expenses.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	return loadBudget(s.db, budgetID)
}

func loadBudget(tx *gorm.DB, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	err := tx.Preload("Allocations").Preload("Expenses").First(&budget, budgetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrBudgetNotFound,
				fmt.Sprintf("budget not found with id %d", budgetID))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget replaces a budget's allocations and optionally its total
// amount. A category's allocation can never be reduced below the money
// already spent in it; dropping a category with committed spend counts as
// such a reduction. The strict sum-equals-total rule applies only at
// creation time, so a budget may become partially allocated here.
func (s *budgetService) UpdateBudget(
	budgetID uint,
	totalAmount *decimal.Decimal,
	allocations map[models.CategoryType]decimal.Decimal,
) (*models.Budget, error) {
	if totalAmount != nil && !totalAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	for category, amount := range allocations {
		if !category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("unknown category: %s", category))
		}
		if amount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("allocation for category %s must not be negative", category))
		}
	}

	var result *models.Budget
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockBudgetRow(tx, budgetID); err != nil {
			return err
		}
		budget, err := loadBudget(tx, budgetID)
		if err != nil {
			return err
		}

		if allocations != nil {
			// Shrink protection per category being changed or dropped.
			for _, old := range budget.Allocations {
				spent := engine.TotalForCategory(budget.Expenses, old.Category)
				newAmount, kept := allocations[old.Category]
				if !kept {
					newAmount = decimal.Zero
				}
				if err := engine.CheckAllocationShrink(old.Category, newAmount, spent); err != nil {
					return err
				}
			}

			if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Allocation{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			rows := allocationRows(allocations)
			for i := range rows {
				rows[i].BudgetID = budget.ID
			}
			if len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
			budget.Allocations = rows
		}

		if totalAmount != nil {
			budget.TotalAmount = *totalAmount
			if err := tx.Model(&models.Budget{}).Where("id = ?", budget.ID).
				Update("total_amount", *totalAmount).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		result = budget
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBudget removes a budget together with its allocations and expenses.
func (s *budgetService) DeleteBudget(budgetID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		budget, err := loadBudget(tx, budgetID)
		if err != nil {
			return err
		}

		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Expense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&models.Allocation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetBudgetExpenses lists a budget's expenses in display order.
func (s *budgetService) GetBudgetExpenses(budgetID uint) ([]models.Expense, error) {
	if _, err := s.GetBudgetByID(budgetID); err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.db.Where("budget_id = ?", budgetID).
		Order("date ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// PercentageUsed returns consumed spend as a percentage of the total
// amount, rounded half-up to two decimal places.
func (s *budgetService) PercentageUsed(budgetID uint) (decimal.Decimal, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return decimal.Zero, err
	}
	if budget.TotalAmount.IsZero() {
		return decimal.Zero, apperrors.ErrZeroBudgetTotal
	}
	return money.Percentage(engine.TotalForBudget(budget.Expenses), budget.TotalAmount), nil
}

// RemainingBudget returns the total amount minus all recorded expenses.
func (s *budgetService) RemainingBudget(budgetID uint) (decimal.Decimal, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return decimal.Zero, err
	}
	if budget.TotalAmount.IsZero() {
		return decimal.Zero, apperrors.ErrZeroBudgetTotal
	}
	return budget.TotalAmount.Sub(engine.TotalForBudget(budget.Expenses)), nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}

// lockBudgetRow takes a row lock on the budget so concurrent mutations of
// the same aggregate serialize at the persistence boundary.
func lockBudgetRow(tx *gorm.DB, budgetID uint) error {
	var budget models.Budget
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&budget, budgetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.WithMessage(apperrors.ErrBudgetNotFound,
				fmt.Sprintf("budget not found with id %d", budgetID))
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
