package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fiscus/internal/engine"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.Role) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(managerID uint, year int, totalAmount decimal.Decimal, allocations map[models.CategoryType]decimal.Decimal) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
	UpdateBudget(budgetID uint, totalAmount *decimal.Decimal, allocations map[models.CategoryType]decimal.Decimal) (*models.Budget, error)
	DeleteBudget(budgetID uint) error
	GetBudgetExpenses(budgetID uint) ([]models.Expense, error)
	PercentageUsed(budgetID uint) (decimal.Decimal, error)
	RemainingBudget(budgetID uint) (decimal.Decimal, error)
}

// ExpenseDraft carries the caller-provided fields of a new or amended
// expense. The budget it lands in is derived from Date's calendar year,
// never chosen by the caller.
type ExpenseDraft struct {
	Amount      decimal.Decimal
	Date        time.Time
	Category    models.CategoryType
	Description string
}

// ExpenseResult pairs a persisted expense with the advisory warnings its
// mutation raised. Warnings never indicate failure.
type ExpenseResult struct {
	Expense  *models.Expense  `json:"expense"`
	Warnings []engine.Warning `json:"warnings"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	RecordExpense(draft ExpenseDraft) (*ExpenseResult, error)
	AmendExpense(expenseID uint, draft ExpenseDraft) (*ExpenseResult, error)
	GetExpenses(page pagination.PageRequest, category *models.CategoryType) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(expenseID uint) (*models.Expense, error)
	DeleteExpense(expenseID uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
