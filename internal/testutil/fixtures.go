package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fiscus/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an employee user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUserWithRole(t, db, models.RoleEmployee)
}

// CreateTestManager creates a manager user.
func CreateTestManager(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUserWithRole(t, db, models.RoleManager)
}

func createUserWithRole(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for the given year with the given
// allocations. Amounts are decimal strings.
func CreateTestBudget(t *testing.T, db *gorm.DB, year int, totalAmount string, allocations map[models.CategoryType]string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Year:        year,
		TotalAmount: decimal.RequireFromString(totalAmount),
	}
	for category, amount := range allocations {
		budget.Allocations = append(budget.Allocations, models.Allocation{
			Category: category,
			Amount:   decimal.RequireFromString(amount),
		})
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an expense against the given budget. The amount
// is a decimal string.
func CreateTestExpense(t *testing.T, db *gorm.DB, budgetID uint, category models.CategoryType, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		BudgetID:    budgetID,
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		Category:    category,
		Description: fmt.Sprintf("test expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
