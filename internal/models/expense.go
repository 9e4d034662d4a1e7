package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single dated, categorized spend event. Expenses are never
// assigned to a budget directly; the calendar year of Date decides which
// budget they count against.
type Expense struct {
	Base
	BudgetID    uint            `gorm:"not null;index" json:"budget_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Category    CategoryType    `gorm:"not null;index" json:"category"`
	Description string          `json:"description"`
}
