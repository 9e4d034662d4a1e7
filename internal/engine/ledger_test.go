package engine

import (
	"testing"

	"fiscus/internal/models"
)

func TestTotalForCategory(t *testing.T) {
	expenses := []models.Expense{
		{Base: models.Base{ID: 1}, Category: models.CategoryHR, Amount: d("100.50")},
		{Base: models.Base{ID: 2}, Category: models.CategoryMarketing, Amount: d("200")},
		{Base: models.Base{ID: 3}, Category: models.CategoryHR, Amount: d("49.50")},
	}

	if got := TotalForCategory(expenses, models.CategoryHR); !got.Equal(d("150")) {
		t.Errorf("expected 150, got %s", got)
	}
	if got := TotalForCategory(expenses, models.CategoryTravel); !got.IsZero() {
		t.Errorf("expected zero for unused category, got %s", got)
	}
}

func TestTotalForCategoryExcluding(t *testing.T) {
	expenses := []models.Expense{
		{Base: models.Base{ID: 1}, Category: models.CategoryHR, Amount: d("4600")},
		{Base: models.Base{ID: 2}, Category: models.CategoryHR, Amount: d("300")},
	}

	if got := TotalForCategoryExcluding(expenses, models.CategoryHR, 1); !got.Equal(d("300")) {
		t.Errorf("expected 300 with expense 1 excluded, got %s", got)
	}
	if got := TotalForCategoryExcluding(expenses, models.CategoryHR, 99); !got.Equal(d("4900")) {
		t.Errorf("expected full total when the excluded id is absent, got %s", got)
	}
}

func TestTotalForBudget(t *testing.T) {
	expenses := []models.Expense{
		{Category: models.CategoryHR, Amount: d("0.1")},
		{Category: models.CategoryMarketing, Amount: d("0.2")},
	}

	if got := TotalForBudget(expenses); !got.Equal(d("0.3")) {
		t.Errorf("expected exact 0.3, got %s", got)
	}
	if got := TotalForBudget(nil); !got.IsZero() {
		t.Errorf("expected zero for empty ledger, got %s", got)
	}
}
