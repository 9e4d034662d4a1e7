package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/pagination"
	"fiscus/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ExpenseRequest represents the request payload for recording or amending
// an expense. The target budget is derived from the expense date's year.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Category    string          `json:"category" binding:"required,category_type"`
	Description string          `json:"description" binding:"max=255"`
}

func (r *ExpenseRequest) toDraft() (services.ExpenseDraft, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return services.ExpenseDraft{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"date must be in YYYY-MM-DD format")
	}
	return services.ExpenseDraft{
		Amount:      r.Amount,
		Date:        date,
		Category:    models.CategoryType(r.Category),
		Description: r.Description,
	}, nil
}

// CreateExpense handles recording a new expense.
// @Summary     Record an expense
// @Description Record an expense against the budget of the expense date's year
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} services.ExpenseResult "Expense recorded, possibly with threshold warnings"
// @Failure     400 {object} ErrorResponse "Invalid input, unplanned category, or ceiling exceeded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No budget for the expense year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.RecordExpense(draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", result.Expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "category": req.Category, "date": req.Date})

	c.JSON(http.StatusCreated, result)
}

// GetExpenses handles listing expenses.
// @Summary     Get expenses
// @Description Get a paginated list of expenses, most recent first
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var category *models.CategoryType
	if v := c.Query("category"); v != "" {
		cat := models.CategoryType(v)
		if !cat.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"unknown category: "+v))
			return
		}
		category = &cat
	}

	result, err := h.expenseService.GetExpenses(page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles amending an existing expense.
// @Summary     Update expense
// @Description Amend an expense; the ceiling check applies only when the amount grows
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Expense ID"
// @Param       request body ExpenseRequest true "Updated expense details"
// @Success     200 {object} services.ExpenseResult "Expense amended, possibly with threshold warnings"
// @Failure     400 {object} ErrorResponse "Invalid input, unplanned category, or ceiling exceeded"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense or budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft, err := req.toDraft()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.AmendExpense(expenseID, draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "category": req.Category, "date": req.Date})

	c.JSON(http.StatusOK, result)
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
