// Package errors provides custom error types for the Fiscus API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetAlreadyExists = &AppError{Code: "BUDGET_ALREADY_EXISTS", Message: "A budget for this year already exists", StatusCode: http.StatusConflict}
	ErrNoBudgetForYear     = &AppError{Code: "NO_BUDGET_FOR_YEAR", Message: "No budget found for this year", StatusCode: http.StatusNotFound}
	ErrAllocationMismatch  = &AppError{Code: "ALLOCATION_MISMATCH", Message: "The sum of category allocations must equal the total budget amount", StatusCode: http.StatusBadRequest}
	ErrAllocationShrink    = &AppError{Code: "ALLOCATION_SHRINK_REJECTED", Message: "A category allocation cannot be reduced below the amount already spent", StatusCode: http.StatusConflict}
	ErrZeroBudgetTotal     = &AppError{Code: "ZERO_BUDGET_TOTAL", Message: "Total budget amount must be greater than zero", StatusCode: http.StatusUnprocessableEntity}
)

// Expense errors.
var (
	ErrExpenseNotFound        = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotPlanned     = &AppError{Code: "CATEGORY_NOT_PLANNED", Message: "No planned budget found for this category", StatusCode: http.StatusBadRequest}
	ErrCategoryBudgetExceeded = &AppError{Code: "CATEGORY_BUDGET_EXCEEDED", Message: "This expense would exceed the budget for its category", StatusCode: http.StatusBadRequest}
)
