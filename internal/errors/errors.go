// Package errors provides custom error types for the fundboard API.
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

// Startup call errors.
var (
	ErrCallNotFound = &AppError{Code: "CALL_NOT_FOUND", Message: "Startup call not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetClosed        = &AppError{Code: "BUDGET_CLOSED", Message: "Budget is closed and cannot be modified", StatusCode: http.StatusConflict}
	ErrBudgetConflict      = &AppError{Code: "BUDGET_CONFLICT", Message: "Budget was modified by another user", StatusCode: http.StatusConflict}
	ErrOverAllocated       = &AppError{Code: "OVER_ALLOCATED", Message: "Category allocations exceed the budget total", StatusCode: http.StatusBadRequest}
	ErrNoCategories        = &AppError{Code: "NO_CATEGORIES", Message: "A budget requires at least one category", StatusCode: http.StatusBadRequest}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Budget category not found", StatusCode: http.StatusNotFound}
	ErrNothingToDistribute = &AppError{Code: "NOTHING_TO_DISTRIBUTE", Message: "Budget has no unallocated funds to distribute", StatusCode: http.StatusBadRequest}
	ErrNotOverAllocated    = &AppError{Code: "NOT_OVER_ALLOCATED", Message: "Budget allocations already fit within the total", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrExpenseNotFound   = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransition = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "Expense status transition is not allowed", StatusCode: http.StatusBadRequest}
	ErrExpenseSettled    = &AppError{Code: "EXPENSE_SETTLED", Message: "A settled expense cannot be edited", StatusCode: http.StatusConflict}
)

// Template errors.
var (
	ErrTemplateNotFound = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Budget template not found", StatusCode: http.StatusNotFound}
	ErrInvalidWeights   = &AppError{Code: "INVALID_WEIGHTS", Message: "Template weights must sum to 100", StatusCode: http.StatusBadRequest}
)

// Draft errors.
var (
	ErrDraftNotFound = &AppError{Code: "DRAFT_NOT_FOUND", Message: "No draft saved for this resource", StatusCode: http.StatusNotFound}
)
