package services

import (
	"time"

	"fundboard/internal/allocation"
	"fundboard/internal/expensefilter"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.UserRole) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CallServicer defines the contract for startup-call business logic.
type CallServicer interface {
	CreateCall(userID uint, title, description string, deadline *time.Time) (*models.StartupCall, error)
	GetCalls(page pagination.PageRequest, status *models.CallStatus) (*pagination.PageResponse[models.StartupCall], error)
	GetCallByID(callID uint) (*models.StartupCall, error)
	GetCallBudgets(callID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
}

// CategoryInput is one budget line item as submitted by the budget form.
// A zero ID means a new line item; a non-zero ID updates the existing one.
type CategoryInput struct {
	ID              uint
	Name            string
	Description     string
	AllocatedAmount int64
}

// CreateBudgetInput holds the validated fields for creating a budget.
// When TemplateID is set, categories are pre-populated from the template's
// percentage weights and the Categories field is ignored.
type CreateBudgetInput struct {
	StartupCallID uint
	Title         string
	Description   string
	TotalAmount   int64
	Currency      string
	FiscalYear    string
	Status        models.BudgetStatus
	TemplateID    *uint
	Categories    []CategoryInput
}

// UpdateBudgetInput holds the validated fields for updating a budget.
// Version must match the stored budget or the update is rejected.
type UpdateBudgetInput struct {
	Version     int
	Title       string
	Description string
	TotalAmount int64
	Currency    string
	FiscalYear  string
	Status      models.BudgetStatus
	Categories  []CategoryInput
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, input CreateBudgetInput) (*models.Budget, error)
	GetBudgets(page pagination.PageRequest, callID *uint, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, input UpdateBudgetInput) (*models.Budget, error)
	CloseBudget(userID, budgetID uint) (*models.Budget, error)
	GetSummary(budgetID uint) (*allocation.Summary, error)
	DistributeRemaining(userID, budgetID uint) (*models.Budget, error)
	AdjustToTotal(userID, budgetID uint) (*models.Budget, error)
}

// CreateExpenseInput holds the validated fields for creating an expense.
type CreateExpenseInput struct {
	BudgetID    uint
	CategoryID  *uint
	Title       string
	Description string
	Amount      int64
	Currency    string
	Date        time.Time
	ReceiptURL  string
}

// UpdateExpenseInput holds the validated fields for updating an expense.
type UpdateExpenseInput struct {
	CategoryID  *uint
	Title       string
	Description string
	Amount      int64
	Currency    string
	Date        time.Time
	ReceiptURL  string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, input CreateExpenseInput) (*models.Expense, error)
	// ListExpenses fetches the expense collection wholesale and applies the
	// criteria in memory, returning the visible subset and its running total.
	ListExpenses(criteria expensefilter.Criteria) ([]models.Expense, int64, error)
	GetExpenseByID(expenseID uint) (*models.Expense, error)
	UpdateExpense(userID uint, isAdmin bool, expenseID uint, input UpdateExpenseInput) (*models.Expense, error)
	DeleteExpense(userID uint, isAdmin bool, expenseID uint) error
	TransitionStatus(expenseID uint, next models.ExpenseStatus) (*models.Expense, error)
}

// WeightInput is one named percentage slice of a budget template.
type WeightInput struct {
	Name    string
	Percent float64
}

// TemplateServicer defines the contract for budget-template business logic.
type TemplateServicer interface {
	CreateTemplate(userID uint, name, description string, weights []WeightInput) (*models.BudgetTemplate, error)
	GetTemplates(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error)
	GetTemplateByID(templateID uint) (*models.BudgetTemplate, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
