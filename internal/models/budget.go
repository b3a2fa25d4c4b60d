package models

// BudgetStatus represents the lifecycle status of a budget
type BudgetStatus string

const (
	BudgetStatusDraft  BudgetStatus = "draft"
	BudgetStatusActive BudgetStatus = "active"
	BudgetStatusClosed BudgetStatus = "closed"
)

// Budget represents a bounded pool of funds for a fiscal period, subdivided
// into allocation categories. Budgets are never hard-deleted; they only
// transition between statuses. Amounts are integer cents.
type Budget struct {
	Base
	StartupCallID uint         `gorm:"not null;index" json:"startup_call_id"`
	CreatedByID   uint         `gorm:"not null" json:"created_by_id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `json:"description"`
	TotalAmount   int64        `gorm:"type:bigint;not null" json:"total_amount"`
	Currency      string       `gorm:"size:3;not null" json:"currency"`
	FiscalYear    string       `gorm:"not null" json:"fiscal_year"`
	Status        BudgetStatus `gorm:"not null;default:draft" json:"status"`

	// Version supports optimistic concurrency: updates must present the
	// current value or fail with a conflict instead of silently overwriting.
	Version int `gorm:"not null;default:1" json:"version"`

	// Relationships
	Categories []BudgetCategory `gorm:"foreignKey:BudgetID" json:"categories,omitempty"`
	Expenses   []Expense        `gorm:"foreignKey:BudgetID" json:"expenses,omitempty"`
}

// BudgetCategory is a named allocation slice of a budget's total amount.
// Categories are owned exclusively by one budget and are replaced wholesale
// when the budget form is resubmitted.
type BudgetCategory struct {
	Base
	BudgetID        uint   `gorm:"not null;index" json:"budget_id"`
	Name            string `gorm:"not null" json:"name"`
	Description     string `json:"description"`
	AllocatedAmount int64  `gorm:"type:bigint;not null" json:"allocated_amount"`
}
