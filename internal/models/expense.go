package models

import "time"

// ExpenseStatus represents the approval status of an expense
type ExpenseStatus string

const (
	ExpenseStatusPending    ExpenseStatus = "pending"
	ExpenseStatusApproved   ExpenseStatus = "approved"
	ExpenseStatusRejected   ExpenseStatus = "rejected"
	ExpenseStatusReimbursed ExpenseStatus = "reimbursed"
)

// Expense represents a recorded expenditure against a budget and category.
// CategoryID is optional; a nil value means "Uncategorized". Amounts are
// integer cents.
type Expense struct {
	Base
	BudgetID      uint          `gorm:"not null;index" json:"budget_id"`
	CategoryID    *uint         `json:"category_id,omitempty"`
	SubmittedByID uint          `gorm:"not null" json:"submitted_by_id"`
	Title         string        `gorm:"not null" json:"title"`
	Description   string        `json:"description"`
	Amount        int64         `gorm:"type:bigint;not null" json:"amount"`
	Currency      string        `gorm:"size:3;not null" json:"currency"`
	Date          time.Time     `gorm:"not null" json:"date"`
	Status        ExpenseStatus `gorm:"not null;default:pending" json:"status"`
	ReceiptURL    string        `json:"receipt_url,omitempty"`

	// Relationships
	Budget   Budget          `gorm:"foreignKey:BudgetID" json:"budget"`
	Category *BudgetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// CanTransitionTo reports whether the status transition is allowed.
// Pending expenses may be approved or rejected; approved expenses may be
// reimbursed. All other transitions are invalid.
func (e *Expense) CanTransitionTo(next ExpenseStatus) bool {
	switch e.Status {
	case ExpenseStatusPending:
		return next == ExpenseStatusApproved || next == ExpenseStatusRejected
	case ExpenseStatusApproved:
		return next == ExpenseStatusReimbursed
	}
	return false
}
