package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/expensefilter"
	"fundboard/internal/models"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a pending expense against a budget. When a category is
// given it must belong to that budget.
func (s *expenseService) CreateExpense(userID uint, input CreateExpenseInput) (*models.Expense, error) {
	var budget models.Budget
	if err := s.db.First(&budget, input.BudgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budget.Status == models.BudgetStatusClosed {
		return nil, apperrors.ErrBudgetClosed
	}

	if input.CategoryID != nil {
		var category models.BudgetCategory
		if err := s.db.Where("id = ? AND budget_id = ?", *input.CategoryID, input.BudgetID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	expense := &models.Expense{
		BudgetID:      input.BudgetID,
		CategoryID:    input.CategoryID,
		SubmittedByID: userID,
		Title:         input.Title,
		Description:   input.Description,
		Amount:        input.Amount,
		Currency:      input.Currency,
		Date:          input.Date,
		Status:        models.ExpenseStatusPending,
		ReceiptURL:    input.ReceiptURL,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// ListExpenses fetches the expense collection wholesale and filters it in
// memory, returning the visible subset and its running total. The collection
// is bounded; there is no pagination on this listing.
func (s *expenseService) ListExpenses(criteria expensefilter.Criteria) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	if err := s.db.Preload("Category").Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filtered := expensefilter.Apply(expenses, criteria)
	total := expensefilter.Total(filtered, nil)
	return filtered, total, nil
}

// GetExpenseByID returns an expense with its category.
func (s *expenseService) GetExpenseByID(expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates an expense's editable fields. Only the submitter or
// an admin may edit, and only while the expense has not been settled
// (approved or reimbursed).
func (s *expenseService) UpdateExpense(userID uint, isAdmin bool, expenseID uint, input UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	if expense.SubmittedByID != userID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	if expense.Status == models.ExpenseStatusApproved || expense.Status == models.ExpenseStatusReimbursed {
		return nil, apperrors.ErrExpenseSettled
	}

	if input.CategoryID != nil {
		var category models.BudgetCategory
		if err := s.db.Where("id = ? AND budget_id = ?", *input.CategoryID, expense.BudgetID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	updates := map[string]interface{}{
		"category_id": input.CategoryID,
		"title":       input.Title,
		"description": input.Description,
		"amount":      input.Amount,
		"currency":    input.Currency,
		"date":        input.Date,
		"receipt_url": input.ReceiptURL,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetExpenseByID(expenseID)
}

// DeleteExpense soft-deletes an expense. Only the submitter or an admin may
// delete; the deletion is an explicit, confirmed user action by the time it
// reaches this layer.
func (s *expenseService) DeleteExpense(userID uint, isAdmin bool, expenseID uint) error {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return err
	}

	if expense.SubmittedByID != userID && !isAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TransitionStatus moves an expense through its approval workflow:
// pending -> approved|rejected, approved -> reimbursed.
func (s *expenseService) TransitionStatus(expenseID uint, next models.ExpenseStatus) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	if !expense.CanTransitionTo(next) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.db.Model(expense).Update("status", next).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}
