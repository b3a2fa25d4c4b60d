package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an applicant user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleApplicant)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
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

// CreateTestCall creates an open startup call.
func CreateTestCall(t *testing.T, db *gorm.DB, userID uint) *models.StartupCall {
	t.Helper()

	call := &models.StartupCall{
		Title:       fmt.Sprintf("Test Call %d", nextID()),
		Status:      models.CallStatusOpen,
		CreatedByID: userID,
	}
	if err := db.Create(call).Error; err != nil {
		t.Fatalf("failed to create test call: %v", err)
	}
	return call
}

// CreateTestBudget creates an active budget with two categories (6000.00 and
// 3000.00) against a total of 10000.00.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, callID uint) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		StartupCallID: callID,
		CreatedByID:   userID,
		Title:         fmt.Sprintf("Test Budget %d", nextID()),
		TotalAmount:   1000000,
		Currency:      "USD",
		FiscalYear:    "2026",
		Status:        models.BudgetStatusActive,
		Version:       1,
		Categories: []models.BudgetCategory{
			{Name: "Personnel", AllocatedAmount: 600000},
			{Name: "Equipment", AllocatedAmount: 300000},
		},
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates a pending expense against the budget.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, budgetID uint, categoryID *uint, amount int64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		BudgetID:      budgetID,
		CategoryID:    categoryID,
		SubmittedByID: userID,
		Title:         fmt.Sprintf("Test Expense %d", nextID()),
		Amount:        amount,
		Currency:      "USD",
		Date:          time.Now(),
		Status:        models.ExpenseStatusPending,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestTemplate creates a template with a 50/30/20 weight split.
func CreateTestTemplate(t *testing.T, db *gorm.DB, userID uint) *models.BudgetTemplate {
	t.Helper()

	template := &models.BudgetTemplate{
		Name:        fmt.Sprintf("Test Template %d", nextID()),
		CreatedByID: userID,
		Weights: []models.TemplateWeight{
			{Name: "Personnel", Percent: 50},
			{Name: "Equipment", Percent: 30},
			{Name: "Marketing", Percent: 20},
		},
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test template: %v", err)
	}
	return template
}
