package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fundboard/internal/draft"
	apperrors "fundboard/internal/errors"
	"fundboard/internal/expensefilter"
	"fundboard/internal/export"
	"fundboard/internal/models"
	"fundboard/internal/money"
	"fundboard/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
	drafts         *draft.Store
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer, drafts *draft.Store) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService, drafts: drafts}
}

// CreateExpenseRequest represents the request payload for submitting an expense.
// Amount is a decimal string as typed by the user ("120.50").
type CreateExpenseRequest struct {
	BudgetID    uint    `json:"budget_id" binding:"required"`
	CategoryID  *uint   `json:"category_id"`
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Amount      string  `json:"amount" binding:"required"`
	Currency    string  `json:"currency" binding:"required,iso4217"`
	Date        *string `json:"date"`
	ReceiptURL  string  `json:"receipt_url" binding:"omitempty,url,max=500"`
}

// UpdateExpenseRequest represents the request payload for editing an expense
type UpdateExpenseRequest struct {
	CategoryID  *uint   `json:"category_id"`
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Amount      string  `json:"amount" binding:"required"`
	Currency    string  `json:"currency" binding:"required,iso4217"`
	Date        *string `json:"date"`
	ReceiptURL  string  `json:"receipt_url" binding:"omitempty,url,max=500"`
}

// TransitionRequest represents the request payload for an expense status change
type TransitionRequest struct {
	Status string `json:"status" binding:"required,expense_status"`
}

// CreateExpense handles the submission of a new expense
// @Summary     Submit an expense
// @Description Record a pending expense against a budget
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget or category not found"
// @Failure     409 {object} ErrorResponse "Budget closed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount"))
		return
	}
	if amount <= 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	expenseDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		expenseDate = parsed
	}

	expense, err := h.expenseService.CreateExpense(userID, services.CreateExpenseInput{
		BudgetID:    req.BudgetID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      amount,
		Currency:    req.Currency,
		Date:        expenseDate,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A successful submission supersedes any auto-saved draft of the form.
	h.drafts.Clear(userID, draftResourceExpense, 0)

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": amount, "budget_id": req.BudgetID})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// parseExpenseCriteria reads the filter dimensions from query parameters.
// Absent parameters leave their dimension unconstrained.
func parseExpenseCriteria(c *gin.Context) (expensefilter.Criteria, error) {
	var criteria expensefilter.Criteria

	if v := c.Query("budget_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return criteria, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid budget_id")
		}
		budgetID := uint(id)
		criteria.BudgetID = &budgetID
	}

	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return criteria, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category_id")
		}
		categoryID := uint(id)
		criteria.CategoryID = &categoryID
	}

	if v := c.Query("status"); v != "" && v != expensefilter.StatusAll {
		status := models.ExpenseStatus(v)
		switch status {
		case models.ExpenseStatusPending, models.ExpenseStatusApproved,
			models.ExpenseStatusRejected, models.ExpenseStatusReimbursed:
			criteria.Status = v
		default:
			return criteria, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be all, pending, approved, rejected, or reimbursed")
		}
	}

	criteria.Search = c.Query("search")
	return criteria, nil
}

// GetExpenses handles the listing of expenses
// @Summary     List expenses
// @Description Get expenses filtered by budget, category, status, and free-text
// @Description search, along with the running total of the visible subset
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       budget_id   query int    false "Filter by budget"
// @Param       category_id query int    false "Filter by category"
// @Param       status      query string false "Filter by status (all, pending, approved, rejected, reimbursed)"
// @Param       search      query string false "Case-insensitive search over title and description"
// @Success     200 {object} map[string]interface{} "Expenses and total"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	criteria, err := parseExpenseCriteria(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"total":    total,
	})
}

// ExportExpenses handles CSV export of the filtered expense listing
// @Summary     Export expenses as CSV
// @Description Download the filtered expense listing as a CSV file
// @Tags        expenses
// @Produce     text/csv
// @Security    BearerAuth
// @Param       budget_id   query int    false "Filter by budget"
// @Param       category_id query int    false "Filter by category"
// @Param       status      query string false "Filter by status"
// @Param       search      query string false "Case-insensitive search"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c *gin.Context) {
	criteria, err := parseExpenseCriteria(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, _, err := h.expenseService.ListExpenses(criteria)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.WriteCSV(c.Writer, expenses); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
}

// GetExpense handles the retrieval of a single expense
// @Summary     Get an expense
// @Description Get an expense with its category by ID
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

// UpdateExpense handles the editing of an expense
// @Summary     Update an expense
// @Description Edit a pending or rejected expense. Only the submitter or an admin may edit.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Expense form"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the submitter"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     409 {object} ErrorResponse "Expense already settled"
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

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	amount, err := money.ParseDecimalToCents(req.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount"))
		return
	}
	if amount <= 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive"))
		return
	}

	expenseDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		expenseDate = parsed
	}

	expense, err := h.expenseService.UpdateExpense(userID, isAdmin(c), expenseID, services.UpdateExpenseInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      amount,
		Currency:    req.Currency,
		Date:        expenseDate,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.drafts.Clear(userID, draftResourceExpense, expenseID)

	h.auditService.Log(userID, "UPDATE_EXPENSE", "expense", expenseID, c.ClientIP(),
		map[string]interface{}{"amount": amount})

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles the deletion of an expense
// @Summary     Delete an expense
// @Description Delete an expense by ID. Only the submitter or an admin may delete.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the submitter"
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

	if err := h.expenseService.DeleteExpense(userID, isAdmin(c), expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// TransitionExpense handles an expense status change
// @Summary     Change expense status
// @Description Move an expense through its approval workflow (admin only):
// @Description pending to approved or rejected, approved to reimbursed
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int true "Expense ID"
// @Param       request body TransitionRequest true "Target status"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid transition"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/status [patch]
func (h *ExpenseHandler) TransitionExpense(c *gin.Context) {
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

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.TransitionStatus(expenseID, models.ExpenseStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TRANSITION_EXPENSE", "expense", expenseID, c.ClientIP(),
		map[string]interface{}{"status": req.Status})

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}
