package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fundboard/internal/draft"
	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/money"
	"fundboard/internal/pagination"
	"fundboard/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
	drafts        *draft.Store
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer, drafts *draft.Store) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService, drafts: drafts}
}

// CategoryRequest represents one budget line item in a form submission.
// Amounts are decimal strings as typed by the user ("6000.00").
type CategoryRequest struct {
	ID              uint   `json:"id"`
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description" binding:"max=500"`
	AllocatedAmount string `json:"allocated_amount" binding:"required"`
}

// CreateBudgetRequest represents the request payload for creating a budget
type CreateBudgetRequest struct {
	StartupCallID uint              `json:"startup_call_id" binding:"required"`
	Title         string            `json:"title" binding:"required,min=3,max=200"`
	Description   string            `json:"description" binding:"max=2000"`
	TotalAmount   string            `json:"total_amount" binding:"required"`
	Currency      string            `json:"currency" binding:"required,iso4217"`
	FiscalYear    string            `json:"fiscal_year" binding:"required,fiscal_year"`
	Status        string            `json:"status" binding:"omitempty,budget_status"`
	TemplateID    *uint             `json:"template_id"`
	Categories    []CategoryRequest `json:"categories" binding:"dive"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Version must carry the version the client last read.
type UpdateBudgetRequest struct {
	Version     int               `json:"version" binding:"required,min=1"`
	Title       string            `json:"title" binding:"required,min=3,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	TotalAmount string            `json:"total_amount" binding:"required"`
	Currency    string            `json:"currency" binding:"required,iso4217"`
	FiscalYear  string            `json:"fiscal_year" binding:"required,fiscal_year"`
	Status      string            `json:"status" binding:"omitempty,budget_status"`
	Categories  []CategoryRequest `json:"categories" binding:"required,dive"`
}

func categoriesFromRequest(reqs []CategoryRequest) ([]services.CategoryInput, error) {
	categories := make([]services.CategoryInput, 0, len(reqs))
	for _, r := range reqs {
		amount, err := money.ParseDecimalToCents(r.AllocatedAmount)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid allocated_amount for "+r.Name)
		}
		if amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocated_amount must be positive for "+r.Name)
		}
		categories = append(categories, services.CategoryInput{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			AllocatedAmount: amount,
		})
	}
	return categories, nil
}

// CreateBudget handles the creation of a new budget
// @Summary     Create a budget
// @Description Create a budget under a startup call, from explicit categories or a template
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or over-allocated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Call or template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	totalAmount, err := money.ParseDecimalToCents(req.TotalAmount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid total_amount"))
		return
	}
	if totalAmount <= 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "total_amount must be positive"))
		return
	}
	categories, err := categoriesFromRequest(req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := models.BudgetStatusDraft
	if req.Status != "" {
		status = models.BudgetStatus(req.Status)
	}

	budget, err := h.budgetService.CreateBudget(userID, services.CreateBudgetInput{
		StartupCallID: req.StartupCallID,
		Title:         req.Title,
		Description:   req.Description,
		TotalAmount:   totalAmount,
		Currency:      req.Currency,
		FiscalYear:    req.FiscalYear,
		Status:        status,
		TemplateID:    req.TemplateID,
		Categories:    categories,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A successful submission supersedes any auto-saved draft of the form.
	h.drafts.Clear(userID, draftResourceBudget, 0)

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title, "total_amount": totalAmount, "startup_call_id": req.StartupCallID})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles the listing of budgets
// @Summary     List budgets
// @Description Get a paginated list of budgets, optionally filtered by call and status
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       call_id   query int    false "Filter by startup call"
// @Param       status    query string false "Filter by status (draft, active, closed)"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var callID *uint
	if v := c.Query("call_id"); v != "" {
		id, parseErr := strconv.ParseUint(v, 10, 32)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid call_id"))
			return
		}
		parsed := uint(id)
		callID = &parsed
	}

	var status *models.BudgetStatus
	if v := c.Query("status"); v != "" {
		budgetStatus := models.BudgetStatus(v)
		switch budgetStatus {
		case models.BudgetStatusDraft, models.BudgetStatusActive, models.BudgetStatusClosed:
			status = &budgetStatus
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be draft, active, or closed"))
			return
		}
	}

	result, err := h.budgetService.GetBudgets(page, callID, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudget handles the retrieval of a single budget
// @Summary     Get a budget
// @Description Get a budget with its categories by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles a full budget form submission
// @Summary     Update a budget
// @Description Replace a budget's fields and category line items. The request's
// @Description version must match the stored budget or a conflict is returned.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Budget form"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or over-allocated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Version conflict or budget closed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	totalAmount, err := money.ParseDecimalToCents(req.TotalAmount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid total_amount"))
		return
	}
	if totalAmount <= 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "total_amount must be positive"))
		return
	}
	categories, err := categoriesFromRequest(req.Categories)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// An omitted status keeps the stored one.
	budget, err := h.budgetService.UpdateBudget(userID, budgetID, services.UpdateBudgetInput{
		Version:     req.Version,
		Title:       req.Title,
		Description: req.Description,
		TotalAmount: totalAmount,
		Currency:    req.Currency,
		FiscalYear:  req.FiscalYear,
		Status:      models.BudgetStatus(req.Status),
		Categories:  categories,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.drafts.Clear(userID, draftResourceBudget, budgetID)

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"version": req.Version, "total_amount": totalAmount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// CloseBudget handles the closing of a budget
// @Summary     Close a budget
// @Description Mark a budget closed. Closed budgets reject further edits and
// @Description expenses but remain readable.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Closed budget"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/close [post]
func (h *BudgetHandler) CloseBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CloseBudget(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CLOSE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetSummary handles the retrieval of a budget's allocation summary
// @Summary     Get allocation summary
// @Description Get the allocated total, remaining amount, validity, and percent used for a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} allocation.Summary "Allocation summary"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.budgetService.GetSummary(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// DistributeRemaining handles the even distribution of unallocated funds
// @Summary     Distribute remaining funds
// @Description Split the budget's unallocated amount evenly across its categories
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Rebalanced budget"
// @Failure     400 {object} ErrorResponse "Nothing to distribute"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget closed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/distribute-remaining [post]
func (h *BudgetHandler) DistributeRemaining(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.DistributeRemaining(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DISTRIBUTE_REMAINING", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// AdjustToTotal handles proportional scaling of an over-allocated budget
// @Summary     Adjust allocations to total
// @Description Scale every category down proportionally so the allocation fits the budget total
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} models.Budget "Rebalanced budget"
// @Failure     400 {object} ErrorResponse "Budget is not over-allocated"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Budget closed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/adjust-to-total [post]
func (h *BudgetHandler) AdjustToTotal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.AdjustToTotal(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADJUST_TO_TOTAL", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}
