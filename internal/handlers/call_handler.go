package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
	"fundboard/internal/services"
)

// CallHandler handles startup-call requests.
type CallHandler struct {
	callService  services.CallServicer
	auditService services.AuditServicer
}

// NewCallHandler creates a new CallHandler.
func NewCallHandler(callService services.CallServicer, auditService services.AuditServicer) *CallHandler {
	return &CallHandler{callService: callService, auditService: auditService}
}

// CreateCallRequest represents the request payload for creating a startup call
type CreateCallRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Deadline    *string `json:"deadline"`
}

// CreateCall handles the creation of a new startup call
// @Summary     Create a startup call
// @Description Create a new funding call (admin only)
// @Tags        calls
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCallRequest true "Call details"
// @Success     201 {object} models.StartupCall "Call created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calls [post]
func (h *CallHandler) CreateCall(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, parseErr := parseFlexibleTime(*req.Deadline)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		deadline = &parsed
	}

	call, err := h.callService.CreateCall(userID, req.Title, req.Description, deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CALL", "startup_call", call.ID, c.ClientIP(),
		map[string]interface{}{"title": req.Title})

	c.JSON(http.StatusCreated, gin.H{"call": call})
}

// GetCalls handles the listing of startup calls
// @Summary     List startup calls
// @Description Get a paginated list of funding calls, optionally filtered by status
// @Tags        calls
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status (draft, open, closed)"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.StartupCall] "Paginated calls"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calls [get]
func (h *CallHandler) GetCalls(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.CallStatus
	if v := c.Query("status"); v != "" {
		callStatus := models.CallStatus(v)
		switch callStatus {
		case models.CallStatusDraft, models.CallStatusOpen, models.CallStatusClosed:
			status = &callStatus
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be draft, open, or closed"))
			return
		}
	}

	result, err := h.callService.GetCalls(page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCall handles the retrieval of a single startup call
// @Summary     Get a startup call
// @Description Get a funding call by ID
// @Tags        calls
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Call ID"
// @Success     200 {object} models.StartupCall "Call details"
// @Failure     400 {object} ErrorResponse "Invalid call ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Call not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calls/{id} [get]
func (h *CallHandler) GetCall(c *gin.Context) {
	callID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	call, err := h.callService.GetCallByID(callID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"call": call})
}

// GetCallBudgets handles the listing of budgets under a startup call
// @Summary     List budgets for a call
// @Description Get a paginated list of budgets belonging to a funding call
// @Tags        calls
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Call ID"
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid call ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Call not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /calls/{id}/budgets [get]
func (h *CallHandler) GetCallBudgets(c *gin.Context) {
	callID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.callService.GetCallBudgets(callID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
