package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/pagination"
	"fundboard/internal/services"
)

// TemplateHandler handles budget-template requests.
type TemplateHandler struct {
	templateService services.TemplateServicer
	auditService    services.AuditServicer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.TemplateServicer, auditService services.AuditServicer) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, auditService: auditService}
}

// WeightRequest represents one named percentage slice of a template
type WeightRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Percent float64 `json:"percent" binding:"required,gt=0,lte=100"`
}

// CreateTemplateRequest represents the request payload for creating a template
type CreateTemplateRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Weights     []WeightRequest `json:"weights" binding:"required,min=1,dive"`
}

// CreateTemplate handles the creation of a budget template
// @Summary     Create a budget template
// @Description Create a reusable percentage split for seeding budget categories (admin only)
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} models.BudgetTemplate "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input or weights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	weights := make([]services.WeightInput, 0, len(req.Weights))
	for _, w := range req.Weights {
		weights = append(weights, services.WeightInput{Name: w.Name, Percent: w.Percent})
	}

	template, err := h.templateService.CreateTemplate(userID, req.Name, req.Description, weights)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TEMPLATE", "budget_template", template.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTemplates handles the listing of budget templates
// @Summary     List budget templates
// @Description Get a paginated list of budget templates with their weights
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.BudgetTemplate] "Paginated templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.templateService.GetTemplates(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTemplate handles the retrieval of a single template
// @Summary     Get a budget template
// @Description Get a budget template with its weights by ID
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Template ID"
// @Success     200 {object} models.BudgetTemplate "Template details"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.GetTemplateByID(templateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}
