package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
	"fundboard/internal/services"
)

// --- mock template service ---

type mockTemplateService struct {
	createTemplateFn  func(userID uint, name, description string, weights []services.WeightInput) (*models.BudgetTemplate, error)
	getTemplatesFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error)
	getTemplateByIDFn func(templateID uint) (*models.BudgetTemplate, error)
}

func (m *mockTemplateService) CreateTemplate(userID uint, name, description string, weights []services.WeightInput) (*models.BudgetTemplate, error) {
	if m.createTemplateFn != nil {
		return m.createTemplateFn(userID, name, description, weights)
	}
	return &models.BudgetTemplate{Base: models.Base{ID: 1}, Name: name}, nil
}

func (m *mockTemplateService) GetTemplates(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error) {
	if m.getTemplatesFn != nil {
		return m.getTemplatesFn(page)
	}
	resp := pagination.NewPageResponse([]models.BudgetTemplate{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTemplateService) GetTemplateByID(templateID uint) (*models.BudgetTemplate, error) {
	if m.getTemplateByIDFn != nil {
		return m.getTemplateByIDFn(templateID)
	}
	return &models.BudgetTemplate{Base: models.Base{ID: templateID}}, nil
}

var _ services.TemplateServicer = (*mockTemplateService)(nil)

func setupTemplateRouter(handler *TemplateHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/templates", handler.CreateTemplate)
	auth.GET("/templates", handler.GetTemplates)
	auth.GET("/templates/:id", handler.GetTemplate)
	return r
}

func TestTemplateHandler_CreateTemplate(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotWeights []services.WeightInput
		svc := &mockTemplateService{
			createTemplateFn: func(_ uint, name, _ string, weights []services.WeightInput) (*models.BudgetTemplate, error) {
				gotWeights = weights
				return &models.BudgetTemplate{Base: models.Base{ID: 1}, Name: name}, nil
			},
		}
		handler := NewTemplateHandler(svc, &mockAuditService{})
		r := setupTemplateRouter(handler)

		rec := doRequest(r, "POST", "/templates",
			`{"name":"Standard Split","weights":[{"name":"Personnel","percent":60},{"name":"Equipment","percent":40}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(gotWeights) != 2 || gotWeights[0].Percent != 60 {
			t.Errorf("expected parsed weights, got %+v", gotWeights)
		}
	})

	t.Run("returns 400 on empty weights", func(t *testing.T) {
		handler := NewTemplateHandler(&mockTemplateService{}, &mockAuditService{})
		r := setupTemplateRouter(handler)

		rec := doRequest(r, "POST", "/templates", `{"name":"Empty","weights":[]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when weights do not sum to 100", func(t *testing.T) {
		svc := &mockTemplateService{
			createTemplateFn: func(_ uint, _, _ string, _ []services.WeightInput) (*models.BudgetTemplate, error) {
				return nil, apperrors.ErrInvalidWeights
			},
		}
		handler := NewTemplateHandler(svc, &mockAuditService{})
		r := setupTemplateRouter(handler)

		rec := doRequest(r, "POST", "/templates",
			`{"name":"Bad","weights":[{"name":"Personnel","percent":60},{"name":"Equipment","percent":30}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_WEIGHTS")
	})
}

func TestTemplateHandler_GetTemplate(t *testing.T) {
	t.Run("returns 404 for an unknown template", func(t *testing.T) {
		svc := &mockTemplateService{
			getTemplateByIDFn: func(_ uint) (*models.BudgetTemplate, error) {
				return nil, apperrors.ErrTemplateNotFound
			},
		}
		handler := NewTemplateHandler(svc, &mockAuditService{})
		r := setupTemplateRouter(handler)

		rec := doRequest(r, "GET", "/templates/999", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
