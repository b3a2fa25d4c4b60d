package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
)

// weightSumEpsilon tolerates float drift when checking that weights sum to 100.
const weightSumEpsilon = 0.01

// templateService handles budget-template business logic.
type templateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new TemplateServicer.
func NewTemplateService(db *gorm.DB) TemplateServicer {
	return &templateService{db: db}
}

// CreateTemplate creates a named template whose percentage weights must sum to 100.
func (s *templateService) CreateTemplate(userID uint, name, description string, weights []WeightInput) (*models.BudgetTemplate, error) {
	if len(weights) == 0 {
		return nil, apperrors.ErrInvalidWeights
	}

	var sum float64
	for _, w := range weights {
		if w.Percent <= 0 {
			return nil, apperrors.ErrInvalidWeights
		}
		sum += w.Percent
	}
	if math.Abs(sum-100) > weightSumEpsilon {
		return nil, apperrors.ErrInvalidWeights
	}

	template := &models.BudgetTemplate{
		Name:        name,
		Description: description,
		CreatedByID: userID,
	}
	for _, w := range weights {
		template.Weights = append(template.Weights, models.TemplateWeight{
			Name:    w.Name,
			Percent: w.Percent,
		})
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return template, nil
}

// GetTemplates returns a paginated list of budget templates with weights.
func (s *templateService) GetTemplates(page pagination.PageRequest) (*pagination.PageResponse[models.BudgetTemplate], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetTemplate{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var templates []models.BudgetTemplate
	if err := base.Preload("Weights").Scopes(pagination.Paginate(page)).Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(templates, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTemplateByID returns a template with its weights.
func (s *templateService) GetTemplateByID(templateID uint) (*models.BudgetTemplate, error) {
	var template models.BudgetTemplate
	if err := s.db.Preload("Weights").First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &template, nil
}
