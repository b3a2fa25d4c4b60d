package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
)

// callService handles startup-call business logic.
type callService struct {
	db *gorm.DB
}

// NewCallService creates a new CallServicer.
func NewCallService(db *gorm.DB) CallServicer {
	return &callService{db: db}
}

// CreateCall creates a new startup call in draft status.
func (s *callService) CreateCall(userID uint, title, description string, deadline *time.Time) (*models.StartupCall, error) {
	call := &models.StartupCall{
		Title:       title,
		Description: description,
		Status:      models.CallStatusDraft,
		Deadline:    deadline,
		CreatedByID: userID,
	}

	if err := s.db.Create(call).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return call, nil
}

// GetCalls returns a paginated list of startup calls with an optional status filter.
func (s *callService) GetCalls(page pagination.PageRequest, status *models.CallStatus) (*pagination.PageResponse[models.StartupCall], error) {
	page.Defaults()

	base := s.db.Model(&models.StartupCall{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var calls []models.StartupCall
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&calls).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(calls, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCallByID returns a startup call by ID.
func (s *callService) GetCallByID(callID uint) (*models.StartupCall, error) {
	var call models.StartupCall
	if err := s.db.First(&call, callID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCallNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &call, nil
}

// GetCallBudgets returns the budgets scoped under a startup call.
func (s *callService) GetCallBudgets(callID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if _, err := s.GetCallByID(callID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("startup_call_id = ?", callID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Categories").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}
