package services

import (
	"errors"

	"gorm.io/gorm"

	"fundboard/internal/allocation"
	apperrors "fundboard/internal/errors"
	"fundboard/internal/models"
	"fundboard/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a budget with its nested categories. When a template is
// given, categories are pre-populated from the template's percentage weights.
// The submission guard rejects over-allocated budgets; the table itself
// carries no such constraint.
func (s *budgetService) CreateBudget(userID uint, input CreateBudgetInput) (*models.Budget, error) {
	var call models.StartupCall
	if err := s.db.First(&call, input.StartupCallID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCallNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.BudgetCategory
	if input.TemplateID != nil {
		var template models.BudgetTemplate
		if err := s.db.Preload("Weights").First(&template, *input.TemplateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrTemplateNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		weights := make([]allocation.Weight, 0, len(template.Weights))
		for _, w := range template.Weights {
			weights = append(weights, allocation.Weight{Name: w.Name, Percent: w.Percent})
		}
		categories = allocation.FromTemplate(weights, input.TotalAmount)
	} else {
		for _, c := range input.Categories {
			categories = append(categories, models.BudgetCategory{
				Name:            c.Name,
				Description:     c.Description,
				AllocatedAmount: c.AllocatedAmount,
			})
		}
	}

	if len(categories) == 0 {
		return nil, apperrors.ErrNoCategories
	}

	allocated := allocation.TotalAllocated(categories)
	if input.TotalAmount > 0 && !allocation.IsValid(allocated, input.TotalAmount) {
		return nil, apperrors.ErrOverAllocated
	}

	status := input.Status
	if status == "" {
		status = models.BudgetStatusDraft
	}

	budget := &models.Budget{
		StartupCallID: input.StartupCallID,
		CreatedByID:   userID,
		Title:         input.Title,
		Description:   input.Description,
		TotalAmount:   input.TotalAmount,
		Currency:      input.Currency,
		FiscalYear:    input.FiscalYear,
		Status:        status,
		Version:       1,
		Categories:    categories,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudgets returns a paginated budget list with optional call and status filters.
func (s *budgetService) GetBudgets(page pagination.PageRequest, callID *uint, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{})
	if callID != nil {
		base = base.Where("startup_call_id = ?", *callID)
	}
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Categories").Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget with its categories.
func (s *budgetService) GetBudgetByID(budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Preload("Categories").First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates a budget and reconciles its category line items:
// inputs with a known ID update the existing row, inputs without an ID are
// created, and remaining rows are removed. The stored version must match the
// submitted one or the update is rejected as a conflict. Submitting identical
// values is a no-op round trip: nothing is written and the version stays put.
func (s *budgetService) UpdateBudget(userID, budgetID uint, input UpdateBudgetInput) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if budget.Status == models.BudgetStatusClosed {
		return nil, apperrors.ErrBudgetClosed
	}
	if budget.Version != input.Version {
		return nil, apperrors.ErrBudgetConflict
	}
	if len(input.Categories) == 0 {
		return nil, apperrors.ErrNoCategories
	}

	existing := make(map[uint]models.BudgetCategory, len(budget.Categories))
	for _, c := range budget.Categories {
		existing[c.ID] = c
	}
	for _, c := range input.Categories {
		if c.ID != 0 {
			if _, ok := existing[c.ID]; !ok {
				return nil, apperrors.ErrCategoryNotFound
			}
		}
	}

	var allocated int64
	for _, c := range input.Categories {
		if c.AllocatedAmount > 0 {
			allocated += c.AllocatedAmount
		}
	}
	if input.TotalAmount > 0 && !allocation.IsValid(allocated, input.TotalAmount) {
		return nil, apperrors.ErrOverAllocated
	}

	if budgetUnchanged(budget, input) {
		return budget, nil
	}

	status := input.Status
	if status == "" {
		status = budget.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":        input.Title,
			"description":  input.Description,
			"total_amount": input.TotalAmount,
			"currency":     input.Currency,
			"fiscal_year":  input.FiscalYear,
			"status":       status,
			"version":      budget.Version + 1,
		}
		if err := tx.Model(budget).Updates(updates).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(input.Categories))
		for _, c := range input.Categories {
			if c.ID != 0 {
				seen[c.ID] = true
				if err := tx.Model(&models.BudgetCategory{}).Where("id = ? AND budget_id = ?", c.ID, budget.ID).
					Updates(map[string]interface{}{
						"name":             c.Name,
						"description":      c.Description,
						"allocated_amount": c.AllocatedAmount,
					}).Error; err != nil {
					return err
				}
				continue
			}
			created := models.BudgetCategory{
				BudgetID:        budget.ID,
				Name:            c.Name,
				Description:     c.Description,
				AllocatedAmount: c.AllocatedAmount,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
		}

		// Remove line items dropped from the form.
		for id := range existing {
			if !seen[id] {
				if err := tx.Delete(&models.BudgetCategory{}, id).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetBudgetByID(budgetID)
}

// CloseBudget transitions a budget to the closed status. Budgets are never
// hard-deleted.
func (s *budgetService) CloseBudget(userID, budgetID uint) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if budget.Status == models.BudgetStatusClosed {
		return budget, nil
	}

	updates := map[string]interface{}{
		"status":  models.BudgetStatusClosed,
		"version": budget.Version + 1,
	}
	if err := s.db.Model(budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetSummary derives the allocation summary for a budget.
func (s *budgetService) GetSummary(budgetID uint) (*allocation.Summary, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	summary := allocation.Summarize(budget.TotalAmount, budget.Categories)
	return &summary, nil
}

// DistributeRemaining spreads the unallocated remainder evenly across the
// budget's categories and persists the result.
func (s *budgetService) DistributeRemaining(userID, budgetID uint) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status == models.BudgetStatusClosed {
		return nil, apperrors.ErrBudgetClosed
	}
	if len(budget.Categories) == 0 {
		return nil, apperrors.ErrNoCategories
	}

	allocated := allocation.TotalAllocated(budget.Categories)
	remaining := allocation.Remaining(budget.TotalAmount, allocated)
	if remaining <= 0 {
		return nil, apperrors.ErrNothingToDistribute
	}

	allocation.DistributeRemaining(budget.Categories, remaining)

	if err := s.saveRebalance(budget); err != nil {
		return nil, err
	}
	return s.GetBudgetByID(budgetID)
}

// AdjustToTotal proportionally scales an over-allocated budget's categories
// down to the total and persists the result.
func (s *budgetService) AdjustToTotal(userID, budgetID uint) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status == models.BudgetStatusClosed {
		return nil, apperrors.ErrBudgetClosed
	}

	allocated := allocation.TotalAllocated(budget.Categories)
	if allocation.Remaining(budget.TotalAmount, allocated) >= 0 {
		return nil, apperrors.ErrNotOverAllocated
	}

	allocation.AdjustToTotal(budget.Categories, allocated, budget.TotalAmount)

	if err := s.saveRebalance(budget); err != nil {
		return nil, err
	}
	return s.GetBudgetByID(budgetID)
}

// saveRebalance persists rebalanced category amounts and bumps the version.
func (s *budgetService) saveRebalance(budget *models.Budget) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range budget.Categories {
			if err := tx.Model(&models.BudgetCategory{}).Where("id = ?", c.ID).
				Update("allocated_amount", c.AllocatedAmount).Error; err != nil {
				return err
			}
		}
		return tx.Model(budget).Update("version", budget.Version+1).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// budgetUnchanged reports whether the update submits exactly the stored state.
func budgetUnchanged(budget *models.Budget, input UpdateBudgetInput) bool {
	if budget.Title != input.Title ||
		budget.Description != input.Description ||
		budget.TotalAmount != input.TotalAmount ||
		budget.Currency != input.Currency ||
		budget.FiscalYear != input.FiscalYear {
		return false
	}
	if input.Status != "" && budget.Status != input.Status {
		return false
	}
	if len(input.Categories) != len(budget.Categories) {
		return false
	}

	existing := make(map[uint]models.BudgetCategory, len(budget.Categories))
	for _, c := range budget.Categories {
		existing[c.ID] = c
	}
	for _, c := range input.Categories {
		prev, ok := existing[c.ID]
		if !ok {
			return false
		}
		if prev.Name != c.Name || prev.Description != c.Description || prev.AllocatedAmount != c.AllocatedAmount {
			return false
		}
	}
	return true
}
