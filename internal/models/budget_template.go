package models

// BudgetTemplate describes a reusable set of percentage weights used to
// pre-populate a new budget's categories from its total amount.
type BudgetTemplate struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	CreatedByID uint   `gorm:"not null" json:"created_by_id"`

	// Relationships
	Weights []TemplateWeight `gorm:"foreignKey:TemplateID" json:"weights,omitempty"`
}

// TemplateWeight is a single named percentage slice of a template.
type TemplateWeight struct {
	Base
	TemplateID uint    `gorm:"not null;index" json:"template_id"`
	Name       string  `gorm:"not null" json:"name"`
	Percent    float64 `gorm:"not null" json:"percent"`
}
