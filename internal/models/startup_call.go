package models

import "time"

// CallStatus represents the lifecycle status of a startup call
type CallStatus string

const (
	CallStatusDraft  CallStatus = "draft"
	CallStatusOpen   CallStatus = "open"
	CallStatusClosed CallStatus = "closed"
)

// StartupCall represents a funding call that scopes budgets and expenses
type StartupCall struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      CallStatus `gorm:"not null;default:draft" json:"status"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedByID uint       `gorm:"not null" json:"created_by_id"`

	// Relationships
	Budgets []Budget `gorm:"foreignKey:StartupCallID" json:"budgets,omitempty"`
}
