package models

import "time"

// UserRole represents the role of a platform user
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleApplicant UserRole = "applicant"
)

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        UserRole   `gorm:"not null;default:applicant" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Budgets  []Budget  `gorm:"foreignKey:CreatedByID" json:"budgets,omitempty"`
	Expenses []Expense `gorm:"foreignKey:SubmittedByID" json:"expenses,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
