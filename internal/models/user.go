package models

import "time"

// Role controls what a user may do: managers define and adjust budgets,
// employees record expenses against them.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// User represents an account in the system.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        Role       `gorm:"not null;default:employee" json:"role"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Budgets []Budget `gorm:"foreignKey:ManagerID" json:"budgets,omitempty"`
}
