package models

import (
	"slices"

	"gorm.io/datatypes"
)

// MaxAttempts is the attempt budget a user starts with and returns to after a
// successful login.
const MaxAttempts = 3

// Role names.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents the user model in the database
type User struct {
	Base
	Firstname    string                      `gorm:"size:255;not null" json:"firstname"`
	Lastname     string                      `gorm:"size:255;not null" json:"lastname"`
	Username     string                      `gorm:"size:255;not null" json:"username"`
	Email        string                      `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Password     string                      `gorm:"not null" json:"-"`
	IsActive     bool                        `gorm:"not null;default:true" json:"is_active"`
	CountAttempt int                         `gorm:"not null;default:3" json:"count_attempt"`
	Roles        datatypes.JSONSlice[string] `gorm:"type:json" json:"roles"`
	EndPages     []EndPage                   `gorm:"foreignKey:UserID" json:"-"`
}

// DecrementAttempt spends one attempt. The account is deactivated when the
// last attempt is used; the counter never goes below zero.
func (u *User) DecrementAttempt() {
	if u.CountAttempt > 0 {
		u.CountAttempt--
	}
	if u.CountAttempt == 0 {
		u.IsActive = false
	}
}

// ResetAttempts restores the full attempt budget.
func (u *User) ResetAttempts() {
	u.CountAttempt = MaxAttempts
}

func (u *User) HasAttemptsLeft() bool {
	return u.CountAttempt > 0
}

// HasRole reports whether the user holds role. Every user implicitly holds
// ROLE_USER.
func (u *User) HasRole(role string) bool {
	if role == RoleUser {
		return true
	}
	return slices.Contains(u.Roles, role)
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
