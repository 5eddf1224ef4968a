package models

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleDesigner  UserRole = "designer"
	UserRoleDeveloper UserRole = "developer"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleDesigner, UserRoleDeveloper:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Creator is the denormalized author reference joined onto tokens and
// components at read time. Email is only populated on single-record fetches.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}
