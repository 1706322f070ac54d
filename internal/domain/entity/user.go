// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can log in, own a cart and place orders.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles returns the role set carried in access tokens.
func (u *User) Roles() Roles {
	if u.Role == RoleAdmin {
		return Roles{RoleUser, RoleAdmin}
	}

	return Roles{RoleUser}
}
