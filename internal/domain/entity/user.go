// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the system. Email doubles as the login
// name and uniquely identifies at most one user.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, used as the login identifier.
	FirstName    string    // The user's given name.
	LastName     string    // The user's family name.
	PasswordHash string    // Salted one-way hash of the password. Never the plaintext.
	Role         Role      // Role flag: standard user or administrator.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// IsAdmin reports whether this user carries the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
