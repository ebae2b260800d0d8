package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserAccount is one row of the users table. PasswordHash is a bcrypt
// hash and never leaves the repository/service layers.
type UserAccount struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
