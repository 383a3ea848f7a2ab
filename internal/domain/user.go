package domain

import "time"

// RoleAdmin is the only role allowed to reach the admin routes.
const RoleAdmin = "admin"

// User represents an account of the todo service. PasswordHash is never
// returned outside the service layer.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
