package models

import "time"

// Roles assignable to dashboard accounts
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ProtectedUsername is the bootstrap account that no other account may
// modify, demote, or delete, regardless of role.
const ProtectedUsername = "admin"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string // "admin" or "super_admin"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSuperAdmin reports whether the user holds the privileged role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsProtected reports whether this is the protected bootstrap account.
func (u *User) IsProtected() bool {
	return u.Username == ProtectedUsername
}
