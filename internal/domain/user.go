package domain

// Role user role in the system
type Role string

const (
	RoleClient   Role = "client"
	RoleMechanic Role = "mechanic"
	RoleAdmin    Role = "admin"
)

// User authenticated user profile
type User struct {
	ID         string
	Email      string
	Name       string
	Role       Role
	PostalCode *string
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session persisted client session (bearer token + owner)
type Session struct {
	Token  string
	UserID string
	Email  string
	Role   Role
}
