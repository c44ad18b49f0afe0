package auth

import "time"

type Role string

const (
	RoleAnalyst Role = "revops_analyst"
	RoleAdmin   Role = "revops_admin"
)

// StaffUser is the domain representation of a revenue-operations staff
// account. It mirrors the staff_users table and carries no JSON annotations
// so it can be reused by different presentation layers.
type StaffUser struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains staff registration data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// LoginRequest contains staff login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
