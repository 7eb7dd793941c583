package domain

import "errors"

// Role identifies what kind of account a user holds.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleSeller  Role = "seller"
	RoleDriver  Role = "driver"
	RoleUnknown Role = "unknown"
)

// ParseRole maps a wire role string onto a known Role, falling back to
// RoleUnknown for anything unrecognised.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleDriver:
		return Role(s)
	default:
		return RoleUnknown
	}
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User models an authenticated account as the backend reports it.
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	IsVerified  bool   `json:"is_verified"`
	CreatedAt   string `json:"created_at"`
}
