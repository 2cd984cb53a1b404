package domain

import (
	"errors"
	"time"
)

const (
	RoleAdministrator = "administrator"
	RoleEmployee      = "employee"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// ValidRole reports whether role is one of the known permission tiers.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleEmployee
}

// User models an account that can sign in to the point of sale.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the snapshot of a user carried by sessions and tokens.
// It deliberately excludes the password hash and timestamps.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// IdentityOf builds the session/token snapshot for a user.
func IdentityOf(u *User) Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
