package ports

import (
	"context"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// LoginResult is what a successful login hands back to the transport layer:
// a signed bearer token plus the freshly created server-side session.
type LoginResult struct {
	Token   string
	Session domain.Session
	User    *domain.User
}

// CreateUserInput carries the fields for an administrator-created account.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
