package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
	"github.com/farmapp/pharmacy-pos/pkg/token"
)

// dummyHash is a valid bcrypt hash compared against when the username does
// not exist, so the unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements login, logout and account administration.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	issuer   *token.Issuer
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, issuer *token.Issuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, issuer: issuer, logger: logger}
}

// Login validates the credentials, mints a bearer token and records a
// server-side session. Unknown username and wrong password both come back as
// ErrInvalidCredentials; nothing in the result distinguishes them.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("user lookup failed")
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	identity := domain.IdentityOf(user)

	signed, err := s.issuer.Issue(identity)
	if err != nil {
		s.logger.Error().Err(err).Msg("token signing failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}

	session := domain.Session{ID: uuid.NewString(), Identity: identity}
	if err := s.sessions.Put(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("session write failed")
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")

	return &ports.LoginResult{Token: signed, Session: session, User: user}, nil
}

// Logout destroys the session entry. The bearer token stays valid until its
// expiry; the client is told to drop the cookie instead.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("session destroy failed")
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// CreateUser registers a new account. Only administrators reach this through
// the API; the role still has to be one of the known tiers.
func (s *AuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
