package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
	"github.com/farmapp/pharmacy-pos/pkg/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = int64(len(r.users) + 1)
	r.users[user.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type memSessionStore struct {
	sessions map[string]domain.Session
	putErr   error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *memSessionStore) Put(_ context.Context, session domain.Session) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Test " + username,
		Role:         role,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func newTestAuthService(repo *stubUserRepo, store *memSessionStore) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(repo, store, issuer, zerolog.Nop()), issuer
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemSessionStore()
	seedUser(t, repo, "admin", "admin123", domain.RoleAdministrator)
	svc, issuer := newTestAuthService(repo, store)

	result, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if result.User.Username != "admin" || result.User.Role != domain.RoleAdministrator {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	claims, err := issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "admin" || claims.Role != domain.RoleAdministrator {
		t.Fatalf("token claims mismatch: %+v", claims)
	}

	stored, err := store.Get(context.Background(), result.Session.ID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if stored.Identity != domain.IdentityOf(result.User) {
		t.Fatalf("session identity mismatch: %+v", stored.Identity)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemSessionStore()
	seedUser(t, repo, "carla", "goodpass", domain.RoleEmployee)
	svc, _ := newTestAuthService(repo, store)

	if _, err := svc.Login(context.Background(), "carla", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be created on failed login")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemSessionStore()
	svc, _ := newTestAuthService(repo, store)

	// Unknown usernames must be indistinguishable from wrong passwords.
	if _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be created for unknown user")
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), newMemSessionStore())

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = errors.New("connection refused")
	svc, _ := newTestAuthService(repo, newMemSessionStore())

	_, err := svc.Login(context.Background(), "admin", "admin123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not map to credential error, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemSessionStore()
	seedUser(t, repo, "dora", "pass", domain.RoleEmployee)
	svc, _ := newTestAuthService(repo, store)

	result, err := svc.Login(context.Background(), "dora", "pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.Session.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := store.Get(context.Background(), result.Session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session should be gone after logout, got %v", err)
	}

	// Logout without a session is a no-op.
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty id should succeed: %v", err)
	}
}

func TestAuthService_CreateUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newMemSessionStore())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Username: "erin",
		Password: "s3cret",
		Email:    "erin@farmacia.com",
		FullName: "Erin Soto",
		Role:     domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	svc, _ := newTestAuthService(newStubUserRepo(), newMemSessionStore())

	cases := []ports.CreateUserInput{
		{Username: "", Password: "p", FullName: "n", Role: domain.RoleEmployee},
		{Username: "u", Password: "", FullName: "n", Role: domain.RoleEmployee},
		{Username: "u", Password: "p", FullName: "n", Role: "superuser"},
	}
	for _, input := range cases {
		if _, err := svc.CreateUser(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestAuthService_CreateUser_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, newMemSessionStore())

	input := ports.CreateUserInput{Username: "frank", Password: "p", FullName: "Frank", Role: domain.RoleEmployee}
	if _, err := svc.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
