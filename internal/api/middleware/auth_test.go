package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/pkg/token"
)

type stubSessionStore struct {
	sessions map[string]domain.Session
	putErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, session domain.Session) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func employeeIdentity() domain.Identity {
	return domain.Identity{UserID: 3, Username: "carla", FullName: "Carla Ruiz", Role: domain.RoleEmployee}
}

func testConfig(store *stubSessionStore, issuer *token.Issuer) AuthConfig {
	return AuthConfig{Sessions: store, Issuer: issuer, SessionTTL: time.Hour}
}

func TestAuth_SessionFastPath(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	store.sessions["sid-1"] = domain.Session{ID: "sid-1", Identity: employeeIdentity()}
	issuer := token.NewIssuer("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		called = true
		if c.Get("username") != "carla" || c.Get("role") != domain.RoleEmployee {
			t.Fatalf("identity not set from session")
		}
		if c.Get("session_id") != "sid-1" {
			t.Fatalf("session id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_BearerHeaderBackfillsSession(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	issuer := token.NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue(employeeIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		called = true
		if c.Get("username") != "carla" {
			t.Fatalf("identity not set from token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}

	if len(store.sessions) != 1 {
		t.Fatalf("expected session backfill, store has %d entries", len(store.sessions))
	}
	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			found = true
			if !cookie.HttpOnly {
				t.Fatalf("session cookie must be http-only")
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set on backfill")
	}
}

func TestAuth_TokenCookieFallback(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	issuer := token.NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue(employeeIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_NoCredentials_JSON(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	issuer := token.NewIssuer("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_NoCredentials_PageRedirect(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	issuer := token.NewIssuer("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, "text/html")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, loc)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	issuer := token.NewIssuer("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	verify := token.NewIssuer("secret", time.Hour)

	short := token.NewIssuer("secret", time.Nanosecond)
	signed, err := short.Issue(employeeIdentity())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testConfig(store, verify))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuth_ClearedSessionIsRejected(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	store.sessions["sid-9"] = domain.Session{ID: "sid-9", Identity: employeeIdentity()}
	issuer := token.NewIssuer("secret", time.Hour)

	// Logout destroys the entry; the old cookie no longer authenticates.
	if err := store.Delete(context.Background(), "sid-9"); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-9"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testConfig(store, issuer))(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
