package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/api/metrics"
	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
	"github.com/farmapp/pharmacy-pos/pkg/token"
)

const (
	// SessionCookie carries the server-side session identifier.
	SessionCookie = "farmapp_sid"
	// TokenCookie carries the bearer token for browser clients that do not
	// send an Authorization header.
	TokenCookie = "token"
	// LoginPath is where unauthenticated page requests are redirected.
	LoginPath = "/login"
)

// AuthConfig wires the authorization gate's collaborators.
type AuthConfig struct {
	Sessions     ports.SessionStore
	Issuer       *token.Issuer
	CookieSecure bool
	SessionTTL   time.Duration
}

// Auth resolves the request's identity and injects it into the context.
// Resolution order: server-side session (fast path), then bearer token from
// the Authorization header or the token cookie. A verified token backfills
// the session store so the next request on this client takes the fast path.
// Requests with no resolvable identity are rejected: JSON clients get 401,
// page requests are redirected to the login entry point.
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if session, err := cfg.Sessions.Get(c.Request().Context(), cookie.Value); err == nil {
					setIdentity(c, session.Identity)
					c.Set("session_id", session.ID)
					return next(c)
				}
				// Stale or unreadable session: fall through to the token.
			}

			raw := bearerToken(c)
			if raw == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_credentials").Inc()
				return reject(c)
			}

			claims, err := cfg.Issuer.Verify(raw)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return reject(c)
			}

			identity := claims.Identity()
			session := domain.Session{ID: uuid.NewString(), Identity: identity}
			if err := cfg.Sessions.Put(c.Request().Context(), session); err == nil {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    session.ID,
					Path:     "/",
					MaxAge:   int(cfg.SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
				c.Set("session_id", session.ID)
			}
			// A failed backfill only costs the fast path; the request itself
			// is already authenticated.

			setIdentity(c, identity)
			return next(c)
		}
	}
}

func setIdentity(c echo.Context, id domain.Identity) {
	c.Set("user_id", id.UserID)
	c.Set("username", id.Username)
	c.Set("full_name", id.FullName)
	c.Set("role", id.Role)
}

// bearerToken pulls the raw token from the Authorization header, falling
// back to the token cookie.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// reject ends the request for a missing or invalid credential. The response
// never says which: JSON clients get a generic 401, page requests a redirect.
func reject(c echo.Context) error {
	if wantsJSON(c) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return c.Redirect(http.StatusFound, LoginPath)
}

// wantsJSON reports whether the client negotiated a JSON response.
func wantsJSON(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return true
	}
	// API routes default to JSON even without an Accept header.
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
