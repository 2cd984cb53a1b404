package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/api/metrics"
	"github.com/farmapp/pharmacy-pos/internal/api/middleware"
	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// Post-login landing pages, by role.
const (
	dashboardPath = "/dashboard"
	posPath       = "/pos"
)

// CookieConfig controls the cookies written at login and cleared at logout.
type CookieConfig struct {
	Secure     bool
	SessionTTL time.Duration
	TokenTTL   time.Duration
}

// AuthHandler handles login, logout and the session check endpoint.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cookies: cookies}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

type checkResponse struct {
	IsAuthenticated bool             `json:"isAuthenticated"`
	User            *domain.Identity `json:"user,omitempty"`
}

// Login authenticates a user and establishes both a server-side session and
// a bearer-token cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: "invalid payload"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.loginFailure(c, http.StatusUnauthorized, "invalid username or password")
		}
		return h.loginFailure(c, http.StatusInternalServerError, "internal server error")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setCookie(c, middleware.SessionCookie, result.Session.ID, h.cookies.SessionTTL)
	h.setCookie(c, middleware.TokenCookie, result.Token, h.cookies.TokenTTL)

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, loginResponse{Success: true, User: result.User})
	}
	if result.User.Role == domain.RoleAdministrator {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return c.Redirect(http.StatusSeeOther, posPath)
}

// Logout destroys the server-side session and tells the client to drop both
// cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := ""
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		sessionID = cookie.Value
	}

	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, loginResponse{Success: false, Message: "internal server error"})
	}

	h.clearCookie(c, middleware.SessionCookie)
	h.clearCookie(c, middleware.TokenCookie)

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, loginResponse{Success: true})
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Check reports whether the caller holds a live session.
//
// @Summary      Check authentication status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  checkResponse
// @Failure      401  {object}  checkResponse
// @Router       /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, checkResponse{IsAuthenticated: false})
	}

	session, err := h.sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, checkResponse{IsAuthenticated: false})
	}

	return c.JSON(http.StatusOK, checkResponse{IsAuthenticated: true, User: &session.Identity})
}

func (h *AuthHandler) loginFailure(c echo.Context, status int, message string) error {
	if wantsJSON(c) {
		return c.JSON(status, loginResponse{Success: false, Message: message})
	}
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath+"?error="+url.QueryEscape(message))
}

func (h *AuthHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
