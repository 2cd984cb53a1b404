package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
)

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a populated role proves the gate ran.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(int64)
	username, _ := c.Get("username").(string)
	fullName, _ := c.Get("full_name").(string)

	return domain.Identity{
		UserID:   userID,
		Username: username,
		FullName: fullName,
		Role:     role,
	}, nil
}

// wantsJSON reports whether the caller negotiated a JSON response. Form
// submissions from the login page expect redirects instead.
func wantsJSON(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON)
}
