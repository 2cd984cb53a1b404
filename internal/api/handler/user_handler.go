package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// UserHandler exposes the administrator-only account management endpoints.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type createUserRequest struct {
	Username string `json:"username"  validate:"required,min=3"`
	Password string `json:"password"  validate:"required,min=6"`
	Email    string `json:"email"     validate:"omitempty,email"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"      validate:"required,oneof=administrator employee"`
}

// List handles GET /api/v1/users (administrator only).
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /api/v1/users (administrator only).
//
// @Summary      Create a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "username already taken"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
