package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapp/pharmacy-pos/internal/core/domain"
	"github.com/farmapp/pharmacy-pos/internal/core/ports"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// List handles GET /api/v1/categories.
//
// @Summary      List categories with product counts
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Category
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/v1/categories (administrator only).
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	category, err := h.service.Create(c.Request().Context(), ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "a category with this name already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/v1/categories/:id (administrator only).
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	category, err := h.service.Update(c.Request().Context(), id, ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "category not found"})
		case errors.Is(err, domain.ErrCategoryExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "a category with this name already exists"})
		}
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/v1/categories/:id (administrator only). A
// category that still has products assigned is refused with 409.
//
// @Summary      Delete a category
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  int  true  "Category ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrCategoryNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "category not found"})
		case errors.Is(err, domain.ErrCategoryInUse):
			return c.JSON(http.StatusConflict, errorResponse{Error: "category still has products assigned"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
